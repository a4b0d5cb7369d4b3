// Package gcode renders a finished planner.Plan into G-code text for a
// specific CNC controller dialect, and can parse G-code back into
// structured moves for diagnostic and cut-log tooling.
package gcode

// Profile defines a post-processor configuration for a CNC controller
// dialect: the startup/shutdown boilerplate and the motion/comment
// syntax a Generator formats moves with.
type Profile struct {
	Name        string
	Description string

	StartCode    []string
	SpindleStart string // e.g. "M3 S%d"
	SpindleStop  string

	RapidMove string // G0 or equivalent
	FeedMove  string // G1 or equivalent
	CWArc     string // G2 or equivalent
	CCWArc    string // G3 or equivalent

	EndCode []string // "[SafeZ]" is replaced with the formatted safe-Z height

	CommentPrefix string
	CommentSuffix string

	DecimalPlaces int
}

// Profiles lists the built-in controller dialects.
var Profiles = []Profile{
	{
		Name:          "Grbl",
		Description:   "Standard Grbl configuration (Arduino CNC shields)",
		StartCode:     []string{"G90", "G21", "G17"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CWArc:         "G2",
		CCWArc:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Mach3",
		Description:   "Mach3 CNC control software",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CWArc:         "G2",
		CCWArc:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G28 X0 Y0", "M5", "M30"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC (formerly EMC2)",
		StartCode:     []string{"G90", "G21", "G17", "G94"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CWArc:         "G2",
		CCWArc:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 4,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		StartCode:     []string{"G90", "G21"},
		SpindleStart:  "M3 S%d",
		SpindleStop:   "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		CWArc:         "G2",
		CCWArc:        "G3",
		EndCode:       []string{"G0 Z[SafeZ]", "G0 X0 Y0", "M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// GetProfile returns a profile by name, or Generic if not found.
func GetProfile(name string) Profile {
	for _, p := range Profiles {
		if p.Name == name {
			return p
		}
	}
	return Profiles[len(Profiles)-1]
}

// GetProfileNames lists every built-in profile name.
func GetProfileNames() []string {
	names := make([]string, len(Profiles))
	for i, p := range Profiles {
		names[i] = p.Name
	}
	return names
}
