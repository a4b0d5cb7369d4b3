package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveType classifies a parsed G-code motion command.
type MoveType int

const (
	MoveRapid   MoveType = iota // G0: non-cutting traverse
	MoveFeed                    // G1: linear cutting feed
	MoveCWArc                   // G2: clockwise arc feed
	MoveCCWArc                  // G3: counter-clockwise arc feed
	MovePlunge                  // G1 with only Z decreasing: straight plunge
	MoveRetract                 // G0 with Z increasing, or G1 with only Z increasing: retract
)

// Move is one parsed motion command, with absolute from/to coordinates.
type Move struct {
	Type     MoveType
	FromX    float64
	FromY    float64
	FromZ    float64
	ToX      float64
	ToY      float64
	ToZ      float64
	I, J     float64
	FeedRate float64
}

var coordRe = regexp.MustCompile(`([XYZIJF])([-]?\d+\.?\d*)`)

// Parse parses a G-code program into a slice of structured moves,
// tracking absolute position and feed state across lines. Only G0/G1/G2/G3
// motion commands are recognized; everything else (spindle, homing,
// comments) is skipped.
func Parse(code string) []Move {
	var moves []Move
	curX, curY, curZ, curFeed := 0.0, 0.0, 0.0, 0.0

	for _, raw := range strings.Split(code, "\n") {
		line := stripComment(raw)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		var kind MoveType
		var isMotion bool
		switch {
		case hasPrefix(upper, "G0", "G00"):
			kind, isMotion = MoveRapid, true
		case hasPrefix(upper, "G1", "G01"):
			kind, isMotion = MoveFeed, true
		case hasPrefix(upper, "G2", "G02"):
			kind, isMotion = MoveCWArc, true
		case hasPrefix(upper, "G3", "G03"):
			kind, isMotion = MoveCCWArc, true
		}
		if !isMotion {
			continue
		}

		newX, newY, newZ, newFeed := curX, curY, curZ, curFeed
		var iOffset, jOffset float64
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			case "Z":
				newZ = val
			case "I":
				iOffset = val
			case "J":
				jOffset = val
			case "F":
				newFeed = val
			}
		}

		if kind == MoveRapid || kind == MoveFeed {
			kind = classifyLinearMove(kind, curZ, newZ, curX, curY, newX, newY)
		}

		moves = append(moves, Move{
			Type: kind, FromX: curX, FromY: curY, FromZ: curZ,
			ToX: newX, ToY: newY, ToZ: newZ,
			I: iOffset, J: jOffset, FeedRate: newFeed,
		})
		curX, curY, curZ, curFeed = newX, newY, newZ, newFeed
	}

	return moves
}

func hasPrefix(upper, short, long string) bool {
	return upper == short || upper == long ||
		strings.HasPrefix(upper, short+" ") || strings.HasPrefix(upper, long+" ")
}

// classifyLinearMove refines a G0/G1 command into a plunge/retract: any
// G0 that raises Z is a retract, and a G1 is a plunge or retract when it
// moves only in Z.
func classifyLinearMove(kind MoveType, fromZ, toZ, fromX, fromY, toX, toY float64) MoveType {
	zDelta := toZ - fromZ
	hasXY := fromX != toX || fromY != toY
	switch {
	case kind == MoveRapid && zDelta > 0:
		return MoveRetract
	case kind == MoveRapid:
		return MoveRapid
	case zDelta < -0.001 && !hasXY:
		return MovePlunge
	case zDelta > 0.001 && !hasXY:
		return MoveRetract
	default:
		return MoveFeed
	}
}

func stripComment(line string) string {
	line = strings.TrimSpace(line)
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "("); idx >= 0 {
		if end := strings.Index(line, ")"); end > idx {
			line = line[:idx] + line[end+1:]
		}
	}
	return strings.TrimSpace(line)
}
