package planner

// StepController converges "distance along the spine" toward a target
// step-over (§4.2, §9). The relation has no closed form, so the fitter
// drives it as a numerical search; §9 explicitly asks for this to stay
// pluggable rather than hard-coded to one gain.
type StepController interface {
	// Next returns the distance delta to apply given the desired
	// step-over and the step-over actually measured this iteration.
	Next(desired, progress float64) float64
}

// ProportionalController is the controller the fitter uses in practice:
// a single proportional term, no integral or derivative component (§9
// notes a full PID gave no measurable benefit in the source).
type ProportionalController struct {
	Kp float64
}

func (c ProportionalController) Next(desired, progress float64) float64 {
	return c.Kp * (desired - progress)
}

// DefaultKp is the gain exercised in practice: the only _pid(...) call
// the source's arc fitter leaves uncommented uses Kp=0.75, Ki=0, Kd=0.
const DefaultKp = 0.75

// abandonedGains records the other (Kp, Ki, Kd) tuples the source tried
// in the same spot and left commented out rather than deleted. None of
// these is wired to anything; the fitter's controller is a
// ProportionalController built from PlanOptions.Kp (DefaultKp unless
// overridden), with no integral or derivative term.
var abandonedGains = [][3]float64{
	{0.19, 0.04, 0.12},
	{0.9, 0.01, 0.01},
	{0, 0.001, 0.3},
}

// NewController builds the default proportional controller at the
// given gain.
func NewController(kp float64) StepController {
	return ProportionalController{Kp: kp}
}
