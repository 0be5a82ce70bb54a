package model

// Action is a human-friendly operating mode for one hour of a day.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionIdle        Action = "IDLE"
	ActionDischarging Action = "DISCHARGING"
)

// ActionsForCycle expands a cycle into one action per position of an n-point day.
func ActionsForCycle(n int, c CycleResult) []Action {
	out := make([]Action, n)
	for i := range out {
		out[i] = ActionIdle
	}
	for _, i := range c.ChargeIndices {
		if i >= 0 && i < n {
			out[i] = ActionCharging
		}
	}
	for _, i := range c.DischargeIndices {
		if i >= 0 && i < n {
			out[i] = ActionDischarging
		}
	}
	return out
}
