// Package workout defines the workout description consumed by the timer
// compiler, and decodes it from untrusted input (JSON, YAML, or already
// decoded Go values) with path-aware validation.
package workout

// Phase is one timed interval of a workout.
type Phase struct {
	// Duration is the phase length in seconds. Zero-length phases are inert.
	Duration int
	// Label is an optional display name ("Round 1", "Rest").
	Label string
	// Exercise is opaque display payload; nothing here interprets it.
	Exercise any
}

// Workout is a validated workout description.
type Workout struct {
	Name   string
	Kind   Kind
	Phases []Phase
}

// ActivePhase is a phase with a positive duration plus its position in the
// original phase list.
type ActivePhase struct {
	Index int
	Phase Phase
}

// ActivePhases returns the phases that contribute time, in execution order.
func (w Workout) ActivePhases() []ActivePhase {
	active := make([]ActivePhase, 0, len(w.Phases))
	for i, p := range w.Phases {
		if p.Duration > 0 {
			active = append(active, ActivePhase{Index: i, Phase: p})
		}
	}
	return active
}

// TotalSeconds returns the summed duration of all active phases.
func (w Workout) TotalSeconds() int {
	total := 0
	for _, p := range w.Phases {
		if p.Duration > 0 {
			total += p.Duration
		}
	}
	return total
}
