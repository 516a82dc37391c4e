package pipeline

import "time"

// Observer receives step lifecycle callbacks from Execute.
type Observer interface {
	StepStarted(desc Descriptor, index int)
	StepFinished(desc Descriptor, index int, elapsed time.Duration, err error)
}

// Timing is one finished step.
type Timing struct {
	Label   string
	Elapsed time.Duration
	Err     error
}

// Timings records how long each step took.
type Timings struct {
	Steps []Timing
}

func (t *Timings) StepStarted(Descriptor, int) {}

func (t *Timings) StepFinished(desc Descriptor, _ int, elapsed time.Duration, err error) {
	t.Steps = append(t.Steps, Timing{Label: desc.Label, Elapsed: elapsed, Err: err})
}

// Total sums the recorded step durations.
func (t *Timings) Total() time.Duration {
	var total time.Duration
	for _, s := range t.Steps {
		total += s.Elapsed
	}
	return total
}
