package rawbench

import "time"

// Sampler measures one timed window. Readings come from time.Now, whose
// monotonic component makes the window immune to wall-clock adjustments.
type Sampler struct {
	Clock func() time.Time

	start time.Time
	end   time.Time
}

func (s *Sampler) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *Sampler) Start() {
	s.start = s.now()
	s.end = time.Time{}
}

func (s *Sampler) Stop() time.Duration {
	s.end = s.now()
	return s.Elapsed()
}

func (s *Sampler) Elapsed() time.Duration {
	if s.start.IsZero() {
		return 0
	}
	if s.end.IsZero() {
		return s.now().Sub(s.start)
	}
	return s.end.Sub(s.start)
}

// Rate converts bytes over a duration into decimal megabytes per second.
// Durations below one nanosecond count as one nanosecond.
func Rate(bytes uint64, d time.Duration) float64 {
	if d <= 0 {
		d = time.Nanosecond
	}
	return float64(bytes) / 1e6 / d.Seconds()
}
