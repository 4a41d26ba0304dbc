package startuplog

import "time"

// StopWatch measures the time between Start and Stop in wall-clock
// milliseconds. The zero value is ready to use. Call order is the
// caller's responsibility: stopping a watch that was never started
// yields a meaningless total.
type StopWatch struct {
	// Now is the clock, time.Now when nil.
	Now func() time.Time

	start int64
	end   int64
}

func (s *StopWatch) Start() {
	s.start = s.now()
}

func (s *StopWatch) Stop() {
	s.end = s.now()
}

func (s *StopWatch) TotalMillis() int64 {
	return s.end - s.start
}

func (s *StopWatch) ElapsedSeconds() float64 {
	return float64(s.TotalMillis()) / 1000.0
}

func (s *StopWatch) now() int64 {
	if s.Now != nil {
		return s.Now().UnixMilli()
	}

	return time.Now().UnixMilli()
}
