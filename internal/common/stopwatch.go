package common

import (
	"time"
)

// This stopwatch keeps track of time. You can set a timeout for it,
// make it start counting time, and ask it if the timeout has been reached
type Stopwatch struct {
	Timeout   time.Duration
	startTime time.Time
	Running   bool
}

func NewStopwatch(timeout time.Duration) Stopwatch {
	return Stopwatch{Timeout: timeout}
}

func (s *Stopwatch) Start() {
	s.Running = true
	s.startTime = time.Now()
}

func (s *Stopwatch) Stop() {
	s.Running = false
}

// Check if the timeout has been reached, together with the time
// elapsed past the timeout (negative if it has not been reached yet).
// A stopwatch that has never been started counts as stopped,
// so the very first check always fires
func (s *Stopwatch) Stopped() (bool, time.Duration) {
	if !s.Running {
		return true, 0
	}
	elapsed := time.Since(s.startTime.Add(s.Timeout))
	return elapsed >= 0, elapsed
}
