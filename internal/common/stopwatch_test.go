package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatchFiresImmediatelyBeforeFirstStart(t *testing.T) {
	s := NewStopwatch(time.Hour)
	stopped, _ := s.Stopped()
	assert.True(t, stopped)
}

func TestStopwatchTimeout(t *testing.T) {
	s := NewStopwatch(30 * time.Millisecond)
	s.Start()

	stopped, _ := s.Stopped()
	assert.False(t, stopped)

	time.Sleep(40 * time.Millisecond)
	stopped, elapsed := s.Stopped()
	assert.True(t, stopped)
	assert.Greater(t, elapsed, time.Duration(0))
}

func TestTimedExecutor(t *testing.T) {
	count := 0
	executor := NewTimedExecutor(30*time.Millisecond, func() { count++ })

	// The first call fires right away, the second is too early
	executor.Execute()
	executor.Execute()
	assert.Equal(t, 1, count)

	time.Sleep(40 * time.Millisecond)
	executor.Execute()
	assert.Equal(t, 2, count)
}
