package common

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Analysis struct {
	allowed bool          // If the request is allowed
	wait    time.Duration // The minimal time to wait before the request is allowed
}

// RateLimiter decides if an outgoing request should be performed right now,
// considering a set of restrictions and the history of recent requests.
// Vital requests wait until the restrictions clear; non vital requests
// are rejected straight away
type RateLimiter struct {
	mu           sync.Mutex
	restrictions []Restriction          // Restrictions to consider
	history      []time.Time            // History of requests
	window       time.Duration          // Min duration to wait for all restrictions to be lifted
	pendingVital map[uuid.UUID]struct{} // Set of pending vital requests
}

func NewRateLimiter(restrictions []Restriction) *RateLimiter {
	rl := RateLimiter{
		restrictions: make([]Restriction, len(restrictions)),
		pendingVital: map[uuid.UUID]struct{}{},
	}
	copy(rl.restrictions, restrictions)
	for _, restriction := range restrictions {
		if restriction.Duration > rl.window {
			rl.window = restriction.Duration
		}
	}
	return &rl
}

// Ask for permission to perform a request.
// Vital requests block here until the restrictions allow them.
// Non vital requests are rejected if the restrictions do not allow
// them at the current time, or if vital requests are already waiting
func (rl *RateLimiter) Allowed(vital bool) bool {

	// Give this request a unique identifier
	thisuuid := uuid.New()
	for {
		rl.mu.Lock()
		// Trim history first
		rl.trim()
		// Check if the restrictions allow this request
		analysis := rl.analyse()
		if analysis.allowed {
			if !vital && len(rl.pendingVital) > 0 {
				rl.mu.Unlock()
				log.Debug().Msg("Rejecting non vital request because vital requests are waiting")
				return false
			}
			delete(rl.pendingVital, thisuuid)
			// Include this request in the history as it is allowed
			rl.history = append(rl.history, time.Now())
			rl.mu.Unlock()
			return true
		}
		if !vital {
			rl.mu.Unlock()
			log.Debug().Msg("Rejecting non vital request because restrictions do not allow it")
			return false
		}
		// Request is vital and not allowed, so queue it and sleep
		// until the restrictions could allow it
		rl.pendingVital[thisuuid] = struct{}{}
		wait := analysis.wait
		rl.mu.Unlock()
		log.Debug().Msgf("Vital request %s delayed %.1f seconds", thisuuid, wait.Seconds())
		time.Sleep(wait)
	}
}

// Trim the current history, leaving only the requests
// that are young enough to be affected by at least one restriction
func (rl *RateLimiter) trim() {
	currentTime := time.Now()
	// Find the index from which we need to keep the history.
	// Times are stored in chronological order
	index := len(rl.history)
	for i := 0; i < len(rl.history); i++ {
		if currentTime.Sub(rl.history[i]) <= rl.window {
			index = i
			break
		}
	}
	rl.history = rl.history[index:]
}

func (rl *RateLimiter) analyse() Analysis {

	// Merge the analyses of each of the restrictions:
	// allowed only if all of them allow it, waiting for the slowest one
	merged := Analysis{allowed: true}
	for _, restriction := range rl.restrictions {
		analysis := restriction.Analyse(rl.history)
		merged.allowed = merged.allowed && analysis.allowed
		if analysis.wait > merged.wait {
			merged.wait = analysis.wait
		}
	}
	return merged
}
