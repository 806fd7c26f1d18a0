package monitor

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"domainwatch/internal/checker"
	"domainwatch/internal/watchlist"
)

// Transition is a state change observed for a watched domain
type Transition struct {
	Domain   string
	From     checker.DomainState
	To       checker.DomainState
	Priority bool
	Expiry   time.Time
	At       time.Time
}

// Messenger posts alerts and reports to wherever the bot is configured to.
// Implemented on the discord side
type Messenger interface {
	SendAlert(transition Transition)
	SendReport(transitions []Transition, entries []watchlist.Entry)
}

// Notifier decides what to do with a state transition: priority domains
// trigger an immediate alert, and every transition is kept for the
// weekly report
type Notifier struct {
	mu        sync.Mutex
	messenger Messenger
	buffer    []Transition
}

func NewNotifier(messenger Messenger) *Notifier {
	return &Notifier{messenger: messenger}
}

func (notifier *Notifier) OnTransition(transition Transition) {
	log.Info().
		Str("domain", transition.Domain).
		Str("from", string(transition.From)).
		Str("to", string(transition.To)).
		Bool("priority", transition.Priority).
		Msg("State transition")

	if transition.Priority {
		notifier.messenger.SendAlert(transition)
	}
	notifier.mu.Lock()
	notifier.buffer = append(notifier.buffer, transition)
	notifier.mu.Unlock()
}

// Flush sends the accumulated report and clears the buffer.
// An empty buffer still produces a report stating nothing changed
func (notifier *Notifier) Flush(entries []watchlist.Entry) {
	notifier.mu.Lock()
	transitions := notifier.buffer
	notifier.buffer = nil
	notifier.mu.Unlock()

	log.Info().Int("transitions", len(transitions)).Msg("Flushing report")
	notifier.messenger.SendReport(transitions, entries)
}

func (notifier *Notifier) Pending() int {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return len(notifier.buffer)
}
