package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"domainwatch/internal/checker"
)

var (
	ErrDuplicateEntry = errors.New("domain already in the watchlist")
	ErrNotFound       = errors.New("domain not in the watchlist")
)

// Entry is the monitoring record of a single watched domain
type Entry struct {
	Domain        string              `json:"-"`
	Priority      bool                `json:"priority"`
	LastState     checker.DomainState `json:"last_state"`
	LastCheckedAt time.Time           `json:"last_checked_at"`
	Expiry        time.Time           `json:"expiry"`
	AddedAt       time.Time           `json:"added_at"`
}

// Stats are running counters over all check cycles
type Stats struct {
	TotalChecks  int `json:"total_checks"`
	StateChanges int `json:"state_changes"`
}

type document struct {
	Domains       map[string]Entry `json:"domains"`
	Stats         Stats            `json:"stats"`
	LastFullCheck time.Time        `json:"last_full_check"`
}

// Store is the persisted watchlist: a single JSON document keyed by
// normalized domain name, rewritten on every mutation. The rewrite goes
// through a temporary file and a rename, so a crash mid write never
// leaves a truncated watchlist behind
type Store struct {
	mu       sync.Mutex
	filename string
	doc      document
}

// NewStore loads the watchlist from the given file,
// starting empty if the file does not exist yet
func NewStore(filename string) (*Store, error) {
	store := Store{filename: filename, doc: document{Domains: map[string]Entry{}}}

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info().Str("file", filename).Msg("No watchlist file yet, starting empty")
			return &store, nil
		}
		return nil, fmt.Errorf("could not read watchlist file: %w", err)
	}
	if err := json.Unmarshal(data, &store.doc); err != nil {
		return nil, fmt.Errorf("could not decode watchlist file: %w", err)
	}
	if store.doc.Domains == nil {
		store.doc.Domains = map[string]Entry{}
	}

	// Entries written before any check completed have no state yet
	for domain, entry := range store.doc.Domains {
		if entry.LastState == "" {
			entry.LastState = checker.StateUnknown
			store.doc.Domains[domain] = entry
		}
	}
	return &store, nil
}

// Add puts a new domain under monitoring. Its state starts as unknown
// until the first conclusive check
func (store *Store) Add(domain string, priority bool) error {
	domain = checker.Normalize(domain)
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.doc.Domains[domain]; ok {
		return ErrDuplicateEntry
	}
	store.doc.Domains[domain] = Entry{
		Priority:  priority,
		LastState: checker.StateUnknown,
		AddedAt:   time.Now(),
	}
	return store.persist()
}

func (store *Store) Remove(domain string) error {
	domain = checker.Normalize(domain)
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.doc.Domains[domain]; !ok {
		return ErrNotFound
	}
	delete(store.doc.Domains, domain)
	return store.persist()
}

func (store *Store) Get(domain string) (Entry, bool) {
	domain = checker.Normalize(domain)
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.doc.Domains[domain]
	entry.Domain = domain
	return entry, ok
}

// List returns a snapshot of all entries, sorted by domain name
func (store *Store) List() []Entry {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries := make([]Entry, 0, len(store.doc.Domains))
	for domain, entry := range store.doc.Domains {
		entry.Domain = domain
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Domain < entries[j].Domain })
	return entries
}

// Update records the outcome of a completed check.
// An available domain has no expiry date anymore
func (store *Store) Update(domain string, state checker.DomainState, checkedAt time.Time, expiry time.Time) error {
	domain = checker.Normalize(domain)
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.doc.Domains[domain]
	if !ok {
		return ErrNotFound
	}
	entry.LastState = state
	entry.LastCheckedAt = checkedAt
	if state == checker.StateAvailable {
		entry.Expiry = time.Time{}
	} else if !expiry.IsZero() {
		entry.Expiry = expiry
	}
	store.doc.Domains[domain] = entry
	return store.persist()
}

// RecordCycle updates the running counters after a full poll cycle
func (store *Store) RecordCycle(changes int) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.doc.Stats.TotalChecks++
	store.doc.Stats.StateChanges += changes
	store.doc.LastFullCheck = time.Now()
	if err := store.persist(); err != nil {
		log.Error().Err(err).Msg("Could not persist watchlist stats")
	}
}

func (store *Store) Stats() (Stats, time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.doc.Stats, store.doc.LastFullCheck
}

func (store *Store) persist() error {
	data, err := json.MarshalIndent(store.doc, "", "    ")
	if err != nil {
		return fmt.Errorf("could not encode watchlist: %w", err)
	}
	tmp := store.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("could not write watchlist file: %w", err)
	}
	if err := os.Rename(tmp, store.filename); err != nil {
		return fmt.Errorf("could not replace watchlist file: %w", err)
	}
	return nil
}
