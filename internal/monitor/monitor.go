package monitor

import (
	"time"

	"github.com/rs/zerolog/log"

	"domainwatch/internal/checker"
	"domainwatch/internal/common"
	"domainwatch/internal/watchlist"
)

// Oracle answers availability checks for single domains
type Oracle interface {
	Check(domain string, vital bool) checker.CheckResult
}

type Config struct {
	MainCycle     time.Duration // how often the loop wakes up
	CheckInterval time.Duration // how often the watchlist is polled
	ReportWeekday time.Weekday
	ReportHour    int
}

// Monitor polls the watchlist and drives the report schedule,
// all on a single goroutine
type Monitor struct {
	store         *watchlist.Store
	oracle        Oracle
	notifier      *Notifier
	cfg           Config
	checkExecutor common.TimedExecutor
	housekeeping  []common.TimedExecutor
	done          chan struct{}
}

func New(store *watchlist.Store, oracle Oracle, notifier *Notifier, cfg Config) *Monitor {
	monitor := &Monitor{
		store:    store,
		oracle:   oracle,
		notifier: notifier,
		cfg:      cfg,
		done:     make(chan struct{}),
	}
	monitor.checkExecutor = common.NewTimedExecutor(cfg.CheckInterval, monitor.Cycle)
	return monitor
}

// AddHousekeeping registers an extra task to run at its own interval,
// e.g. the live status embed refresh
func (monitor *Monitor) AddHousekeeping(interval time.Duration, task func()) {
	monitor.housekeeping = append(monitor.housekeeping, common.NewTimedExecutor(interval, task))
}

// Run the main loop until Stop is called. The first poll cycle
// fires right away
func (monitor *Monitor) Run() {
	log.Info().
		Dur("check_interval", monitor.cfg.CheckInterval).
		Str("report_weekday", monitor.cfg.ReportWeekday.String()).
		Msg("Monitor loop starting")

	nextReport := NextReportTime(time.Now(), monitor.cfg.ReportWeekday, monitor.cfg.ReportHour)
	log.Info().Time("next_report", nextReport).Msg("Report scheduled")

	ticker := time.NewTicker(monitor.cfg.MainCycle)
	defer ticker.Stop()
	for {
		select {
		case <-monitor.done:
			log.Info().Msg("Monitor loop stopping")
			return
		case now := <-ticker.C:
			monitor.checkExecutor.Execute()
			for i := range monitor.housekeeping {
				monitor.housekeeping[i].Execute()
			}
			if !now.Before(nextReport) {
				monitor.ForceReport()
				nextReport = NextReportTime(now, monitor.cfg.ReportWeekday, monitor.cfg.ReportHour)
				log.Info().Time("next_report", nextReport).Msg("Report scheduled")
			}
		}
	}
}

func (monitor *Monitor) Stop() {
	close(monitor.done)
}

// Cycle checks every watched domain once and records transitions.
// An unknown result leaves the stored entry untouched, so a slow or
// failing lookup can never fake a state change
func (monitor *Monitor) Cycle() {
	entries := monitor.store.List()
	log.Info().Int("domains", len(entries)).Msg("Starting check cycle")

	changes := 0
	for _, entry := range entries {
		result := monitor.oracle.Check(entry.Domain, false)
		if result.State == checker.StateUnknown {
			continue
		}
		if result.State != entry.LastState {
			monitor.notifier.OnTransition(Transition{
				Domain:   entry.Domain,
				From:     entry.LastState,
				To:       result.State,
				Priority: entry.Priority,
				Expiry:   result.Expiry,
				At:       result.CheckedAt,
			})
			changes++
		}
		if err := monitor.store.Update(entry.Domain, result.State, result.CheckedAt, result.Expiry); err != nil {
			log.Error().Err(err).Str("domain", entry.Domain).Msg("Could not record check result")
		}
	}
	monitor.store.RecordCycle(changes)
	log.Info().Int("changes", changes).Msg("Check cycle finished")
}

// ForceReport flushes the report buffer right away.
// Used both by the weekly schedule and the report command
func (monitor *Monitor) ForceReport() {
	monitor.notifier.Flush(monitor.store.List())
}

// NextReportTime computes the first instant after now that falls on the
// given weekday at the given hour
func NextReportTime(now time.Time, weekday time.Weekday, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	next = next.AddDate(0, 0, days)
	if !next.After(now) {
		next = next.AddDate(0, 0, 7)
	}
	return next
}
