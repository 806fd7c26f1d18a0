package checker

import "time"

// DomainState is the availability classification of a domain
type DomainState string

const (
	StateUnknown    DomainState = "unknown"
	StateAvailable  DomainState = "available"
	StateRegistered DomainState = "registered"
)

// CheckResult is the outcome of a single availability check
type CheckResult struct {
	Domain    string
	State     DomainState
	CheckedAt time.Time
	Expiry    time.Time // zero when the registry did not provide one
}
