package checker

import (
	"errors"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/rs/zerolog/log"

	"domainwatch/internal/common"
)

// Patterns in raw WHOIS output that indicate the domain is registered
var registeredPatterns = []string{
	"registrar:",
	"registrant:",
	"creation date:",
	"created:",
	"registry expiry date:",
	"expiration date:",
	"name server:",
	"nameserver:",
	"nserver:",
	"domain status:",
}

// Patterns that indicate the domain is not registered
var availablePatterns = []string{
	"no match for",
	"not found",
	"no entries found",
	"domain not found",
	"no data found",
	"status: free",
	"status: available",
	"no object found",
	"object does not exist",
	"is available for registration",
	"the queried object does not exist",
	"no such domain",
	"domain name has not been registered",
	"no matching record",
}

// Checker answers availability questions about domains,
// treating WHOIS as an opaque oracle
type Checker struct {
	client  *whois.Client
	limiter *common.RateLimiter
	tlds    []string
}

// NewChecker creates a checker with a per query timeout, the rate limit
// restrictions to respect, and the TLDs to fan out to (default list if nil)
func NewChecker(timeout time.Duration, restrictions []common.Restriction, tlds []string) *Checker {
	if tlds == nil {
		tlds = WatchTLDs
	}
	client := whois.NewClient()
	client.SetTimeout(timeout)
	return &Checker{
		client:  client,
		limiter: common.NewRateLimiter(restrictions),
		tlds:    tlds,
	}
}

// Check the availability of a single domain.
// Vital checks (requested directly by a user) wait out the rate limiter;
// background checks degrade to unknown when throttled.
// A failed or ambiguous lookup is never an error: it is an unknown result,
// which callers must treat as "no state change"
func (c *Checker) Check(domain string, vital bool) CheckResult {
	result := CheckResult{
		Domain:    Normalize(domain),
		State:     StateUnknown,
		CheckedAt: time.Now(),
	}

	if !c.limiter.Allowed(vital) {
		log.Debug().Str("domain", result.Domain).Msg("Check throttled")
		return result
	}

	raw, err := c.client.Whois(result.Domain)
	if err != nil {
		log.Warn().Err(err).Str("domain", result.Domain).Msg("Whois query failed")
		return result
	}

	result.State, result.Expiry = classify(raw)
	log.Debug().Str("domain", result.Domain).Str("state", string(result.State)).Msg("Check finished")
	return result
}

// CheckVariants checks the base name of the provided domain across
// all supported TLDs, sequentially. The provided domain comes first
func (c *Checker) CheckVariants(domain string, vital bool) []CheckResult {
	variants := Variants(domain, c.tlds)
	results := make([]CheckResult, 0, len(variants))
	for _, variant := range variants {
		results = append(results, c.Check(variant, vital))
	}
	return results
}

// Classify raw WHOIS output into an availability state,
// extracting the expiry date when the registry provides one
func classify(raw string) (DomainState, time.Time) {

	parsed, err := whoisparser.Parse(raw)
	if err == nil {
		return StateRegistered, expiryDate(parsed)
	}
	switch {
	case errors.Is(err, whoisparser.ErrNotFoundDomain):
		return StateAvailable, time.Time{}
	case errors.Is(err, whoisparser.ErrReservedDomain),
		errors.Is(err, whoisparser.ErrPremiumDomain),
		errors.Is(err, whoisparser.ErrBlockedDomain):
		// Not registered, but not registrable either
		return StateRegistered, time.Time{}
	}

	// The parser could not make sense of the output,
	// fall back to scanning for well known registry phrases
	lower := strings.ToLower(raw)
	for _, pattern := range registeredPatterns {
		if strings.Contains(lower, pattern) {
			return StateRegistered, time.Time{}
		}
	}
	for _, pattern := range availablePatterns {
		if strings.Contains(lower, pattern) {
			return StateAvailable, time.Time{}
		}
	}
	return StateUnknown, time.Time{}
}

func expiryDate(parsed whoisparser.WhoisInfo) time.Time {
	if parsed.Domain == nil {
		return time.Time{}
	}
	if parsed.Domain.ExpirationDateInTime != nil {
		return *parsed.Domain.ExpirationDateInTime
	}
	return parseWhoisDate(parsed.Domain.ExpirationDate)
}

// Registries disagree on date formats, so try the common ones
func parseWhoisDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02-Jan-2006",
		"2006.01.02 15:04:05",
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
