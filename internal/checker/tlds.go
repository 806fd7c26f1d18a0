package checker

import "strings"

// WatchTLDs are the TLDs checked when expanding a base name into its variants
var WatchTLDs = []string{
	"com", "de", "net", "org", "io", "app", "dev",
	"me", "info", "biz", "eu", "co", "gg", "tv",
	"cloud", "tech", "online", "store", "website",
}

var countryFlags = map[string]string{
	"de": "🇩🇪", "com": "🇺🇸", "eu": "🇪🇺", "uk": "🇬🇧",
	"fr": "🇫🇷", "nl": "🇳🇱", "ch": "🇨🇭", "at": "🇦🇹",
	"jp": "🇯🇵", "cn": "🇨🇳", "in": "🇮🇳", "au": "🇦🇺",
	"ca": "🇨🇦", "br": "🇧🇷", "mx": "🇲🇽", "ru": "🇷🇺",
}

// Normalize brings a domain to its canonical form: lower case,
// no surrounding whitespace, no leading or trailing dot
func Normalize(domain string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(domain)), ".")
}

// BaseName strips everything from the first dot on
func BaseName(domain string) string {
	domain = Normalize(domain)
	if i := strings.Index(domain, "."); i != -1 {
		return domain[:i]
	}
	return domain
}

// TLD returns the last label of a domain, or "" if it has only one
func TLD(domain string) string {
	domain = Normalize(domain)
	if i := strings.LastIndex(domain, "."); i != -1 {
		return domain[i+1:]
	}
	return ""
}

// Variants expands a domain into its base name across the provided TLDs
// (the default list if nil). A domain without a TLD is taken as .com.
// The domain itself always comes first
func Variants(domain string, tlds []string) []string {
	if tlds == nil {
		tlds = WatchTLDs
	}
	domain = Normalize(domain)
	if !strings.Contains(domain, ".") {
		domain += ".com"
	}
	variants := []string{domain}
	base := BaseName(domain)
	for _, tld := range tlds {
		variant := base + "." + tld
		if variant != domain {
			variants = append(variants, variant)
		}
	}
	return variants
}

// Flag returns the country flag matching the TLD of a domain
func Flag(domain string) string {
	if flag, ok := countryFlags[TLD(domain)]; ok {
		return flag
	}
	return "🏳️"
}
