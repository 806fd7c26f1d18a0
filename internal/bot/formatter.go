package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"domainwatch/internal/checker"
	"domainwatch/internal/monitor"
	"domainwatch/internal/watchlist"
)

// Embed colors: green for available, red for registered,
// yellow for warnings, blue for informational messages
const (
	COLOR_AVAILABLE  int = 0x00ff00
	COLOR_REGISTERED int = 0xff0000
	COLOR_WARNING    int = 0xffff00
	COLOR_INFO       int = 0x3498db
)

const maxListedDomains = 8

func stateEmoji(state checker.DomainState) string {
	switch state {
	case checker.StateAvailable:
		return "🟢"
	case checker.StateRegistered:
		return "🔴"
	default:
		return "⚪"
	}
}

func stateColor(state checker.DomainState) int {
	switch state {
	case checker.StateAvailable:
		return COLOR_AVAILABLE
	case checker.StateRegistered:
		return COLOR_REGISTERED
	default:
		return COLOR_WARNING
	}
}

func daysUntil(t time.Time) int {
	return int(time.Until(t).Hours() / 24)
}

func InputNotValid(errorMessage string) []Response {
	return []Response{ResponseString{fmt.Sprintf("Input not valid: \n> %s", errorMessage)}}
}

func HelpMessage() []Response {

	embed := discordgo.MessageEmbed{Title: "Commands available", Color: COLOR_INFO}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`!domaincheck <domain>` (aliases `!dc`, `!check`)",
		Value:  "Check the availability of a domain and of its base name across all supported TLDs",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`!watchlist`",
		Value:  "Show the domains currently under monitoring",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`!watchlist add <domain> [priority]`",
		Value:  "Add a domain to the watchlist. Priority domains trigger an immediate alert on every state change",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`!watchlist remove <domain>`",
		Value:  "Remove a domain from the watchlist",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`!report`",
		Value:  "Post the summary report right away (administrators only)",
		Inline: false,
	})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "`!help`",
		Value:  "Print the usage of the different commands",
		Inline: false,
	})
	return []Response{ResponseEmbed{embed}}
}

// CheckingMessage is posted while the WHOIS queries are running,
// and edited into the final result afterwards
func CheckingMessage(domain string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🔍 Checking domain...",
		Description: fmt.Sprintf("Checking **%s** and alternative TLDs", checker.Normalize(domain)),
		Color:       COLOR_INFO,
	}
}

// DomainCheckMessage formats the results of a manual check.
// The first result is the domain the user asked about,
// the rest are its TLD variants
func DomainCheckMessage(domain string, results []checker.CheckResult) *discordgo.MessageEmbed {

	embed := discordgo.MessageEmbed{
		Title: fmt.Sprintf("📊 Domain check: %s", checker.Normalize(domain)),
		Color: COLOR_INFO,
	}
	if len(results) == 0 {
		embed.Description = "No results"
		return &embed
	}

	main := results[0]
	embed.Color = stateColor(main.State)
	value := fmt.Sprintf("%s `%s` is **%s**", stateEmoji(main.State), main.Domain, strings.ToUpper(string(main.State)))
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("%s Main domain", checker.Flag(main.Domain)),
		Value:  value,
		Inline: false,
	})
	if !main.Expiry.IsZero() {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📅 Expiry date",
			Value:  fmt.Sprintf("%s (%d days)", main.Expiry.Format("02.01.2006"), daysUntil(main.Expiry)),
			Inline: true,
		})
	}

	available := []string{}
	registered := []string{}
	availableCount, registeredCount := 0, 0
	for _, result := range results[1:] {
		switch result.State {
		case checker.StateAvailable:
			availableCount++
			available = append(available, fmt.Sprintf("✅ `%s`", result.Domain))
		case checker.StateRegistered:
			registeredCount++
			line := fmt.Sprintf("❌ `%s`", result.Domain)
			if !result.Expiry.IsZero() {
				line += fmt.Sprintf(" (until %s)", result.Expiry.Format("02.01.2006"))
			}
			registered = append(registered, line)
		}
	}
	if len(available) > 0 {
		if len(available) > maxListedDomains {
			available = available[:maxListedDomains]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🟢 Available alternatives",
			Value:  strings.Join(available, "\n"),
			Inline: true,
		})
	}
	if len(registered) > 0 {
		if len(registered) > maxListedDomains {
			registered = registered[:maxListedDomains]
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🔴 Already taken",
			Value:  strings.Join(registered, "\n"),
			Inline: true,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Checked: %d | Available: %d | Registered: %d", len(results), availableCount, registeredCount),
	}
	return &embed
}

func WatchlistMessage(entries []watchlist.Entry, stats watchlist.Stats) []Response {

	embed := discordgo.MessageEmbed{
		Title:       "📋 Domain watchlist",
		Description: "Domains under periodic monitoring",
		Color:       COLOR_INFO,
	}

	priority := []string{}
	standard := []string{}
	for _, entry := range entries {
		line := fmt.Sprintf("%s %s `%s`", stateEmoji(entry.LastState), checker.Flag(entry.Domain), entry.Domain)
		if entry.Priority {
			priority = append(priority, "🔥 "+line)
		} else {
			standard = append(standard, line)
		}
	}
	if len(priority) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🔥 Priority domains",
			Value:  strings.Join(priority, "\n"),
			Inline: false,
		})
	}
	if len(standard) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📌 Standard domains",
			Value:  strings.Join(standard, "\n"),
			Inline: false,
		})
	}
	if len(entries) == 0 {
		embed.Description = "The watchlist is empty. Add a domain with `!watchlist add <domain>`"
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Checks: %d | Changes: %d", stats.TotalChecks, stats.StateChanges),
	}
	return []Response{ResponseEmbed{embed}}
}

func DomainAdded(domain string, priority bool) []Response {
	if priority {
		return []Response{ResponseString{fmt.Sprintf("🔥 Domain `%s` added to the watchlist as a priority domain", checker.Normalize(domain))}}
	}
	return []Response{ResponseString{fmt.Sprintf("✅ Domain `%s` added to the watchlist", checker.Normalize(domain))}}
}

func DomainAlreadyWatched(domain string) []Response {
	return []Response{ResponseString{fmt.Sprintf("⚠️ Domain `%s` is already in the watchlist", checker.Normalize(domain))}}
}

func DomainRemoved(domain string) []Response {
	return []Response{ResponseString{fmt.Sprintf("🗑️ Domain `%s` removed from the watchlist", checker.Normalize(domain))}}
}

func DomainNotWatched(domain string) []Response {
	return []Response{ResponseString{fmt.Sprintf("❌ Domain `%s` is not in the watchlist", checker.Normalize(domain))}}
}

func PersistenceError() []Response {
	return []Response{ResponseString{"⚠️ Could not save the watchlist, the change is not confirmed. Please try again"}}
}

func NotAdministrator() []Response {
	return []Response{ResponseString{"❌ The `report` command is reserved for administrators"}}
}

func ReportDone() []Response {
	return []Response{ResponseString{"✅ Report posted"}}
}

// AlertMessage is the immediate notification for a priority domain
// whose state just changed
func AlertMessage(transition monitor.Transition) *discordgo.MessageEmbed {

	embed := discordgo.MessageEmbed{
		Title: "🚨 Priority domain alert",
		Color: stateColor(transition.To),
	}
	value := fmt.Sprintf("%s → **%s**", strings.ToUpper(string(transition.From)), strings.ToUpper(string(transition.To)))
	if transition.To == checker.StateAvailable {
		value += "\nGrab it while it lasts!"
	} else if !transition.Expiry.IsZero() {
		value += fmt.Sprintf("\nExpires %s", transition.Expiry.Format("02.01.2006"))
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   fmt.Sprintf("%s %s %s", stateEmoji(transition.To), checker.Flag(transition.Domain), transition.Domain),
		Value:  value,
		Inline: false,
	})
	embed.Timestamp = transition.At.UTC().Format(time.RFC3339)
	return &embed
}

// ReportMessage is the periodic summary: state changes since the last
// report, currently available priority domains and soon expiring ones.
// An empty period still yields a report saying nothing changed
func ReportMessage(transitions []monitor.Transition, entries []watchlist.Entry) *discordgo.MessageEmbed {

	embed := discordgo.MessageEmbed{
		Title: "📊 Weekly domain report",
		Color: COLOR_INFO,
	}

	becameAvailable := []string{}
	becameRegistered := []string{}
	for _, transition := range transitions {
		line := fmt.Sprintf("%s `%s` (%s → %s)", checker.Flag(transition.Domain), transition.Domain, transition.From, transition.To)
		if transition.To == checker.StateAvailable {
			becameAvailable = append(becameAvailable, "✅ "+line)
		} else {
			becameRegistered = append(becameRegistered, "❌ "+line)
		}
	}

	priorityAvailable := []string{}
	expiringSoon := []string{}
	availableCount := 0
	for _, entry := range entries {
		if entry.LastState == checker.StateAvailable {
			availableCount++
			if entry.Priority {
				priorityAvailable = append(priorityAvailable, fmt.Sprintf("🔥 **%s** - register now!", entry.Domain))
			}
		}
		if days := daysUntil(entry.Expiry); !entry.Expiry.IsZero() && days >= 0 && days < 30 {
			expiringSoon = append(expiringSoon, fmt.Sprintf("⏰ **%s** - %d days left", entry.Domain, days))
		}
	}

	if len(transitions) == 0 {
		embed.Description = "No changes since the last report"
	} else {
		embed.Description = fmt.Sprintf("%d state changes since the last report", len(transitions))
	}

	if len(priorityAvailable) > 0 {
		embed.Color = COLOR_AVAILABLE
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🔥 Priority domains available",
			Value:  strings.Join(priorityAvailable, "\n"),
			Inline: false,
		})
	}
	if len(becameAvailable) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🟢 Newly available",
			Value:  strings.Join(becameAvailable, "\n"),
			Inline: false,
		})
	}
	if len(becameRegistered) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "🔴 Newly registered",
			Value:  strings.Join(becameRegistered, "\n"),
			Inline: false,
		})
	}
	if len(expiringSoon) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "⏰ Expiring soon",
			Value:  strings.Join(expiringSoon, "\n"),
			Inline: false,
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Monitored: %d | Available: %d", len(entries), availableCount),
	}
	embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return &embed
}

// StatusEmbed is the live overview kept in the status channel
// and edited in place on every refresh
func StatusEmbed(entries []watchlist.Entry, stats watchlist.Stats, lastFullCheck time.Time) *discordgo.MessageEmbed {

	embed := discordgo.MessageEmbed{
		Title: "🖥️ Domain monitoring",
		Color: COLOR_INFO,
	}

	lines := []string{}
	availableCount, registeredCount, pendingCount := 0, 0, 0
	for _, entry := range entries {
		marker := checker.Flag(entry.Domain)
		if entry.Priority {
			marker = "🔥"
		}
		var detail string
		switch entry.LastState {
		case checker.StateAvailable:
			availableCount++
			detail = "`AVAILABLE`"
		case checker.StateRegistered:
			registeredCount++
			detail = "`TAKEN`"
			if days := daysUntil(entry.Expiry); !entry.Expiry.IsZero() {
				if days < 0 {
					detail = "`EXPIRED ❌`"
				} else if days < 30 {
					detail = fmt.Sprintf("`%d days ⚠️`", days)
				} else {
					detail = fmt.Sprintf("`%d days`", days)
				}
			}
		default:
			pendingCount++
			detail = "`PENDING`"
		}
		lines = append(lines, fmt.Sprintf("%s | %s **%s** » %s", stateEmoji(entry.LastState), marker, entry.Domain, detail))
	}

	value := "*No domains configured*"
	if len(lines) > 0 {
		value = strings.Join(lines, "\n")
	}
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "📊 Domains",
		Value:  value,
		Inline: false,
	})

	if len(entries) > 0 {
		rate := float64(availableCount) / float64(len(entries)) * 100
		statsText := fmt.Sprintf("```\nAvailability : [%s] %.1f%%\nMonitored    : %d\nAvailable    : %d\nRegistered   : %d\nPending      : %d\n```",
			progressBar(rate, 20), rate, len(entries), availableCount, registeredCount, pendingCount)
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "📈 Statistics",
			Value:  statsText,
			Inline: false,
		})
	}

	lastCheckText := "no full check yet"
	if !lastFullCheck.IsZero() {
		lastCheckText = fmt.Sprintf("last full check %s", lastFullCheck.Format("02.01.2006 15:04"))
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Checks: %d | Changes: %d | %s", stats.TotalChecks, stats.StateChanges, lastCheckText),
	}
	embed.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return &embed
}

func progressBar(percentage float64, length int) string {
	filled := int(percentage / 100 * float64(length))
	if filled > length {
		filled = length
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}
