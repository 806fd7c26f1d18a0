package bot

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

const prefix string = "!"

const (
	COMMAND_DOMAINCHECK      = iota
	COMMAND_WATCHLIST        = iota
	COMMAND_WATCHLIST_ADD    = iota
	COMMAND_WATCHLIST_REMOVE = iota
	COMMAND_REPORT           = iota
	COMMAND_HELP             = iota
)

const (
	PARSEID_OK                        = iota
	PARSEID_NO_BOT_PREFIX             = iota
	PARSEID_NO_COMMAND                = iota
	PARSEID_COMMAND_NOT_RECOGNISED    = iota
	PARSEID_NO_INPUT                  = iota
	PARSEID_NOT_A_DOMAIN              = iota
	PARSEID_SUBCOMMAND_NOT_RECOGNISED = iota
)

var errorMessages map[int]string = map[int]string{
	PARSEID_NO_COMMAND:                "No command provided",
	PARSEID_COMMAND_NOT_RECOGNISED:    "Command `%s` not recognised",
	PARSEID_NO_INPUT:                  "Command `%s` requires a domain",
	PARSEID_NOT_A_DOMAIN:              "Input `%s` does not look like a domain name",
	PARSEID_SUBCOMMAND_NOT_RECOGNISED: "Watchlist action `%s` not recognised",
}

type WatchlistAddArgs struct {
	domain   string
	priority bool
}

type ParseResult struct {
	command      int
	parseid      int
	errorMessage string
	arguments    interface{}
}

func Parse(message string) ParseResult {

	noInput := func(command int, commandString string) ParseResult {
		parseid := PARSEID_NO_INPUT
		return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}

	// The message has to start with the bot prefix
	if !strings.HasPrefix(message, prefix) {
		log.Debug().Msg("Reject message not intended for the bot")
		return ParseResult{parseid: PARSEID_NO_BOT_PREFIX}
	}

	// Get the command if valid
	words := strings.Fields(strings.TrimSpace(message[len(prefix):]))
	if len(words) == 0 {
		parseid := PARSEID_NO_COMMAND
		return ParseResult{parseid: parseid, errorMessage: errorMessages[parseid]}
	}
	commandString := strings.ToLower(words[0])
	words = words[1:]

	// Match the command

	switch commandString {
	case "domaincheck", "dc", "check":
		// !domaincheck <domain>
		command := COMMAND_DOMAINCHECK
		if len(words) == 0 {
			return noInput(command, commandString)
		}
		return parseDomain(command, words[0])
	case "watchlist", "wl":
		// !watchlist
		// !watchlist add <domain> [priority]
		// !watchlist remove <domain>
		if len(words) == 0 {
			return ParseResult{command: COMMAND_WATCHLIST, parseid: PARSEID_OK}
		}
		action := strings.ToLower(words[0])
		words = words[1:]
		switch action {
		case "add":
			command := COMMAND_WATCHLIST_ADD
			if len(words) == 0 {
				return noInput(command, "watchlist add")
			}
			result := parseDomain(command, words[0])
			if result.parseid != PARSEID_OK {
				return result
			}
			priority := len(words) > 1 && parsePriority(words[1])
			return ParseResult{command: command, parseid: PARSEID_OK, arguments: WatchlistAddArgs{domain: result.arguments.(string), priority: priority}}
		case "remove":
			command := COMMAND_WATCHLIST_REMOVE
			if len(words) == 0 {
				return noInput(command, "watchlist remove")
			}
			return parseDomain(command, words[0])
		default:
			parseid := PARSEID_SUBCOMMAND_NOT_RECOGNISED
			return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], action)}
		}
	case "report", "weekly":
		// !report
		return ParseResult{command: COMMAND_REPORT, parseid: PARSEID_OK}
	case "help":
		// !help
		return ParseResult{command: COMMAND_HELP, parseid: PARSEID_OK}
	default:
		parseid := PARSEID_COMMAND_NOT_RECOGNISED
		return ParseResult{parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], commandString)}
	}
}

// A light sanity check: a single word made of characters
// that can appear in a domain name
func parseDomain(command int, word string) ParseResult {
	domain := strings.ToLower(word)
	for _, r := range domain {
		valid := r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-' || r == '.'
		if !valid {
			parseid := PARSEID_NOT_A_DOMAIN
			return ParseResult{command: command, parseid: parseid, errorMessage: fmt.Sprintf(errorMessages[parseid], word)}
		}
	}
	return ParseResult{command: command, parseid: PARSEID_OK, arguments: domain}
}

// Several spellings are accepted for the priority flag
func parsePriority(word string) bool {
	switch strings.ToLower(word) {
	case "true", "yes", "1", "priority":
		return true
	default:
		return false
	}
}
