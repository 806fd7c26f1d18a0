package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoPrefix(t *testing.T) {
	result := Parse("hello there")
	assert.Equal(t, PARSEID_NO_BOT_PREFIX, result.parseid)
}

func TestParseNoCommand(t *testing.T) {
	result := Parse("!")
	assert.Equal(t, PARSEID_NO_COMMAND, result.parseid)
}

func TestParseUnknownCommand(t *testing.T) {
	result := Parse("!frobnicate")
	assert.Equal(t, PARSEID_COMMAND_NOT_RECOGNISED, result.parseid)
	assert.Contains(t, result.errorMessage, "frobnicate")
}

func TestParseDomaincheck(t *testing.T) {
	for _, message := range []string{"!domaincheck example.com", "!dc example.com", "!check Example.COM"} {
		result := Parse(message)
		require.Equal(t, PARSEID_OK, result.parseid, message)
		assert.Equal(t, COMMAND_DOMAINCHECK, result.command)
		assert.Equal(t, "example.com", result.arguments)
	}
}

func TestParseDomaincheckWithoutDomain(t *testing.T) {
	result := Parse("!domaincheck")
	assert.Equal(t, PARSEID_NO_INPUT, result.parseid)
}

func TestParseNotADomain(t *testing.T) {
	result := Parse("!domaincheck exa_mple")
	assert.Equal(t, PARSEID_NOT_A_DOMAIN, result.parseid)
}

func TestParseWatchlist(t *testing.T) {
	result := Parse("!watchlist")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_WATCHLIST, result.command)
}

func TestParseWatchlistAdd(t *testing.T) {
	result := Parse("!watchlist add foo.de true")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_WATCHLIST_ADD, result.command)
	assert.Equal(t, WatchlistAddArgs{domain: "foo.de", priority: true}, result.arguments)

	// Priority defaults to false
	result = Parse("!watchlist add foo.de")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, WatchlistAddArgs{domain: "foo.de", priority: false}, result.arguments)

	result = Parse("!watchlist add foo.de maybe")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, WatchlistAddArgs{domain: "foo.de", priority: false}, result.arguments)
}

func TestParseWatchlistRemove(t *testing.T) {
	result := Parse("!watchlist remove foo.de")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_WATCHLIST_REMOVE, result.command)
	assert.Equal(t, "foo.de", result.arguments)
}

func TestParseWatchlistUnknownAction(t *testing.T) {
	result := Parse("!watchlist destroy foo.de")
	assert.Equal(t, PARSEID_SUBCOMMAND_NOT_RECOGNISED, result.parseid)
}

func TestParseReportAndHelp(t *testing.T) {
	result := Parse("!report")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_REPORT, result.command)

	result = Parse("!help")
	require.Equal(t, PARSEID_OK, result.parseid)
	assert.Equal(t, COMMAND_HELP, result.command)
}

func TestParsePriority(t *testing.T) {
	for _, word := range []string{"true", "Yes", "1", "priority"} {
		assert.True(t, parsePriority(word), word)
	}
	for _, word := range []string{"false", "no", "0", ""} {
		assert.False(t, parsePriority(word), word)
	}
}
