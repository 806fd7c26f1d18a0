package bot

import (
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"domainwatch/internal/checker"
	"domainwatch/internal/config"
	"domainwatch/internal/monitor"
	"domainwatch/internal/watchlist"
)

// Bot wires the discord session to the watchlist, the checker and the
// monitor. Command handling is thin glue: parse, call into the core,
// format the responses
type Bot struct {
	cfg     config.Config
	store   *watchlist.Store
	checker *checker.Checker
	monitor *monitor.Monitor

	// The live status embed, edited in place on refresh
	statusMessageId string
}

func New(cfg config.Config, store *watchlist.Store, chk *checker.Checker) *Bot {
	return &Bot{cfg: cfg, store: store, checker: chk}
}

// Run opens the discord session, starts the monitor loop and blocks
// until the process is interrupted (ctrl + C)
func (bot *Bot) Run() error {

	// Create session
	discord, err := discordgo.New("Bot " + bot.cfg.Token)
	if err != nil {
		return fmt.Errorf("could not create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	// Event handler
	discord.AddHandler(bot.Receive)

	// Open session
	if err := discord.Open(); err != nil {
		return fmt.Errorf("could not open discord session: %w", err)
	}
	defer discord.Close()

	// The monitor posts through the same session the commands use
	messenger := &ChannelMessenger{
		discord:     discord,
		channelId:   bot.cfg.ReportChannelId,
		alertRoleId: bot.cfg.AlertRoleId,
	}
	bot.monitor = monitor.New(bot.store, bot.checker, monitor.NewNotifier(messenger), monitor.Config{
		MainCycle:     bot.cfg.MainCycle,
		CheckInterval: bot.cfg.CheckInterval,
		ReportWeekday: bot.cfg.ReportWeekday,
		ReportHour:    bot.cfg.ReportHour,
	})
	bot.monitor.AddHousekeeping(bot.cfg.StatusRefresh, func() { bot.refreshStatus(discord) })
	go bot.monitor.Run()
	defer bot.monitor.Stop()

	log.Info().Msg("Bot is up, waiting for interruption")
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	return nil
}

func (bot *Bot) Receive(discord *discordgo.Session, message *discordgo.MessageCreate) {

	// Reject my own messages
	if message.Author.ID == discord.State.User.ID {
		return
	}

	// Ignore messages from private channels
	if message.GuildID == "" {
		log.Debug().Msg("Ignoring private message")
		return
	}

	// Parse the input provided and call the appropriate function
	parseResult := Parse(message.Content)
	switch parseResult.parseid {
	case PARSEID_NO_BOT_PREFIX:
		return
	case PARSEID_OK:
		log.Info().Str("command", message.Content).Msg("Command understood")
		var responses []Response
		switch parseResult.command {
		case COMMAND_DOMAINCHECK:
			switch domain := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of domain %T", domain))
			case string:
				responses = bot.domaincheck(discord, message.ChannelID, domain)
			}
		case COMMAND_WATCHLIST:
			responses = bot.watchlist()
		case COMMAND_WATCHLIST_ADD:
			switch args := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of arguments %T", args))
			case WatchlistAddArgs:
				responses = bot.watchlistAdd(args.domain, args.priority)
			}
		case COMMAND_WATCHLIST_REMOVE:
			switch domain := parseResult.arguments.(type) {
			default:
				panic(fmt.Sprintf("unexpected type of domain %T", domain))
			case string:
				responses = bot.watchlistRemove(domain)
			}
		case COMMAND_REPORT:
			responses = bot.report(discord, message)
		case COMMAND_HELP:
			responses = HelpMessage()
		default:
			panic(fmt.Sprintf("Command %d is not one of the possible ones", parseResult.command))
		}
		bot.sendResponses(discord, message.ChannelID, responses)
	default:

		// The command is invalid input, so it contains an error message
		log.Warn().Str("input", message.Content).Str("reason", parseResult.errorMessage).Msg("Wrong input")
		bot.sendResponses(discord, message.ChannelID, InputNotValid(parseResult.errorMessage))
	}
}

func (bot *Bot) sendResponses(discord *discordgo.Session, channelId string, responses []Response) {
	for _, response := range responses {
		response.Send(channelId, discord)
	}
}

// Check a domain and all its TLD variants. A progress message goes out
// first and is edited into the results once the queries are done
func (bot *Bot) domaincheck(discord *discordgo.Session, channelId string, domain string) []Response {

	progress, err := discord.ChannelMessageSendEmbed(channelId, CheckingMessage(domain))
	if err != nil {
		log.Error().Err(err).Msg("Could not send progress message")
	}

	results := bot.checker.CheckVariants(domain, true)
	embed := DomainCheckMessage(domain, results)

	if progress != nil {
		if _, err := discord.ChannelMessageEditEmbed(channelId, progress.ID, embed); err == nil {
			return nil
		}
		log.Error().Msg("Could not edit progress message")
	}
	return []Response{ResponseEmbed{*embed}}
}

func (bot *Bot) watchlist() []Response {
	stats, _ := bot.store.Stats()
	return WatchlistMessage(bot.store.List(), stats)
}

func (bot *Bot) watchlistAdd(domain string, priority bool) []Response {
	err := bot.store.Add(domain, priority)
	switch {
	case err == nil:
		log.Info().Str("domain", domain).Bool("priority", priority).Msg("Domain added to the watchlist")
		return DomainAdded(domain, priority)
	case errors.Is(err, watchlist.ErrDuplicateEntry):
		return DomainAlreadyWatched(domain)
	default:
		log.Error().Err(err).Str("domain", domain).Msg("Could not persist the watchlist")
		return PersistenceError()
	}
}

func (bot *Bot) watchlistRemove(domain string) []Response {
	err := bot.store.Remove(domain)
	switch {
	case err == nil:
		log.Info().Str("domain", domain).Msg("Domain removed from the watchlist")
		return DomainRemoved(domain)
	case errors.Is(err, watchlist.ErrNotFound):
		return DomainNotWatched(domain)
	default:
		log.Error().Err(err).Str("domain", domain).Msg("Could not persist the watchlist")
		return PersistenceError()
	}
}

// The report command is reserved for administrators
func (bot *Bot) report(discord *discordgo.Session, message *discordgo.MessageCreate) []Response {
	permissions, err := discord.UserChannelPermissions(message.Author.ID, message.ChannelID)
	if err != nil || permissions&discordgo.PermissionAdministrator == 0 {
		log.Warn().Str("user", message.Author.ID).Msg("Report requested without administrator permission")
		return NotAdministrator()
	}
	bot.monitor.ForceReport()
	return ReportDone()
}

// Keep a single status embed in the status channel, edited in place.
// If the message went missing, post a fresh one
func (bot *Bot) refreshStatus(discord *discordgo.Session) {
	if bot.cfg.StatusChannelId == "" {
		return
	}
	stats, lastFullCheck := bot.store.Stats()
	embed := StatusEmbed(bot.store.List(), stats, lastFullCheck)

	if bot.statusMessageId != "" {
		if _, err := discord.ChannelMessageEditEmbed(bot.cfg.StatusChannelId, bot.statusMessageId, embed); err == nil {
			return
		}
	}
	message, err := discord.ChannelMessageSendEmbed(bot.cfg.StatusChannelId, embed)
	if err != nil {
		log.Error().Err(err).Msg("Could not post status embed")
		return
	}
	bot.statusMessageId = message.ID
}
