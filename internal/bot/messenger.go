package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"domainwatch/internal/monitor"
	"domainwatch/internal/watchlist"
)

// ChannelMessenger posts monitor notifications to the configured
// report channel. It implements monitor.Messenger
type ChannelMessenger struct {
	discord     *discordgo.Session
	channelId   string
	alertRoleId string
}

func (messenger *ChannelMessenger) SendAlert(transition monitor.Transition) {
	content := ""
	if messenger.alertRoleId != "" {
		content = fmt.Sprintf("<@&%s> Priority domain update!", messenger.alertRoleId)
	}
	if _, err := messenger.discord.ChannelMessageSendComplex(messenger.channelId, &discordgo.MessageSend{
		Content: content,
		Embed:   AlertMessage(transition),
	}); err != nil {
		log.Error().Err(err).Str("domain", transition.Domain).Msg("Could not send alert")
	}
}

func (messenger *ChannelMessenger) SendReport(transitions []monitor.Transition, entries []watchlist.Entry) {
	if _, err := messenger.discord.ChannelMessageSendEmbed(messenger.channelId, ReportMessage(transitions, entries)); err != nil {
		log.Error().Err(err).Msg("Could not send report")
	}
}
