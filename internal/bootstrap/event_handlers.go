package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DowntimeForge/internal/config"
	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/metrics"
	"github.com/osse101/DowntimeForge/internal/notify"
)

// RegisterEventHandlers subscribes the metrics collector and, when configured, the Discord notifier.
// The returned session is nil when notifications are disabled; the caller closes it on shutdown.
func RegisterEventHandlers(cfg *config.Config, bus event.Bus) (*discordgo.Session, error) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if !cfg.NotifierEnabled() {
		slog.Info(LogMsgNotifierDisabled)
		return nil, nil
	}

	session, err := notify.NewDiscordSession(cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSession, err)
	}
	notify.NewDiscordNotifier(session, cfg.DiscordNotifyChannelID).Subscribe(bus)
	slog.Info(LogMsgNotifierRegistered, "channel_id", cfg.DiscordNotifyChannelID)

	return session, nil
}
