package bootstrap

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	ResilientPublisher *event.ResilientPublisher
	DiscordSession     *discordgo.Session
}

// GracefulShutdown stops the server first so no new rolls start, then flushes
// pending events through the publisher while the notifier session is still open.
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.DiscordSession != nil {
		if err := components.DiscordSession.Close(); err != nil {
			slog.Error(LogMsgDiscordCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
