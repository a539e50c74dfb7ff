package main

import (
	"context"
	"fmt"
	"os"

	"github.com/osse101/DowntimeForge/internal/bootstrap"
	"github.com/osse101/DowntimeForge/internal/config"
	"github.com/osse101/DowntimeForge/internal/event"
)

const clearFlag = "--clear"

type ReplayDeadLettersCommand struct{}

func (c *ReplayDeadLettersCommand) Name() string {
	return "replay-deadletters"
}

func (c *ReplayDeadLettersCommand) Description() string {
	return "Re-publish dead-lettered events to the notifier [--clear]"
}

func (c *ReplayDeadLettersCommand) Run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path := cfg.EventDeadLetterPath
	PrintHeader(fmt.Sprintf("Replaying %s", path))

	entries, err := event.ReadDeadLetters(path)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		PrintInfo("Nothing to replay")
		return nil
	}
	if !cfg.NotifierEnabled() {
		PrintWarning("Discord notifier is not configured, events will only be counted")
	}

	bus := event.NewMemoryBus()
	session, err := bootstrap.RegisterEventHandlers(cfg, bus)
	if err != nil {
		return err
	}
	if session != nil {
		defer session.Close()
	}

	ctx := context.Background()
	failed := 0
	for _, entry := range entries {
		if err := bus.Publish(ctx, entry.Event); err != nil {
			PrintError("%s from %s: %v", entry.Event.Type, entry.Timestamp.Format("2006-01-02 15:04:05"), err)
			failed++
		}
	}
	PrintSuccess("Replayed %d of %d events", len(entries)-failed, len(entries))

	if failed > 0 {
		return fmt.Errorf("%d events failed again", failed)
	}
	if len(args) > 0 && args[0] == clearFlag {
		if err := os.Truncate(path, 0); err != nil {
			return err
		}
		PrintInfo("Cleared %s", path)
	}
	return nil
}
