package main

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	waitMaxAttempts   = 30
	waitRetryInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(args []string) error {
	PrintHeader("Waiting for database...")

	ctx := context.Background()
	err := retry.Do(
		func() error {
			_, pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			pool.Close()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(waitMaxAttempts),
		retry.Delay(waitRetryInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			fmt.Printf("Database not ready (%d/%d): %v\n", n+1, waitMaxAttempts, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("database failed to become ready after %d attempts: %w", waitMaxAttempts, err)
	}

	PrintSuccess("Database is ready")
	return nil
}
