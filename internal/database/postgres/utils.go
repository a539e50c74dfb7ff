package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx so reads can run inside or outside a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error(LogMsgRollbackFailed, "error", err)
	}
}

// ---- Common Helper Functions ----

// notFound maps pgx.ErrNoRows to the given sentinel and wraps everything else
func notFound(err error, sentinel error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return fmt.Errorf("%s: %w", op, err)
}

// txEnd implements repository.Tx over a pgx transaction
type txEnd struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *txEnd) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}
	return nil
}

// Rollback rolls back the transaction. A closed transaction reports domain.ErrMsgTxClosed.
func (t *txEnd) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return errors.New(domain.ErrMsgTxClosed)
	}
	return err
}

func parseGrade(name string) (domain.Grade, error) {
	g, err := domain.ParseGrade(name)
	if err != nil {
		return domain.GradeNovice, fmt.Errorf("%s: %w", ErrMsgCorruptRow, err)
	}
	return g, nil
}

func parseRarity(name string) (domain.Rarity, error) {
	r, err := domain.ParseRarity(name)
	if err != nil {
		return domain.RarityCommon, fmt.Errorf("%s: %w", ErrMsgCorruptRow, err)
	}
	return r, nil
}

// ---- End Common Helper Functions ----
