package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/DowntimeForge/internal/database"
	"github.com/osse101/DowntimeForge/internal/domain"
)

var (
	testDBConnString string
	testPool         *pgxpool.Pool
)

// setupContainer starts postgres and applies the embedded migrations.
// It returns a no-op terminate func when Docker is unavailable.
func setupContainer(ctx context.Context) func() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return func() {}
	}
	terminate := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		terminate()
		return func() {}
	}

	pool, err := database.NewPool(ctx, connStr, 20, time.Minute, 5*time.Minute)
	if err != nil {
		fmt.Printf("WARNING: Failed to connect: %v\n", err)
		terminate()
		return func() {}
	}
	if err := database.Migrate(ctx, pool); err != nil {
		fmt.Printf("WARNING: Failed to apply migrations: %v\n", err)
		pool.Close()
		terminate()
		return func() {}
	}

	testDBConnString = connStr
	testPool = pool
	return func() {
		pool.Close()
		terminate()
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testPool == nil {
		t.Skip("Skipping integration test: database not available")
	}
}

func seedCharacter(t *testing.T, name string, level, gold, downtime int, abilities domain.AbilityScores) int {
	t.Helper()
	var id int
	err := testPool.QueryRow(context.Background(), `
		INSERT INTO characters (name, level, gold, downtime, strength, dexterity, constitution, intelligence, wisdom, charisma)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING character_id`,
		name, level, gold, downtime, abilities.Strength, abilities.Dexterity, abilities.Constitution,
		abilities.Intelligence, abilities.Wisdom, abilities.Charisma).Scan(&id)
	if err != nil {
		t.Fatalf("seed character: %v", err)
	}
	return id
}

func seedItem(t *testing.T, repo *CatalogRepository, item domain.Item) int {
	t.Helper()
	id, err := repo.UpsertItem(context.Background(), &item)
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return id
}

func seedInventory(t *testing.T, characterID, itemID, quantity int) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO inventory_lines (character_id, item_id, quantity) VALUES ($1, $2, $3)`,
		characterID, itemID, quantity)
	if err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}
