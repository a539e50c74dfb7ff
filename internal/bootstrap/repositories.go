package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/DowntimeForge/internal/database/postgres"
	"github.com/osse101/DowntimeForge/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	Crafting repository.Crafting
	Research repository.Research
	Catalog  repository.Catalog
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Crafting: postgres.NewCraftingRepository(dbPool),
		Research: postgres.NewResearchRepository(dbPool),
		Catalog:  postgres.NewCatalogRepository(dbPool),
	}
}
