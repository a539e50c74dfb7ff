package crafting

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/logger"
	"github.com/osse101/DowntimeForge/internal/repository"
)

// ProficiencyTable resolves the level to proficiency bonus reference data.
// Levels missing from the table resolve to domain.DefaultProficiencyBonus.
type ProficiencyTable struct {
	ref repository.Reference
	lru *expirable.LRU[int, int]
}

// NewProficiencyTable creates a table backed by ref, caching each level for ttl
func NewProficiencyTable(ref repository.Reference, ttl time.Duration) *ProficiencyTable {
	if ttl <= 0 {
		ttl = DefaultProficiencyCacheTTL
	}
	return &ProficiencyTable{
		ref: ref,
		lru: expirable.NewLRU[int, int](ProficiencyCacheSize, nil, ttl),
	}
}

// Bonus returns the proficiency bonus for a character level
func (p *ProficiencyTable) Bonus(ctx context.Context, level int) (int, error) {
	if bonus, ok := p.lru.Get(level); ok {
		return bonus, nil
	}

	bonus, found, err := p.ref.GetProficiencyBonus(ctx, level)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgGetProficiencyFailed, err)
	}
	if !found {
		logger.FromContext(ctx).Debug(LogMsgProficiencyDefaulted, "level", level)
		bonus = domain.DefaultProficiencyBonus
	}

	p.lru.Add(level, bonus)
	return bonus, nil
}

// Purge drops every cached level
func (p *ProficiencyTable) Purge() {
	p.lru.Purge()
}

type recipeSource interface {
	GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error)
}

// recipeCache keeps recipe definitions in memory for the length of its TTL
type recipeCache struct {
	src recipeSource
	lru *expirable.LRU[int, *domain.Recipe]
}

func newRecipeCache(src recipeSource, ttl time.Duration) *recipeCache {
	if ttl <= 0 {
		ttl = DefaultRecipeCacheTTL
	}
	return &recipeCache{
		src: src,
		lru: expirable.NewLRU[int, *domain.Recipe](RecipeCacheSize, nil, ttl),
	}
}

// Get returns a shared recipe, callers must not mutate it
func (c *recipeCache) Get(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	if recipe, ok := c.lru.Get(recipeID); ok {
		return recipe, nil
	}
	recipe, err := c.src.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	c.lru.Add(recipeID, recipe)
	return recipe, nil
}
