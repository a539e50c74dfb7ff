package research

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/repository"
)

// MockRepository for research tests. Writes made inside a transaction are applied on Commit.
type MockRepository struct {
	sync.RWMutex
	characters   map[int]*domain.Character
	items        map[int]*domain.Item
	recipes      map[int]*domain.Recipe
	inventories  map[int]map[int]int
	competencies map[int]map[string]domain.Grade
	researches   map[uuid.UUID]*domain.Research
	rolls        map[uuid.UUID][]domain.ResearchRoll
	unlocks      map[int][]domain.RecipeUnlock

	charLocks   map[int]*sync.Mutex
	charLocksMu sync.Mutex

	commitError error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		characters:   make(map[int]*domain.Character),
		items:        make(map[int]*domain.Item),
		recipes:      make(map[int]*domain.Recipe),
		inventories:  make(map[int]map[int]int),
		competencies: make(map[int]map[string]domain.Grade),
		researches:   make(map[uuid.UUID]*domain.Research),
		rolls:        make(map[uuid.UUID][]domain.ResearchRoll),
		unlocks:      make(map[int][]domain.RecipeUnlock),
		charLocks:    make(map[int]*sync.Mutex),
	}
}

func (m *MockRepository) charLock(id int) *sync.Mutex {
	m.charLocksMu.Lock()
	defer m.charLocksMu.Unlock()
	if _, ok := m.charLocks[id]; !ok {
		m.charLocks[id] = &sync.Mutex{}
	}
	return m.charLocks[id]
}

func (m *MockRepository) character(id int) domain.Character {
	m.RLock()
	defer m.RUnlock()
	return *m.characters[id]
}

func (m *MockRepository) research(id uuid.UUID) domain.Research {
	m.RLock()
	defer m.RUnlock()
	return *m.researches[id]
}

func (m *MockRepository) GetProficiencyBonus(ctx context.Context, level int) (int, bool, error) {
	return 0, false, nil
}

func (m *MockRepository) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	m.RLock()
	defer m.RUnlock()
	r, ok := m.recipes[recipeID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	m.RLock()
	defer m.RUnlock()
	item, ok := m.items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (m *MockRepository) GetResearch(ctx context.Context, researchID uuid.UUID) (*domain.Research, error) {
	m.RLock()
	defer m.RUnlock()
	r, ok := m.researches[researchID]
	if !ok {
		return nil, domain.ErrResearchNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockRepository) GetResearches(ctx context.Context, characterID int) ([]domain.Research, error) {
	m.RLock()
	defer m.RUnlock()
	out := make([]domain.Research, 0)
	for _, r := range m.researches {
		if r.CharacterID == characterID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *MockRepository) GetResearchRolls(ctx context.Context, researchID uuid.UUID) ([]domain.ResearchRoll, error) {
	m.RLock()
	defer m.RUnlock()
	stored := m.rolls[researchID]
	out := make([]domain.ResearchRoll, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}

func (m *MockRepository) GetUnlockedRecipes(ctx context.Context, characterID int) ([]domain.RecipeUnlock, error) {
	m.RLock()
	defer m.RUnlock()
	return append([]domain.RecipeUnlock{}, m.unlocks[characterID]...), nil
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.ResearchTx, error) {
	return &MockTx{repo: m, locked: make(map[int]bool)}, nil
}

// MockTx for transaction support
type MockTx struct {
	repo   *MockRepository
	locked map[int]bool
	ops    []func()
	done   bool
}

func (t *MockTx) lock(id int) {
	if !t.locked[id] {
		t.repo.charLock(id).Lock()
		t.locked[id] = true
	}
}

func (t *MockTx) release() {
	for id := range t.locked {
		t.repo.charLock(id).Unlock()
	}
	t.locked = map[int]bool{}
	t.done = true
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	defer t.release()
	t.repo.Lock()
	defer t.repo.Unlock()
	if t.repo.commitError != nil {
		return t.repo.commitError
	}
	for _, op := range t.ops {
		op()
	}
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if t.done {
		return errors.New(domain.ErrMsgTxClosed)
	}
	t.release()
	return nil
}

func (t *MockTx) GetCharacterForUpdate(ctx context.Context, characterID int) (*domain.Character, error) {
	t.lock(characterID)
	t.repo.RLock()
	defer t.repo.RUnlock()
	c, ok := t.repo.characters[characterID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	cp := *c
	return &cp, nil
}

func (t *MockTx) UpdateCharacterEconomy(ctx context.Context, characterID int, economy domain.Economy) error {
	t.ops = append(t.ops, func() {
		c := t.repo.characters[characterID]
		c.Gold, c.Downtime = economy.Gold, economy.Downtime
	})
	return nil
}

func (t *MockTx) GetInventoryForUpdate(ctx context.Context, characterID int) (domain.Inventory, error) {
	t.lock(characterID)
	t.repo.RLock()
	defer t.repo.RUnlock()
	lines := make([]domain.InventoryLine, 0)
	for itemID, qty := range t.repo.inventories[characterID] {
		lines = append(lines, domain.InventoryLine{CharacterID: characterID, ItemID: itemID, Quantity: qty})
	}
	return domain.NewInventory(lines), nil
}

func (t *MockTx) DeductInventory(ctx context.Context, characterID, itemID, quantity int) error {
	return errors.New("research never deducts inventory")
}

func (t *MockTx) CreditInventory(ctx context.Context, characterID, itemID, quantity int) error {
	return errors.New("research never credits inventory")
}

func (t *MockTx) GetCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, error) {
	t.repo.RLock()
	defer t.repo.RUnlock()
	grade, ok := t.repo.competencies[characterID][tool]
	if !ok {
		return nil, nil
	}
	return &domain.ToolCompetency{CharacterID: characterID, Tool: tool, Grade: grade}, nil
}

func (t *MockTx) IsRecipeUnlocked(ctx context.Context, characterID, recipeID int) (bool, error) {
	t.repo.RLock()
	defer t.repo.RUnlock()
	for _, u := range t.repo.unlocks[characterID] {
		if u.RecipeID == recipeID {
			return true, nil
		}
	}
	return false, nil
}

func (t *MockTx) HasActiveResearch(ctx context.Context, characterID, recipeID int) (bool, error) {
	t.repo.RLock()
	defer t.repo.RUnlock()
	for _, r := range t.repo.researches {
		if r.CharacterID == characterID && r.RecipeID == recipeID && r.State == domain.ResearchInProgress {
			return true, nil
		}
	}
	return false, nil
}

func (t *MockTx) CreateResearch(ctx context.Context, research *domain.Research) error {
	cp := *research
	t.ops = append(t.ops, func() { t.repo.researches[cp.ID] = &cp })
	return nil
}

func (t *MockTx) GetResearchForUpdate(ctx context.Context, researchID uuid.UUID) (*domain.Research, error) {
	t.repo.RLock()
	r, ok := t.repo.researches[researchID]
	t.repo.RUnlock()
	if !ok {
		return nil, domain.ErrResearchNotFound
	}
	t.lock(r.CharacterID)
	return t.repo.GetResearch(ctx, researchID)
}

func (t *MockTx) UpdateResearch(ctx context.Context, research *domain.Research) error {
	cp := *research
	t.ops = append(t.ops, func() { t.repo.researches[cp.ID] = &cp })
	return nil
}

func (t *MockTx) InsertResearchRoll(ctx context.Context, roll *domain.ResearchRoll) error {
	cp := *roll
	t.ops = append(t.ops, func() {
		cp.ID = int64(len(t.repo.rolls[cp.ResearchID]) + 1)
		t.repo.rolls[cp.ResearchID] = append(t.repo.rolls[cp.ResearchID], cp)
	})
	return nil
}

func (t *MockTx) UnlockRecipe(ctx context.Context, unlock *domain.RecipeUnlock) error {
	cp := *unlock
	t.ops = append(t.ops, func() {
		t.repo.unlocks[cp.CharacterID] = append(t.repo.unlocks[cp.CharacterID], cp)
	})
	return nil
}

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *MockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *MockPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

const (
	testCharacterID = 1

	itemSteel      = 20
	itemFireCore   = 21
	itemFlameSword = 22
	itemTrollBlood = 23

	recipeFlameTongue = 300
	recipeOpen        = 301
)

func setupTestData(repo *MockRepository) {
	repo.items[itemSteel] = &domain.Item{ID: itemSteel, InternalName: "steel_ingot", DisplayName: "Steel Ingot"}
	repo.items[itemFireCore] = &domain.Item{
		ID: itemFireCore, InternalName: "fire_elemental_core", DisplayName: "Fire Elemental Core",
		IsMagical: true, Rarity: domain.RarityRare, Investigable: true,
	}
	repo.items[itemFlameSword] = &domain.Item{ID: itemFlameSword, InternalName: "flame_tongue", DisplayName: "Flame Tongue", IsMagical: true, Rarity: domain.RarityRare}
	repo.items[itemTrollBlood] = &domain.Item{
		ID: itemTrollBlood, InternalName: "troll_blood", DisplayName: "Troll Blood",
		IsMagical: true, Rarity: domain.RarityUncommon, Investigable: true,
	}

	core := itemFireCore
	repo.recipes[recipeFlameTongue] = &domain.Recipe{
		ID: recipeFlameTongue, Key: "flame_tongue", OutputItemID: itemFlameSword, OutputItemName: "Flame Tongue",
		OutputQuantity: 1, IsMagical: true, Tool: "Smith's Tools", Rarity: domain.RarityRare,
		RareMaterialID: &core, RequiresResearch: true,
		Ingredients: []domain.Ingredient{{ItemID: itemSteel, Quantity: 3}},
	}
	repo.recipes[recipeOpen] = &domain.Recipe{
		ID: recipeOpen, Key: "steel_bar", OutputItemID: itemSteel, OutputItemName: "Steel Ingot",
		OutputQuantity: 1, GoldCost: 10,
	}

	repo.characters[testCharacterID] = &domain.Character{
		ID: testCharacterID, Name: "Ilse", Level: 1, Gold: 100, Downtime: 10,
		Abilities: domain.AbilityScores{
			Strength: 10, Dexterity: 10, Constitution: 10,
			Intelligence: 16, Wisdom: 12, Charisma: 8,
		},
	}
	repo.inventories[testCharacterID] = map[int]int{itemFireCore: 1, itemTrollBlood: 1}
}
