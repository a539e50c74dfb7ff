package crafting

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/DowntimeForge/internal/dice"
	"github.com/osse101/DowntimeForge/internal/domain"
	"github.com/osse101/DowntimeForge/internal/event"
	"github.com/osse101/DowntimeForge/internal/repository"
)

// MockRepository for crafting tests with thread-safety and row locking simulation.
// Transaction writes are buffered and only applied on Commit.
type MockRepository struct {
	sync.RWMutex
	characters   map[int]*domain.Character
	items        map[int]*domain.Item
	recipes      map[int]*domain.Recipe
	inventories  map[int]map[int]int
	competencies map[int]*domain.ToolCompetency
	sessions     map[uuid.UUID]*domain.ProgressSession
	rolls        map[uuid.UUID][]domain.RollRecord
	unlocked     map[int]map[int]bool
	proficiency  map[int]int

	nextCompetencyID int
	nextRollID       int64

	// Character locks for simulating DB row locking
	charLocks   map[int]*sync.Mutex
	charLocksMu sync.Mutex

	// Error injection for testing
	beginTxError          error
	commitError           error
	serializationFailures int
	commits               int
	recipeReads           int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		characters:   make(map[int]*domain.Character),
		items:        make(map[int]*domain.Item),
		recipes:      make(map[int]*domain.Recipe),
		inventories:  make(map[int]map[int]int),
		competencies: make(map[int]*domain.ToolCompetency),
		sessions:     make(map[uuid.UUID]*domain.ProgressSession),
		rolls:        make(map[uuid.UUID][]domain.RollRecord),
		unlocked:     make(map[int]map[int]bool),
		proficiency:  make(map[int]int),
		charLocks:    make(map[int]*sync.Mutex),
	}
}

func (m *MockRepository) charLock(characterID int) *sync.Mutex {
	m.charLocksMu.Lock()
	defer m.charLocksMu.Unlock()
	if _, ok := m.charLocks[characterID]; !ok {
		m.charLocks[characterID] = &sync.Mutex{}
	}
	return m.charLocks[characterID]
}

// ==================== Fixture helpers ====================

func (m *MockRepository) addCharacter(c domain.Character) {
	m.Lock()
	defer m.Unlock()
	m.characters[c.ID] = &c
}

func (m *MockRepository) addItem(id int, name string) {
	m.Lock()
	defer m.Unlock()
	m.items[id] = &domain.Item{ID: id, InternalName: name, DisplayName: name}
}

func (m *MockRepository) addRecipe(r domain.Recipe) {
	m.Lock()
	defer m.Unlock()
	if item, ok := m.items[r.OutputItemID]; ok {
		r.OutputItemName = item.DisplayName
	}
	for i := range r.Ingredients {
		if item, ok := m.items[r.Ingredients[i].ItemID]; ok {
			r.Ingredients[i].ItemName = item.DisplayName
		}
	}
	if r.RareMaterialID != nil {
		if item, ok := m.items[*r.RareMaterialID]; ok {
			r.RareMaterialName = item.DisplayName
		}
	}
	m.recipes[r.ID] = &r
}

func (m *MockRepository) give(characterID, itemID, qty int) {
	m.Lock()
	defer m.Unlock()
	if m.inventories[characterID] == nil {
		m.inventories[characterID] = make(map[int]int)
	}
	m.inventories[characterID][itemID] += qty
}

func (m *MockRepository) setCompetency(characterID int, tool string, grade domain.Grade, successes int) *domain.ToolCompetency {
	m.Lock()
	defer m.Unlock()
	m.nextCompetencyID++
	c := &domain.ToolCompetency{ID: m.nextCompetencyID, CharacterID: characterID, Tool: tool, Grade: grade, Successes: successes}
	m.competencies[c.ID] = c
	return c
}

func (m *MockRepository) unlock(characterID, recipeID int) {
	m.Lock()
	defer m.Unlock()
	if m.unlocked[characterID] == nil {
		m.unlocked[characterID] = make(map[int]bool)
	}
	m.unlocked[characterID][recipeID] = true
}

func (m *MockRepository) character(id int) domain.Character {
	m.RLock()
	defer m.RUnlock()
	return *m.characters[id]
}

func (m *MockRepository) quantity(characterID, itemID int) int {
	m.RLock()
	defer m.RUnlock()
	return m.inventories[characterID][itemID]
}

func (m *MockRepository) session(id uuid.UUID) domain.ProgressSession {
	m.RLock()
	defer m.RUnlock()
	return *m.sessions[id]
}

func (m *MockRepository) competencyFor(characterID int, tool string) *domain.ToolCompetency {
	m.RLock()
	defer m.RUnlock()
	for _, c := range m.competencies {
		if c.CharacterID == characterID && c.Tool == tool {
			cp := *c
			return &cp
		}
	}
	return nil
}

func (m *MockRepository) sessionCount() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.sessions)
}

func (m *MockRepository) rollCount(sessionID uuid.UUID) int {
	m.RLock()
	defer m.RUnlock()
	return len(m.rolls[sessionID])
}

func (m *MockRepository) heldItems(characterID int) domain.Inventory {
	m.RLock()
	defer m.RUnlock()
	return m.inventoryOf(characterID)
}

func (m *MockRepository) inventoryOf(characterID int) domain.Inventory {
	lines := make([]domain.InventoryLine, 0)
	for itemID, qty := range m.inventories[characterID] {
		if qty <= 0 {
			continue
		}
		name := ""
		if item, ok := m.items[itemID]; ok {
			name = item.DisplayName
		}
		lines = append(lines, domain.InventoryLine{CharacterID: characterID, ItemID: itemID, ItemName: name, Quantity: qty})
	}
	return domain.NewInventory(lines)
}

// ==================== repository.Crafting ====================

func (m *MockRepository) GetProficiencyBonus(ctx context.Context, level int) (int, bool, error) {
	m.RLock()
	defer m.RUnlock()
	bonus, ok := m.proficiency[level]
	return bonus, ok, nil
}

func (m *MockRepository) GetCharacter(ctx context.Context, characterID int) (*domain.Character, error) {
	m.RLock()
	defer m.RUnlock()
	c, ok := m.characters[characterID]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockRepository) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	m.Lock()
	defer m.Unlock()
	m.recipeReads++
	r, ok := m.recipes[recipeID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockRepository) GetAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	m.RLock()
	defer m.RUnlock()
	out := make([]domain.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) GetInventory(ctx context.Context, characterID int) (domain.Inventory, error) {
	m.RLock()
	defer m.RUnlock()
	return m.inventoryOf(characterID), nil
}

func (m *MockRepository) GetCompetencies(ctx context.Context, characterID int) ([]domain.ToolCompetency, error) {
	m.RLock()
	defer m.RUnlock()
	out := make([]domain.ToolCompetency, 0)
	for _, c := range m.competencies {
		if c.CharacterID == characterID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MockRepository) GetUnlockedRecipeIDs(ctx context.Context, characterID int) ([]int, error) {
	m.RLock()
	defer m.RUnlock()
	out := make([]int, 0)
	for id := range m.unlocked[characterID] {
		out = append(out, id)
	}
	return out, nil
}

func (m *MockRepository) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressSession, error) {
	m.RLock()
	defer m.RUnlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockRepository) GetSessions(ctx context.Context, characterID int, state domain.SessionState) ([]domain.ProgressSession, error) {
	m.RLock()
	defer m.RUnlock()
	out := make([]domain.ProgressSession, 0)
	for _, s := range m.sessions {
		if s.CharacterID == characterID && (state == "" || s.State == state) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (m *MockRepository) GetRollHistory(ctx context.Context, sessionID uuid.UUID) ([]domain.RollRecord, error) {
	m.RLock()
	defer m.RUnlock()
	history := m.rolls[sessionID]
	out := make([]domain.RollRecord, len(history))
	for i := range history {
		out[len(history)-1-i] = history[i]
	}
	return out, nil
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CraftingTx, error) {
	m.RLock()
	defer m.RUnlock()
	if m.beginTxError != nil {
		return nil, m.beginTxError
	}
	return &MockTx{repo: m, locked: make(map[int]bool)}, nil
}

// ==================== MockTx ====================

// MockTx for transaction support
type MockTx struct {
	repo   *MockRepository
	locked map[int]bool
	ops    []func()
	done   bool
}

func (t *MockTx) lockCharacter(characterID int) {
	if t.locked[characterID] {
		return
	}
	t.repo.charLock(characterID).Lock()
	t.locked[characterID] = true
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
	if t.repo.serializationFailures > 0 {
		t.repo.serializationFailures--
		return domain.ErrSerializationFailure
	}
	if t.repo.commitError != nil {
		return t.repo.commitError
	}
	for _, op := range t.ops {
		op()
	}
	t.repo.commits++
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
	t.lockCharacter(characterID)
	return t.repo.GetCharacter(ctx, characterID)
}

func (t *MockTx) UpdateCharacterEconomy(ctx context.Context, characterID int, economy domain.Economy) error {
	t.ops = append(t.ops, func() {
		c := t.repo.characters[characterID]
		c.Gold = economy.Gold
		c.Downtime = economy.Downtime
	})
	return nil
}

func (t *MockTx) GetInventoryForUpdate(ctx context.Context, characterID int) (domain.Inventory, error) {
	t.lockCharacter(characterID)
	return t.repo.GetInventory(ctx, characterID)
}

func (t *MockTx) DeductInventory(ctx context.Context, characterID, itemID, quantity int) error {
	t.ops = append(t.ops, func() {
		t.repo.inventories[characterID][itemID] -= quantity
		if t.repo.inventories[characterID][itemID] <= 0 {
			delete(t.repo.inventories[characterID], itemID)
		}
	})
	return nil
}

func (t *MockTx) CreditInventory(ctx context.Context, characterID, itemID, quantity int) error {
	t.ops = append(t.ops, func() {
		if t.repo.inventories[characterID] == nil {
			t.repo.inventories[characterID] = make(map[int]int)
		}
		t.repo.inventories[characterID][itemID] += quantity
	})
	return nil
}

func (t *MockTx) GetCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, error) {
	return t.repo.competencyFor(characterID, tool), nil
}

func (t *MockTx) IsRecipeUnlocked(ctx context.Context, characterID, recipeID int) (bool, error) {
	t.repo.RLock()
	defer t.repo.RUnlock()
	return t.repo.unlocked[characterID][recipeID], nil
}

func (t *MockTx) GetOrCreateCompetency(ctx context.Context, characterID int, tool string) (*domain.ToolCompetency, bool, error) {
	t.lockCharacter(characterID)
	if c := t.repo.competencyFor(characterID, tool); c != nil {
		return c, false, nil
	}
	t.repo.Lock()
	t.repo.nextCompetencyID++
	c := domain.NewToolCompetency(characterID, tool)
	c.ID = t.repo.nextCompetencyID
	t.repo.Unlock()

	stored := *c
	t.ops = append(t.ops, func() { t.repo.competencies[stored.ID] = &stored })
	return c, true, nil
}

func (t *MockTx) GetCompetencyForUpdate(ctx context.Context, competencyID int) (*domain.ToolCompetency, error) {
	t.repo.RLock()
	defer t.repo.RUnlock()
	c, ok := t.repo.competencies[competencyID]
	if !ok {
		return nil, errors.New("competency not found")
	}
	cp := *c
	return &cp, nil
}

func (t *MockTx) UpdateCompetency(ctx context.Context, competency *domain.ToolCompetency) error {
	cp := *competency
	t.ops = append(t.ops, func() { t.repo.competencies[cp.ID] = &cp })
	return nil
}

func (t *MockTx) CreateSession(ctx context.Context, session *domain.ProgressSession) error {
	cp := *session
	t.ops = append(t.ops, func() { t.repo.sessions[cp.ID] = &cp })
	return nil
}

func (t *MockTx) GetSessionForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.ProgressSession, error) {
	t.repo.RLock()
	s, ok := t.repo.sessions[sessionID]
	t.repo.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	t.lockCharacter(s.CharacterID)
	return t.repo.GetSession(ctx, sessionID)
}

func (t *MockTx) UpdateSession(ctx context.Context, session *domain.ProgressSession) error {
	cp := *session
	t.ops = append(t.ops, func() { t.repo.sessions[cp.ID] = &cp })
	return nil
}

func (t *MockTx) InsertRollRecord(ctx context.Context, record *domain.RollRecord) error {
	cp := *record
	t.ops = append(t.ops, func() {
		t.repo.nextRollID++
		cp.ID = t.repo.nextRollID
		t.repo.rolls[cp.SessionID] = append(t.repo.rolls[cp.SessionID], cp)
	})
	return nil
}

// ==================== Publisher ====================

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

func (p *MockPublisher) ofType(t event.Type) []event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []event.Event
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// ==================== Fixtures ====================

const (
	testCharacterID  = 1
	otherCharacterID = 2

	itemIron        = 10
	itemLeather     = 11
	itemSmithTools  = 12
	itemLongsword   = 13
	itemDragonHeart = 14
	itemVorpal      = 15
	itemCoal        = 16

	recipeLongsword = 100
	recipeVorpal    = 101
	recipeLocked    = 102
)

const smithTools = "Smith's Tools"

func newTestCharacter(id int) domain.Character {
	return domain.Character{
		ID:       id,
		Name:     "Brom",
		Level:    1,
		Gold:     100,
		Downtime: 10,
		Abilities: domain.AbilityScores{
			Strength: 10, Dexterity: 10, Constitution: 10,
			Intelligence: 10, Wisdom: 10, Charisma: 10,
		},
	}
}

// setupTestData seeds a smith with a mundane longsword recipe, a legendary recipe and a locked recipe
func setupTestData(repo *MockRepository) {
	repo.addItem(itemIron, "Iron Ingot")
	repo.addItem(itemLeather, "Leather Strip")
	repo.addItem(itemSmithTools, "Dwarven Smith's Tools")
	repo.addItem(itemLongsword, "Longsword")
	repo.addItem(itemDragonHeart, "Dragon Heart")
	repo.addItem(itemVorpal, "Vorpal Sword")
	repo.addItem(itemCoal, "Coal")

	repo.addRecipe(domain.Recipe{
		ID:             recipeLongsword,
		Key:            "longsword",
		OutputItemID:   itemLongsword,
		OutputQuantity: 1,
		Tool:           smithTools,
		MinGrade:       domain.GradeNovice,
		GoldCost:       30,
		Ingredients: []domain.Ingredient{
			{ItemID: itemIron, Quantity: 3},
			{ItemID: itemLeather, Quantity: 1},
		},
	})
	heart := itemDragonHeart
	repo.addRecipe(domain.Recipe{
		ID:             recipeVorpal,
		Key:            "vorpal_sword",
		OutputItemID:   itemVorpal,
		OutputQuantity: 1,
		IsMagical:      true,
		Tool:           smithTools,
		Rarity:         domain.RarityLegendary,
		RareMaterialID: &heart,
		Ingredients: []domain.Ingredient{
			{ItemID: itemIron, Quantity: 1},
		},
	})
	repo.addRecipe(domain.Recipe{
		ID:               recipeLocked,
		Key:              "coal_brick",
		OutputItemID:     itemCoal,
		OutputQuantity:   2,
		GoldCost:         5,
		RequiresResearch: true,
	})

	repo.addCharacter(newTestCharacter(testCharacterID))
	repo.give(testCharacterID, itemIron, 5)
	repo.give(testCharacterID, itemLeather, 2)
	repo.give(testCharacterID, itemSmithTools, 1)
}

func newTestService(repo *MockRepository, roller *dice.ScriptedRoller, pub *MockPublisher) Service {
	var publisher EventPublisher
	if pub != nil {
		publisher = pub
	}
	return NewService(repo, roller, publisher, nil, nil, Config{
		TxMaxRetries:        2,
		ProficiencyCacheTTL: time.Minute,
		RecipeCacheTTL:      time.Minute,
	})
}
