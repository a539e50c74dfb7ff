package domain

import "time"

// Item is a catalog entry that can sit in an inventory
type Item struct {
	ID           int       `json:"item_id" db:"item_id"`
	InternalName string    `json:"internal_name" db:"internal_name"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	Description  string    `json:"description" db:"item_description"`
	IsMagical    bool      `json:"is_magical" db:"is_magical"`
	Rarity       Rarity    `json:"rarity" db:"rarity"`
	Investigable bool      `json:"investigable" db:"investigable"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
}

// InventoryLine is a (character, item) quantity. A line never stores zero, it is deleted instead.
type InventoryLine struct {
	CharacterID int    `json:"character_id"`
	ItemID      int    `json:"item_id"`
	ItemName    string `json:"item_name"`
	Quantity    int    `json:"quantity"`
}

// Inventory is a character's inventory keyed by item id
type Inventory map[int]InventoryLine

// NewInventory indexes lines by item id
func NewInventory(lines []InventoryLine) Inventory {
	inv := make(Inventory, len(lines))
	for _, l := range lines {
		inv[l.ItemID] = l
	}
	return inv
}

// Quantity returns how many of itemID are held
func (inv Inventory) Quantity(itemID int) int {
	return inv[itemID].Quantity
}

// Lines returns the inventory as a slice
func (inv Inventory) Lines() []InventoryLine {
	out := make([]InventoryLine, 0, len(inv))
	for _, l := range inv {
		out = append(out, l)
	}
	return out
}

// SyncMetadata fingerprints the catalog file from its last successful sync; a matching hash skips the next one
type SyncMetadata struct {
	ConfigName   string    `json:"config_name"`
	LastSyncTime time.Time `json:"last_sync_time"`
	FileHash     string    `json:"file_hash"`
	FileModTime  time.Time `json:"file_mod_time"`
}
