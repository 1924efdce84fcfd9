// Package engine owns the game world: the party of characters, the item
// catalog and the store they are saved to. Game.Step wires parsing,
// resolution and item application into a single command.
package engine

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/engine/equip"
	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/engine/save"
	"github.com/nathoo/questrpg/logger"
	"github.com/nathoo/questrpg/types"
)

// Default armor handed out by Outfit.
const (
	DefaultArmorName    = "Leather Armor"
	DefaultArmorDefense = 10
	DefaultArmorRarity  = "Common"
)

// Game holds the party and the catalog. It is not safe for concurrent use.
type Game struct {
	store      save.Store
	characters map[uuid.UUID]*types.Character
	catalog    map[uuid.UUID]types.Item
	order      []uuid.UUID // catalog insertion order
	savedAt    time.Time
	log        *slog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithStore replaces the store Load would pick from the location.
func WithStore(s save.Store) Option {
	return func(g *Game) { g.store = s }
}

// Load builds a Game from the save at location. A location with nothing
// saved yields an empty game bound to it. The catalog always starts empty.
func Load(location string, opts ...Option) (*Game, error) {
	g := &Game{
		characters: map[uuid.UUID]*types.Character{},
		catalog:    map[uuid.UUID]types.Item{},
		log:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.store == nil {
		g.store = save.Open(location)
	}
	if err := g.Reload(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reload replaces the party with the one in the store. The catalog is
// kept.
func (g *Game) Reload() error {
	sd, err := g.store.Load()
	if errors.Is(err, save.ErrNoSave) {
		g.characters = map[uuid.UUID]*types.Character{}
		g.savedAt = time.Time{}
		g.log.Info("no save found, starting empty", "location", g.store.Location())
		return nil
	}
	if err != nil {
		g.log.Error("load failed", "location", g.store.Location(), "error", err)
		return fmt.Errorf("%w: %w", types.ErrPersistence, err)
	}

	chars := make(map[uuid.UUID]*types.Character, len(sd.Characters))
	for id, c := range sd.Characters {
		c := c
		c.ID = id
		chars[id] = &c
	}
	g.characters = chars
	g.savedAt = sd.SavedAt
	g.log.Info("game loaded", "location", g.store.Location(), "characters", len(chars))
	return nil
}

// Save writes the party and the location. The catalog is not saved.
func (g *Game) Save() error {
	sd := save.New(g.store.Location(), g.characters)
	if err := g.store.Save(sd); err != nil {
		g.log.Error("save failed", "location", g.store.Location(), "error", err)
		return fmt.Errorf("%w: %w", types.ErrPersistence, err)
	}
	g.savedAt = sd.SavedAt
	g.log.Info("game saved", "location", g.store.Location(), "characters", len(g.characters))
	return nil
}

// SaveAs rebinds the game to location and saves there.
func (g *Game) SaveAs(location string) error {
	g.store = save.Open(location)
	return g.Save()
}

// Open rebinds the game to location and loads the party saved there. On
// failure the game keeps its previous store and party.
func (g *Game) Open(location string) error {
	prev := g.store
	g.store = save.Open(location)
	if err := g.Reload(); err != nil {
		g.store = prev
		return err
	}
	return nil
}

// Location is where the game is saved.
func (g *Game) Location() string { return g.store.Location() }

// SavedAt is the time of the last save or load; zero when there was none.
func (g *Game) SavedAt() time.Time { return g.savedAt }

// --- Catalog ---

// FindItemByName returns the first catalog item named name, in insertion
// order. An exact match beats a case-insensitive one.
func (g *Game) FindItemByName(name string) (types.Item, error) {
	for _, id := range g.order {
		if it := g.catalog[id]; it.Name() == name {
			return it.Clone(), nil
		}
	}
	for _, id := range g.order {
		if it := g.catalog[id]; strings.EqualFold(it.Name(), name) {
			return it.Clone(), nil
		}
	}
	return types.Item{}, fmt.Errorf("%w: %q", types.ErrItemNotFound, name)
}

// FindItemByID returns the catalog item with id.
func (g *Game) FindItemByID(id uuid.UUID) (types.Item, error) {
	it, ok := g.catalog[id]
	if !ok {
		return types.Item{}, fmt.Errorf("%w: %s", types.ErrItemNotFound, id)
	}
	return it.Clone(), nil
}

// Catalog returns copies of every catalog item in insertion order.
func (g *Game) Catalog() []types.Item {
	out := make([]types.Item, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.catalog[id].Clone())
	}
	return out
}

// CreateWeapon builds a weapon, registers it and returns the caller's copy.
func (g *Game) CreateWeapon(spec items.WeaponSpec) (types.Weapon, error) {
	w, err := items.NewWeapon(spec)
	if err != nil {
		return types.Weapon{}, err
	}
	g.register(types.WeaponItem(w))
	return w, nil
}

// CreateArmor builds armor, registers it and returns the caller's copy.
func (g *Game) CreateArmor(spec items.ArmorSpec) (types.Armor, error) {
	a, err := items.NewArmor(spec)
	if err != nil {
		return types.Armor{}, err
	}
	g.register(types.ArmorItem(a))
	return a, nil
}

// CreateConsumable builds a consumable, registers it and returns the
// caller's copy.
func (g *Game) CreateConsumable(spec items.ConsumableSpec) (types.Consumable, error) {
	c, err := items.NewConsumable(spec)
	if err != nil {
		return types.Consumable{}, err
	}
	g.register(types.ConsumableItem(c))
	return c, nil
}

// DefaultArmor returns the catalog's Leather Armor, creating it on first use.
func (g *Game) DefaultArmor() types.Armor {
	for _, id := range g.order {
		if it := g.catalog[id]; it.Kind == types.KindArmor && it.Armor.Name == DefaultArmorName {
			return *it.Armor
		}
	}
	a, err := g.CreateArmor(items.ArmorSpec{
		Name:    DefaultArmorName,
		Defense: DefaultArmorDefense,
		Rarity:  DefaultArmorRarity,
	})
	if err != nil {
		// Constant input; validation cannot fail.
		panic(fmt.Sprintf("engine: default armor: %v", err))
	}
	return a
}

// ImportCatalog registers items, typically the output of the Lua loader.
// Items whose id is already registered are skipped.
func (g *Game) ImportCatalog(list []types.Item) int {
	n := 0
	for _, it := range list {
		if _, ok := g.catalog[it.ID()]; ok {
			g.log.Warn("catalog item already registered", "id", it.ID(), "name", it.Name())
			continue
		}
		g.register(it.Clone())
		n++
	}
	g.log.Info("catalog imported", "items", n)
	return n
}

func (g *Game) register(it types.Item) {
	g.catalog[it.ID()] = it.Clone()
	g.order = append(g.order, it.ID())
	g.log.Debug("item registered", "kind", it.Kind, "name", it.Name(), "id", it.ID())
}

// --- Characters ---

// CreateCharacter builds a character and adds it to the party.
func (g *Game) CreateCharacter(spec character.Spec) (types.Character, error) {
	c, err := character.New(spec)
	if err != nil {
		return types.Character{}, err
	}
	stored := c.Clone()
	g.characters[c.ID] = &stored
	g.log.Info("character created", "name", c.Name, "class", c.Class, "id", c.ID)
	return c, nil
}

// Character returns a copy of the character with id.
func (g *Game) Character(id uuid.UUID) (types.Character, error) {
	c, err := g.character(id)
	if err != nil {
		return types.Character{}, err
	}
	return c.Clone(), nil
}

// FindCharacterByName returns a copy of the first character named name,
// in Characters order. An exact match beats a case-insensitive one.
func (g *Game) FindCharacterByName(name string) (types.Character, error) {
	party := g.party()
	for _, c := range party {
		if c.Name == name {
			return c.Clone(), nil
		}
	}
	for _, c := range party {
		if strings.EqualFold(c.Name, name) {
			return c.Clone(), nil
		}
	}
	return types.Character{}, fmt.Errorf("%w: %q", types.ErrCharacterNotFound, name)
}

// Characters returns copies of the party sorted by name, then id.
func (g *Game) Characters() []types.Character {
	party := g.party()
	out := make([]types.Character, 0, len(party))
	for _, c := range party {
		out = append(out, c.Clone())
	}
	return out
}

func (g *Game) character(id uuid.UUID) (*types.Character, error) {
	c, ok := g.characters[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrCharacterNotFound, id)
	}
	return c, nil
}

// party returns the live characters sorted by name, then id.
func (g *Game) party() []*types.Character {
	out := make([]*types.Character, 0, len(g.characters))
	for _, c := range g.characters {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *types.Character) int {
		if n := cmp.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

// --- Item hand-off ---

// ApplyFromCatalog applies a copy of the catalog item to the character.
// The catalog entry is left in place.
func (g *Game) ApplyFromCatalog(charID, itemID uuid.UUID) (bool, error) {
	c, err := g.character(charID)
	if err != nil {
		return false, err
	}
	it, ok := g.catalog[itemID]
	if !ok {
		return false, fmt.Errorf("%w: %s", types.ErrItemNotFound, itemID)
	}
	return g.apply(c, it.Clone())
}

// ApplyFromInventory applies an item the character carries. The item
// leaves the inventory on success and stays on failure.
func (g *Game) ApplyFromInventory(charID, itemID uuid.UUID) (bool, error) {
	c, err := g.character(charID)
	if err != nil {
		return false, err
	}
	it, ok := c.Inventory[itemID]
	if !ok {
		return false, fmt.Errorf("%w: %s is not carrying %s", types.ErrItemNotFound, c.Name, itemID)
	}
	delete(c.Inventory, itemID)
	applied, err := g.apply(c, it)
	if err != nil {
		c.Inventory[itemID] = it
		return false, err
	}
	return applied, nil
}

// GiveItem puts a copy of the catalog item in the character's inventory.
func (g *Game) GiveItem(charID, itemID uuid.UUID) error {
	c, err := g.character(charID)
	if err != nil {
		return err
	}
	it, ok := g.catalog[itemID]
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrItemNotFound, itemID)
	}
	if _, owned := c.Inventory[itemID]; owned {
		return fmt.Errorf("%w: %s", types.ErrAlreadyOwned, it.Name())
	}
	if c.Weapon.ID == itemID || c.Armor.ID == itemID {
		return fmt.Errorf("%w: %s", types.ErrAlreadyInUse, it.Name())
	}
	c.Inventory[itemID] = it.Clone()
	g.log.Info("item given", "character", c.Name, "item", it.Name())
	return nil
}

// Outfit equips the default armor on the character.
func (g *Game) Outfit(charID uuid.UUID) (bool, error) {
	c, err := g.character(charID)
	if err != nil {
		return false, err
	}
	return g.apply(c, types.ArmorItem(g.DefaultArmor()))
}

func (g *Game) apply(c *types.Character, it types.Item) (bool, error) {
	ok, err := equip.Apply(c, it)
	if err != nil {
		g.log.Debug("apply rejected", "character", c.Name, "item", it.Name(), "error", err)
		return false, err
	}
	g.log.Info("item applied", "character", c.Name, "kind", it.Kind, "item", it.Name())
	return ok, nil
}
