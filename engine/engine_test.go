package engine

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathoo/questrpg/engine/character"
	"github.com/nathoo/questrpg/engine/items"
	"github.com/nathoo/questrpg/engine/save"
	"github.com/nathoo/questrpg/logger"
	"github.com/nathoo/questrpg/types"
)

func newGame(t *testing.T) *Game {
	t.Helper()
	g, err := Load(filepath.Join(t.TempDir(), "save.json"))
	require.NoError(t, err)
	return g
}

func mustCharacter(t *testing.T, g *Game, name string, class types.Class) types.Character {
	t.Helper()
	c, err := g.CreateCharacter(character.Spec{Name: name, Class: class})
	require.NoError(t, err)
	return c
}

func mustWeapon(t *testing.T, g *Game, name string, class types.Class) types.Weapon {
	t.Helper()
	w, err := g.CreateWeapon(items.WeaponSpec{Name: name, Damage: 10, Class: class, Rarity: "Common"})
	require.NoError(t, err)
	return w
}

func mustConsumable(t *testing.T, g *Game, name string, delta int32) types.Consumable {
	t.Helper()
	c, err := g.CreateConsumable(items.ConsumableSpec{Name: name, LifeDelta: delta})
	require.NoError(t, err)
	return c
}

// failingStore refuses every operation.
type failingStore struct{}

func (failingStore) Load() (*save.SaveData, error) { return nil, errors.New("disk on fire") }

func (failingStore) Save(*save.SaveData) error { return errors.New("disk on fire") }

func (failingStore) Location() string { return "nowhere" }

func TestLoad_MissingLocationStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.json")
	g, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, g.Location())
	assert.Empty(t, g.Characters())
	assert.Empty(t, g.Catalog())
	assert.True(t, g.SavedAt().IsZero())
}

func TestLoad_CorruptSaveIsPersistenceError(t *testing.T) {
	charID, itemID := uuid.New(), uuid.New()
	withInventory := func(inv string) string {
		return fmt.Sprintf(`{"version":"1","characters":{%q:{"id":%q,"name":"Thorin","class":"Warrior","inventory":{%q:%s}}}}`,
			charID, charID, itemID, inv)
	}
	tests := []struct {
		name string
		data string
	}{
		{"not json", "{not json"},
		{"weapon kind without payload", withInventory(`{"kind":"Weapon"}`)},
		{"payload without kind", withInventory(fmt.Sprintf(`{"weapon":{"id":%q,"name":"Axe"}}`, itemID))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "broken.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			_, err := Load(path)
			require.ErrorIs(t, err, types.ErrPersistence)
		})
	}
}

func TestStoreFailures(t *testing.T) {
	_, err := Load("ignored", WithStore(failingStore{}))
	require.ErrorIs(t, err, types.ErrPersistence)
	assert.Contains(t, err.Error(), "disk on fire")

	g := newGame(t)
	g.store = failingStore{}
	err = g.Save()
	require.ErrorIs(t, err, types.ErrPersistence)
	assert.Contains(t, err.Error(), types.ErrMsgPersistence)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	for _, name := range []string{"party.json", "party.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			g, err := Load(path)
			require.NoError(t, err)

			thorin := mustCharacter(t, g, "Thorin", types.Warrior)
			aria := mustCharacter(t, g, "Aria", types.Mage)
			axe := mustWeapon(t, g, "Axe", types.Warrior)
			hammer := mustWeapon(t, g, "Hammer", types.Warrior)
			potion := mustConsumable(t, g, "Potion", 20)

			_, err = g.ApplyFromCatalog(thorin.ID, axe.ID)
			require.NoError(t, err)
			_, err = g.ApplyFromCatalog(thorin.ID, hammer.ID)
			require.NoError(t, err)
			_, err = g.Outfit(aria.ID)
			require.NoError(t, err)
			require.NoError(t, g.GiveItem(aria.ID, potion.ID))

			before := g.Characters()
			require.NoError(t, g.Save())
			assert.False(t, g.SavedAt().IsZero())

			reloaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, before, reloaded.Characters())
			assert.Empty(t, reloaded.Catalog(), "catalog must not survive a reload")
			assert.Equal(t, path, reloaded.Location())
		})
	}
}

func TestSaveAs_Rebinds(t *testing.T) {
	g := newGame(t)
	mustCharacter(t, g, "Thorin", types.Warrior)

	other := filepath.Join(t.TempDir(), "elsewhere.db")
	require.NoError(t, g.SaveAs(other))
	assert.Equal(t, other, g.Location())

	reloaded, err := Load(other)
	require.NoError(t, err)
	assert.Len(t, reloaded.Characters(), 1)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "other.json")
	g := newGame(t)
	mustCharacter(t, g, "Thorin", types.Warrior)
	require.NoError(t, g.SaveAs(other))

	g2 := newGame(t)
	mustWeapon(t, g2, "Axe", types.Warrior)
	require.NoError(t, g2.Open(other))
	assert.Equal(t, other, g2.Location())
	assert.Len(t, g2.Characters(), 1)
	assert.Len(t, g2.Catalog(), 1)

	corrupt := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corrupt, []byte("{"), 0o644))
	err := g2.Open(corrupt)
	require.ErrorIs(t, err, types.ErrPersistence)
	assert.Equal(t, other, g2.Location())
	assert.Len(t, g2.Characters(), 1)
}

func TestReload_KeepsCatalog(t *testing.T) {
	g := newGame(t)
	mustCharacter(t, g, "Thorin", types.Warrior)
	require.NoError(t, g.Save())
	mustCharacter(t, g, "Aria", types.Mage)
	mustWeapon(t, g, "Axe", types.Warrior)

	require.NoError(t, g.Reload())
	assert.Len(t, g.Characters(), 1)
	assert.Len(t, g.Catalog(), 1)
}

func TestDefaultArmor_Idempotent(t *testing.T) {
	g := newGame(t)
	first := g.DefaultArmor()
	second := g.DefaultArmor()

	assert.Equal(t, first, second)
	assert.Equal(t, DefaultArmorName, first.Name)
	assert.Equal(t, uint32(DefaultArmorDefense), first.Defense)
	assert.Equal(t, DefaultArmorRarity, first.Rarity)

	count := 0
	for _, it := range g.Catalog() {
		if it.Name() == DefaultArmorName {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDefaultArmor_ReusesExisting(t *testing.T) {
	g := newGame(t)
	existing, err := g.CreateArmor(items.ArmorSpec{Name: DefaultArmorName, Defense: 14, Rarity: "Rare"})
	require.NoError(t, err)

	assert.Equal(t, existing, g.DefaultArmor())
	assert.Len(t, g.Catalog(), 1)
}

func TestFindItemByName(t *testing.T) {
	g := newGame(t)
	first := mustConsumable(t, g, "Potion", 10)
	mustConsumable(t, g, "Potion", 50)

	it, err := g.FindItemByName("Potion")
	require.NoError(t, err)
	assert.Equal(t, first.ID, it.ID(), "duplicates resolve to the first registered")

	it, err = g.FindItemByName("potion")
	require.NoError(t, err)
	assert.Equal(t, first.ID, it.ID())

	_, err = g.FindItemByName("Elixir")
	require.ErrorIs(t, err, types.ErrItemNotFound)
	assert.Contains(t, err.Error(), types.ErrMsgItemNotFound)
}

func TestFindItemByID(t *testing.T) {
	g := newGame(t)
	w := mustWeapon(t, g, "Axe", types.Warrior)

	it, err := g.FindItemByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, types.KindWeapon, it.Kind)
	assert.Equal(t, w, *it.Weapon)

	_, err = g.FindItemByID(uuid.New())
	require.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	g := newGame(t)
	w := mustWeapon(t, g, "Axe", types.Warrior)

	list := g.Catalog()
	list[0].Weapon.Damage = 999
	found, err := g.FindItemByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), found.Weapon.Damage)

	found.Weapon.Name = "Renamed"
	again, err := g.FindItemByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Axe", again.Name())
}

func TestCreate_InvalidSpecs(t *testing.T) {
	g := newGame(t)

	_, err := g.CreateWeapon(items.WeaponSpec{Name: "", Class: types.Warrior})
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = g.CreateWeapon(items.WeaponSpec{Name: "Axe", Class: "Bard"})
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = g.CreateArmor(items.ArmorSpec{Name: "None"})
	require.ErrorIs(t, err, types.ErrInvalidInput)

	_, err = g.CreateCharacter(character.Spec{Name: "Bob", Class: "Bard"})
	require.ErrorIs(t, err, types.ErrInvalidClass)

	assert.Empty(t, g.Catalog())
	assert.Empty(t, g.Characters())
}

func TestCharacters_SortedAndCopied(t *testing.T) {
	g := newGame(t)
	mustCharacter(t, g, "Zed", types.Assassin)
	aria := mustCharacter(t, g, "Aria", types.Mage)

	party := g.Characters()
	require.Len(t, party, 2)
	assert.Equal(t, "Aria", party[0].Name)
	assert.Equal(t, "Zed", party[1].Name)

	party[0].Life = 0
	got, err := g.Character(aria.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(70), got.Life)
}

func TestFindCharacterByName(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)

	c, err := g.FindCharacterByName("thorin")
	require.NoError(t, err)
	assert.Equal(t, thorin.ID, c.ID)

	_, err = g.FindCharacterByName("Gandalf")
	require.ErrorIs(t, err, types.ErrCharacterNotFound)

	_, err = g.Character(uuid.New())
	require.ErrorIs(t, err, types.ErrCharacterNotFound)
}

func TestApplyFromCatalog_ThorinScenario(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	assert.Equal(t, uint32(100), thorin.Life)
	assert.Equal(t, uint32(15), thorin.Strength)
	assert.Equal(t, uint32(1), thorin.Level)

	w1 := mustWeapon(t, g, "Axe", types.Warrior)
	w2 := mustWeapon(t, g, "Hammer", types.Warrior)
	w3 := mustWeapon(t, g, "Staff", types.Mage)

	ok, err := g.ApplyFromCatalog(thorin.ID, w1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.ApplyFromCatalog(thorin.ID, w2.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = g.ApplyFromCatalog(thorin.ID, w3.ID)
	require.ErrorIs(t, err, types.ErrIncompatibleWeapon)

	got, err := g.Character(thorin.ID)
	require.NoError(t, err)
	assert.Equal(t, w2.ID, got.Weapon.ID)
	require.Len(t, got.Inventory, 1)
	assert.Equal(t, w1, *got.Inventory[w1.ID].Weapon)

	// The catalog is untouched by equipping.
	assert.Len(t, g.Catalog(), 3)
}

func TestApplyFromCatalog_CopiesAreIndependent(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	axe := mustWeapon(t, g, "Axe", types.Warrior)

	_, err := g.ApplyFromCatalog(thorin.ID, axe.ID)
	require.NoError(t, err)

	live := g.characters[thorin.ID]
	live.Weapon.Durability.Current -= 40

	fromCatalog, err := g.FindItemByID(axe.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(items.DefaultDurability), fromCatalog.Weapon.Durability.Current)
	assert.Equal(t, uint32(60), live.Weapon.Durability.Current)
}

func TestApplyFromCatalog_Unknown(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	axe := mustWeapon(t, g, "Axe", types.Warrior)

	_, err := g.ApplyFromCatalog(uuid.New(), axe.ID)
	require.ErrorIs(t, err, types.ErrCharacterNotFound)

	_, err = g.ApplyFromCatalog(thorin.ID, uuid.New())
	require.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestConsumables_HealAndRevive(t *testing.T) {
	g := newGame(t)
	aria := mustCharacter(t, g, "Aria", types.Mage)
	potion := mustConsumable(t, g, "Potion", 25)
	poison := mustConsumable(t, g, "Nightshade", -200)
	revive := mustConsumable(t, g, types.ReviveName, 35)

	_, err := g.ApplyFromCatalog(aria.ID, potion.ID)
	require.NoError(t, err)
	got, _ := g.Character(aria.ID)
	assert.Equal(t, uint32(95), got.Life)

	_, err = g.ApplyFromCatalog(aria.ID, poison.ID)
	require.NoError(t, err)
	got, _ = g.Character(aria.ID)
	assert.Equal(t, uint32(0), got.Life)

	_, err = g.ApplyFromCatalog(aria.ID, potion.ID)
	require.ErrorIs(t, err, types.ErrItemNotUsable)

	_, err = g.ApplyFromCatalog(aria.ID, revive.ID)
	require.NoError(t, err)
	got, _ = g.Character(aria.ID)
	assert.Equal(t, uint32(35), got.Life)
}

func TestApplyFromInventory(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	axe := mustWeapon(t, g, "Axe", types.Warrior)
	potion := mustConsumable(t, g, "Potion", 10)

	require.NoError(t, g.GiveItem(thorin.ID, axe.ID))
	require.NoError(t, g.GiveItem(thorin.ID, potion.ID))

	// Equipping a carried weapon moves it out of the pack.
	ok, err := g.ApplyFromInventory(thorin.ID, axe.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	got, _ := g.Character(thorin.ID)
	assert.Equal(t, axe.ID, got.Weapon.ID)
	assert.NotContains(t, got.Inventory, axe.ID)

	// A used consumable is gone.
	_, err = g.ApplyFromInventory(thorin.ID, potion.ID)
	require.NoError(t, err)
	got, _ = g.Character(thorin.ID)
	assert.Equal(t, uint32(110), got.Life)
	assert.Empty(t, got.Inventory)

	_, err = g.ApplyFromInventory(thorin.ID, potion.ID)
	require.ErrorIs(t, err, types.ErrItemNotFound)
}

func TestApplyFromInventory_FailureRestores(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	potion := mustConsumable(t, g, "Potion", 10)
	require.NoError(t, g.GiveItem(thorin.ID, potion.ID))
	g.characters[thorin.ID].Life = 0

	_, err := g.ApplyFromInventory(thorin.ID, potion.ID)
	require.ErrorIs(t, err, types.ErrNotUsable)

	got, _ := g.Character(thorin.ID)
	assert.Contains(t, got.Inventory, potion.ID)
	assert.Equal(t, uint32(0), got.Life)
}

func TestGiveItem_Guards(t *testing.T) {
	g := newGame(t)
	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	axe := mustWeapon(t, g, "Axe", types.Warrior)

	require.NoError(t, g.GiveItem(thorin.ID, axe.ID))
	err := g.GiveItem(thorin.ID, axe.ID)
	require.ErrorIs(t, err, types.ErrAlreadyOwned)

	// A catalog apply of something already carried is refused too.
	_, err = g.ApplyFromCatalog(thorin.ID, axe.ID)
	require.ErrorIs(t, err, types.ErrAlreadyOwned)

	_, err = g.ApplyFromInventory(thorin.ID, axe.ID)
	require.NoError(t, err)
	err = g.GiveItem(thorin.ID, axe.ID)
	require.ErrorIs(t, err, types.ErrAlreadyInUse)

	require.ErrorIs(t, g.GiveItem(uuid.New(), axe.ID), types.ErrCharacterNotFound)
	require.ErrorIs(t, g.GiveItem(thorin.ID, uuid.New()), types.ErrItemNotFound)
}

func TestOutfit(t *testing.T) {
	g := newGame(t)
	aria := mustCharacter(t, g, "Aria", types.Mage)

	ok, err := g.Outfit(aria.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, _ := g.Character(aria.ID)
	assert.Equal(t, DefaultArmorName, got.Armor.Name)
	assert.Equal(t, uint32(DefaultArmorDefense), got.Defense)

	_, err = g.Outfit(aria.ID)
	require.ErrorIs(t, err, types.ErrAlreadyInUse)
	assert.Len(t, g.Catalog(), 1)
}

func TestImportCatalog(t *testing.T) {
	g := newGame(t)
	w, err := items.NewWeapon(items.WeaponSpec{Name: "Axe", Class: types.Warrior})
	require.NoError(t, err)
	a, err := items.NewArmor(items.ArmorSpec{Name: "Plate", Defense: 30})
	require.NoError(t, err)

	list := []types.Item{types.WeaponItem(w), types.ArmorItem(a), types.WeaponItem(w)}
	assert.Equal(t, 2, g.ImportCatalog(list))

	names := []string{}
	for _, it := range g.Catalog() {
		names = append(names, it.Name())
	}
	assert.Equal(t, []string{"Axe", "Plate"}, names)

	list[0].Weapon.Damage = 77
	got, err := g.FindItemByID(w.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.Weapon.Damage)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Format: "json"}, &buf)
	g, err := Load(filepath.Join(t.TempDir(), "save.json"), WithLogger(log))
	require.NoError(t, err)

	thorin := mustCharacter(t, g, "Thorin", types.Warrior)
	staff := mustWeapon(t, g, "Staff", types.Mage)
	_, _ = g.ApplyFromCatalog(thorin.ID, staff.ID)
	require.NoError(t, g.Save())

	out := buf.String()
	assert.Contains(t, out, `"msg":"character created"`)
	assert.Contains(t, out, `"msg":"apply rejected"`)
	assert.Contains(t, out, `"msg":"game saved"`)
}
