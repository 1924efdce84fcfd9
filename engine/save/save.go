// Package save implements serialization of game state and the stores
// that persist it. The item catalog is never part of a save.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/questrpg/types"
)

// FormatVersion identifies the save layout.
const FormatVersion = "1"

// ErrNoSave is returned by a Store whose location holds no save yet.
var ErrNoSave = errors.New("no save at location")

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version    string                        `json:"version"`
	Location   string                        `json:"location"`
	SavedAt    time.Time                     `json:"saved_at"`
	Characters map[uuid.UUID]types.Character `json:"characters"`
}

// New builds SaveData for the given characters, copying each one.
func New(location string, chars map[uuid.UUID]*types.Character) *SaveData {
	sd := &SaveData{
		Version:    FormatVersion,
		Location:   location,
		SavedAt:    time.Now().UTC(),
		Characters: make(map[uuid.UUID]types.Character, len(chars)),
	}
	for id, c := range chars {
		sd.Characters[id] = c.Clone()
	}
	return sd
}

// Marshal serializes save data to indented JSON bytes.
func Marshal(sd *SaveData) ([]byte, error) {
	return json.MarshalIndent(sd, "", "  ")
}

// Unmarshal deserializes JSON bytes into SaveData.
func Unmarshal(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if err := normalize(&sd); err != nil {
		return nil, err
	}
	return &sd, nil
}

// normalize ensures maps are never nil after load and that every
// character and inventory item is stored under its own id.
func normalize(sd *SaveData) error {
	if sd.Characters == nil {
		sd.Characters = map[uuid.UUID]types.Character{}
	}
	for id, c := range sd.Characters {
		if c.ID == uuid.Nil || c.ID != id {
			return fmt.Errorf("character %s stored under id %s", c.ID, id)
		}
		for key, it := range c.Inventory {
			if it.ID() != key {
				return fmt.Errorf("character %s: item %s stored under id %s", id, it.ID(), key)
			}
		}
		if c.Inventory == nil {
			c.Inventory = map[uuid.UUID]types.Item{}
			sd.Characters[id] = c
		}
	}
	return nil
}

// Store reads and writes save data at one location.
type Store interface {
	// Load returns ErrNoSave when nothing has been saved at the location.
	Load() (*SaveData, error)
	Save(sd *SaveData) error
	Location() string
}
