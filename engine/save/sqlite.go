package save

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nathoo/questrpg/types"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore keeps a save in a SQLite database file, one row per
// character. The handle is opened per call and closed before returning.
type SQLiteStore struct {
	path string
}

// NewSQLiteStore returns a store for the database file at path.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Location returns the database path.
func (s *SQLiteStore) Location() string { return s.path }

// open returns a handle with the schema applied, creating the file when
// it does not exist.
func (s *SQLiteStore) open() (*sql.DB, error) {
	db, err := s.connect(filepath.Clean(s.path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(DELETE)")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

// openReadOnly returns a handle that cannot write to the file.
func (s *SQLiteStore) openReadOnly() (*sql.DB, error) {
	return s.connect("file:" + filepath.ToSlash(filepath.Clean(s.path)) + "?mode=ro&_pragma=busy_timeout(5000)")
}

func (s *SQLiteStore) connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// Load reads every character row. A missing database file, or one that
// has never been saved to, is ErrNoSave. Loading never writes the file.
func (s *SQLiteStore) Load() (*SaveData, error) {
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSave
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", s.path, err)
	}
	db, err := s.openReadOnly()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var tables int
	if err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'meta'`).Scan(&tables); err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	if tables == 0 {
		return nil, ErrNoSave
	}

	sd := &SaveData{Characters: map[uuid.UUID]types.Character{}}
	meta, err := readMeta(db)
	if err != nil {
		return nil, err
	}
	if meta["version"] == "" {
		return nil, ErrNoSave
	}
	sd.Version = meta["version"]
	sd.Location = meta["location"]
	if v := meta["saved_at"]; v != "" {
		if sd.SavedAt, err = time.Parse(time.RFC3339Nano, v); err != nil {
			return nil, fmt.Errorf("parse saved_at: %w", err)
		}
	}

	rows, err := db.Query(`SELECT id, data FROM characters ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan character: %w", err)
		}
		rowID, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("character row id %q: %w", id, err)
		}
		var c types.Character
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("decode character %s: %w", id, err)
		}
		if c.ID != rowID {
			return nil, fmt.Errorf("character row %s holds id %s", rowID, c.ID)
		}
		sd.Characters[rowID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate characters: %w", err)
	}
	if err := normalize(sd); err != nil {
		return nil, err
	}
	return sd, nil
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("query meta: %w", err)
	}
	defer rows.Close()
	meta := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("scan meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

// Save replaces the stored characters in one transaction.
func (s *SQLiteStore) Save(sd *SaveData) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM characters`); err != nil {
		return fmt.Errorf("clear characters: %w", err)
	}
	for id, c := range sd.Characters {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("encode character %s: %w", id, err)
		}
		if _, err := tx.Exec(`INSERT INTO characters (id, name, data) VALUES (?, ?, ?)`,
			id.String(), c.Name, string(data)); err != nil {
			return fmt.Errorf("insert character %s: %w", id, err)
		}
	}
	meta := map[string]string{
		"version":  sd.Version,
		"location": sd.Location,
		"saved_at": sd.SavedAt.UTC().Format(time.RFC3339Nano),
	}
	for k, v := range meta {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
			return fmt.Errorf("write meta %s: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
