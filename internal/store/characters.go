// Package store persists player characters between sessions. The game
// core stays stateless; this is the only place character records live.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MrPingoo/iut-jdr-api-2026/internal/game"
)

var ErrNotFound = errors.New("character not found")

type StoredCharacter struct {
	ID string `json:"id"`
	game.Character
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CharacterStore struct {
	db *sql.DB
}

func NewCharacterStore(path string) (*CharacterStore, error) {
	if path == "" {
		path = "./characters.db"
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &CharacterStore{db: db}
	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return store, nil
}

func (cs *CharacterStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS characters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		race TEXT NOT NULL,
		class TEXT NOT NULL,
		level INTEGER NOT NULL,
		strength INTEGER NOT NULL,
		dexterity INTEGER NOT NULL,
		constitution INTEGER NOT NULL,
		intelligence INTEGER NOT NULL,
		wisdom INTEGER NOT NULL,
		charisma INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_characters_created_at ON characters(created_at);
	`

	_, err := cs.db.Exec(schema)
	return err
}

// Create normalizes the character (defaults filled, level clamped) and
// stores it under a fresh uuid.
func (cs *CharacterStore) Create(character game.Character) (StoredCharacter, error) {
	record := StoredCharacter{
		ID:        uuid.NewString(),
		Character: character.Normalized(),
		CreatedAt: time.Now().UTC(),
	}
	record.UpdatedAt = record.CreatedAt

	_, err := cs.db.Exec(`
		INSERT INTO characters (id, name, race, class, level, strength, dexterity, constitution, intelligence, wisdom, charisma, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Name, record.Race, record.Class, record.Level,
		record.Stats.Strength, record.Stats.Dexterity, record.Stats.Constitution,
		record.Stats.Intelligence, record.Stats.Wisdom, record.Stats.Charisma,
		record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return StoredCharacter{}, fmt.Errorf("failed to insert character: %w", err)
	}

	return record, nil
}

func (cs *CharacterStore) Get(id string) (StoredCharacter, error) {
	row := cs.db.QueryRow(`
		SELECT id, name, race, class, level, strength, dexterity, constitution, intelligence, wisdom, charisma, created_at, updated_at
		FROM characters
		WHERE id = ?
	`, id)

	return scanCharacter(row)
}

func (cs *CharacterStore) List() ([]StoredCharacter, error) {
	rows, err := cs.db.Query(`
		SELECT id, name, race, class, level, strength, dexterity, constitution, intelligence, wisdom, charisma, created_at, updated_at
		FROM characters
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var characters []StoredCharacter
	for rows.Next() {
		record, err := scanCharacter(rows)
		if err != nil {
			return nil, err
		}
		characters = append(characters, record)
	}

	return characters, rows.Err()
}

func (cs *CharacterStore) Update(id string, character game.Character) (StoredCharacter, error) {
	normalized := character.Normalized()
	updatedAt := time.Now().UTC()

	result, err := cs.db.Exec(`
		UPDATE characters
		SET name = ?, race = ?, class = ?, level = ?, strength = ?, dexterity = ?, constitution = ?, intelligence = ?, wisdom = ?, charisma = ?, updated_at = ?
		WHERE id = ?
	`, normalized.Name, normalized.Race, normalized.Class, normalized.Level,
		normalized.Stats.Strength, normalized.Stats.Dexterity, normalized.Stats.Constitution,
		normalized.Stats.Intelligence, normalized.Stats.Wisdom, normalized.Stats.Charisma,
		updatedAt, id)
	if err != nil {
		return StoredCharacter{}, fmt.Errorf("failed to update character: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return StoredCharacter{}, err
	}
	if affected == 0 {
		return StoredCharacter{}, ErrNotFound
	}

	return cs.Get(id)
}

func (cs *CharacterStore) Delete(id string) error {
	result, err := cs.db.Exec(`DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (cs *CharacterStore) Close() error {
	return cs.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCharacter(row rowScanner) (StoredCharacter, error) {
	var record StoredCharacter
	err := row.Scan(&record.ID, &record.Name, &record.Race, &record.Class, &record.Level,
		&record.Stats.Strength, &record.Stats.Dexterity, &record.Stats.Constitution,
		&record.Stats.Intelligence, &record.Stats.Wisdom, &record.Stats.Charisma,
		&record.CreatedAt, &record.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredCharacter{}, ErrNotFound
	}
	if err != nil {
		return StoredCharacter{}, err
	}

	return record, nil
}
