package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hudson/internal/model"
)

type PropertyStore struct {
	db *sql.DB
}

func NewPropertyStore(db *sql.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

func scanProperty(scanner interface{ Scan(...any) error }) (*model.Property, error) {
	var (
		data      string
		isPrimary bool
		version   int64
	)
	if err := scanner.Scan(&data, &isPrimary, &version); err != nil {
		return nil, err
	}
	var r propertyRecord
	if err := decodeRecord(data, &r); err != nil {
		return nil, err
	}
	p := r.model(isPrimary, version)
	return &p, nil
}

const propertyCols = `record, is_primary, version`

// Create inserts p at version 1. A primary property demotes the owner's
// current primary in the same transaction.
func (s *PropertyStore) Create(p model.Property) (*model.Property, error) {
	data, err := encodeRecord(toPropertyRecord(p))
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if p.IsPrimary {
		if _, err := tx.Exec(`UPDATE properties SET is_primary = 0 WHERE owner_id = ? AND is_primary = 1`, p.OwnerID); err != nil {
			return nil, fmt.Errorf("clear primary: %w", err)
		}
	}
	_, err = tx.Exec(
		`INSERT INTO properties (id, owner_id, is_primary, record, version) VALUES (?, ?, ?, ?, 1)`,
		p.ID, p.OwnerID, p.IsPrimary, data,
	)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	p.Version = 1
	return &p, nil
}

func (s *PropertyStore) GetByID(id string) (*model.Property, error) {
	row := s.db.QueryRow(`SELECT `+propertyCols+` FROM properties WHERE id = ?`, id)
	p, err := scanProperty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

// ListByOwner returns the owner's properties, primary first.
func (s *PropertyStore) ListByOwner(ownerID string) ([]model.Property, error) {
	rows, err := s.db.Query(
		`SELECT `+propertyCols+` FROM properties WHERE owner_id = ? ORDER BY is_primary DESC, created_at ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	properties := []model.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

// Save writes p if the stored version still equals p.Version and returns
// the saved property at the next version.
func (s *PropertyStore) Save(p model.Property) (*model.Property, error) {
	data, err := encodeRecord(toPropertyRecord(p))
	if err != nil {
		return nil, err
	}
	err = conditionalUpdate(s.db,
		`UPDATE properties SET record = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND version = ?`,
		data, p.ID, p.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("save property: %w", err)
	}
	p.Version++
	return &p, nil
}

// SetPrimary makes id the owner's only primary property.
func (s *PropertyStore) SetPrimary(ownerID, id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE properties SET is_primary = 0 WHERE owner_id = ? AND is_primary = 1`, ownerID); err != nil {
		return fmt.Errorf("clear primary: %w", err)
	}
	result, err := tx.Exec(`UPDATE properties SET is_primary = 1 WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("set primary: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("rows affected: %w", err)
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}
