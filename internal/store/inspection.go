package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hudson/internal/model"
)

type InspectionStore struct {
	db *sql.DB
}

func NewInspectionStore(db *sql.DB) *InspectionStore {
	return &InspectionStore{db: db}
}

func scanInspection(scanner interface{ Scan(...any) error }) (*model.Inspection, error) {
	var (
		data    string
		version int64
	)
	if err := scanner.Scan(&data, &version); err != nil {
		return nil, err
	}
	var r inspectionRecord
	if err := decodeRecord(data, &r); err != nil {
		return nil, err
	}
	in := r.model(version)
	return &in, nil
}

const inspectionCols = `record, version`

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (s *InspectionStore) Create(in model.Inspection) (*model.Inspection, error) {
	data, err := encodeRecord(toInspectionRecord(in))
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO inspections (id, property_id, status, record, version) VALUES (?, ?, ?, ?, 1)`,
		in.ID, nullString(in.PropertyID), in.Status, data,
	)
	if err != nil {
		return nil, fmt.Errorf("insert inspection: %w", err)
	}
	in.Version = 1
	return &in, nil
}

func (s *InspectionStore) GetByID(id string) (*model.Inspection, error) {
	row := s.db.QueryRow(`SELECT `+inspectionCols+` FROM inspections WHERE id = ?`, id)
	in, err := scanInspection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get inspection: %w", err)
	}
	return in, nil
}

func (s *InspectionStore) ListByProperty(propertyID string) ([]model.Inspection, error) {
	rows, err := s.db.Query(
		`SELECT `+inspectionCols+` FROM inspections WHERE property_id = ? ORDER BY created_at DESC, id ASC`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}
	defer rows.Close()

	inspections := []model.Inspection{}
	for rows.Next() {
		in, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		inspections = append(inspections, *in)
	}
	return inspections, rows.Err()
}

func (s *InspectionStore) Save(in model.Inspection) (*model.Inspection, error) {
	if err := saveInspection(s.db, in); err != nil {
		return nil, err
	}
	in.Version++
	return &in, nil
}

// SaveCompletion writes a completed inspection and the subscription whose
// current score it replaces as one transaction. Either both land or
// neither does.
func (s *InspectionStore) SaveCompletion(in model.Inspection, sub model.Subscription) (*model.Inspection, *model.Subscription, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := saveInspection(tx, in); err != nil {
		return nil, nil, err
	}
	if err := saveSubscription(tx, sub); err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}

	in.Version++
	sub.Version++
	return &in, &sub, nil
}

func saveInspection(db execer, in model.Inspection) error {
	data, err := encodeRecord(toInspectionRecord(in))
	if err != nil {
		return err
	}
	err = conditionalUpdate(db,
		`UPDATE inspections SET property_id = ?, status = ?, record = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND version = ?`,
		nullString(in.PropertyID), in.Status, data, in.ID, in.Version,
	)
	if err != nil {
		return fmt.Errorf("save inspection: %w", err)
	}
	return nil
}
