package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrVersionConflict is returned when a conditional write finds the stored
// version has moved past the caller's copy.
var ErrVersionConflict = errors.New("version conflict")

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func encodeRecord(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(b), nil
}

func decodeRecord(data string, v any) error {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

// conditionalUpdate runs an UPDATE guarded by "version = ?" and maps zero
// affected rows to ErrVersionConflict.
func conditionalUpdate(db execer, query string, args ...any) error {
	result, err := db.Exec(query, args...)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrVersionConflict
	}
	return nil
}
