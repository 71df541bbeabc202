package store

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/hudson/internal/model"
)

// SubscriptionStore keeps one subscription per property.
type SubscriptionStore struct {
	db *sql.DB
}

func NewSubscriptionStore(db *sql.DB) *SubscriptionStore {
	return &SubscriptionStore{db: db}
}

func scanSubscription(scanner interface{ Scan(...any) error }) (*model.Subscription, error) {
	var (
		data    string
		version int64
	)
	if err := scanner.Scan(&data, &version); err != nil {
		return nil, err
	}
	var r subscriptionRecord
	if err := decodeRecord(data, &r); err != nil {
		return nil, err
	}
	sub := r.model(version)
	return &sub, nil
}

const subscriptionCols = `record, version`

func (s *SubscriptionStore) GetByProperty(propertyID string) (*model.Subscription, error) {
	row := s.db.QueryRow(`SELECT `+subscriptionCols+` FROM subscriptions WHERE property_id = ?`, propertyID)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionStore) Create(sub model.Subscription) (*model.Subscription, error) {
	data, err := encodeRecord(toSubscriptionRecord(sub))
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`INSERT INTO subscriptions (property_id, id, status, record, version) VALUES (?, ?, ?, ?, 1)`,
		sub.PropertyID, sub.ID, sub.Status, data,
	)
	if err != nil {
		return nil, fmt.Errorf("insert subscription: %w", err)
	}
	sub.Version = 1
	return &sub, nil
}

func (s *SubscriptionStore) Save(sub model.Subscription) (*model.Subscription, error) {
	if err := saveSubscription(s.db, sub); err != nil {
		return nil, err
	}
	sub.Version++
	return &sub, nil
}

func saveSubscription(db execer, sub model.Subscription) error {
	data, err := encodeRecord(toSubscriptionRecord(sub))
	if err != nil {
		return err
	}
	err = conditionalUpdate(db,
		`UPDATE subscriptions SET status = ?, record = ?, version = version + 1, updated_at = CURRENT_TIMESTAMP WHERE property_id = ? AND version = ?`,
		sub.Status, data, sub.PropertyID, sub.Version,
	)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}
