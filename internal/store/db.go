package store

import (
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store persists per-device customer info blobs. It is the server-side
// analog of the browser's single localStorage entry: one JSON blob per
// device id under a fixed logical key.
type Store struct {
	DB *sql.DB
}

func NewStore(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return &Store{DB: db}, nil
}

func (s *Store) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS customer_info (
		device_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.DB.Exec(query)
	if err != nil {
		slog.Error("Error creating schema", "error", err)
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// LoadCustomerInfo returns the stored blob for a device, or nil when the
// device has never saved anything.
func (s *Store) LoadCustomerInfo(deviceID string) ([]byte, error) {
	var data []byte
	err := s.DB.QueryRow(`SELECT data FROM customer_info WHERE device_id = ?`, deviceID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) SaveCustomerInfo(deviceID string, data []byte) error {
	query := `
		INSERT INTO customer_info (device_id, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(device_id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`
	_, err := s.DB.Exec(query, deviceID, string(data))
	return err
}
