package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/budgetme/admin-api/models"
	"github.com/budgetme/admin-api/utils"
)

// Helper struct for DB storage of encrypted blobs.
type encryptedValue struct {
	Encrypted string `json:"encrypted"`
}

// SettingsService stores service-configuration documents keyed by name.
// Values are encrypted before they hit the settings table.
type SettingsService struct {
	db   *sql.DB
	feed *ChangeFeed
}

func NewSettingsService(db *sql.DB, feed *ChangeFeed) *SettingsService {
	return &SettingsService{db: db, feed: feed}
}

// Get returns the decrypted document for one key.
func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	query := `SELECT key, value, COALESCE(updated_by, ''), updated_at FROM settings WHERE key = $1`

	var setting models.Setting
	var rawJSON []byte
	err := s.db.QueryRowContext(ctx, query, key).Scan(&setting.Key, &rawJSON, &setting.UpdatedBy, &setting.UpdatedAt)
	if err != nil {
		return nil, err
	}

	value, err := decryptSettingValue(rawJSON)
	if err != nil {
		return nil, err
	}
	setting.Value = value

	return &setting, nil
}

// List returns every setting with decrypted values.
func (s *SettingsService) List(ctx context.Context) ([]models.Setting, error) {
	query := `SELECT key, value, COALESCE(updated_by, ''), updated_at FROM settings ORDER BY key`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var setting models.Setting
		var rawJSON []byte
		if err := rows.Scan(&setting.Key, &rawJSON, &setting.UpdatedBy, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		value, err := decryptSettingValue(rawJSON)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", setting.Key, err)
		}
		setting.Value = value
		settings = append(settings, setting)
	}

	return settings, rows.Err()
}

// Set encrypts and upserts the document for one key.
func (s *SettingsService) Set(ctx context.Context, key string, value json.RawMessage, updatedBy string) (*models.Setting, error) {
	encryptedString, err := utils.Encrypt(value)
	if err != nil {
		return nil, err
	}

	storageJSON, err := json.Marshal(encryptedValue{Encrypted: encryptedString})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	query := `
		INSERT INTO settings (key, value, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_by = $3, updated_at = $4
	`
	if _, err := s.db.ExecContext(ctx, query, key, storageJSON, updatedBy, now); err != nil {
		return nil, err
	}

	s.feed.Publish(ChangeEvent{Table: TableSettings, Action: ActionUpdated, ID: key, Actor: updatedBy})

	return &models.Setting{Key: key, Value: value, UpdatedBy: updatedBy, UpdatedAt: now}, nil
}

func (s *SettingsService) Delete(ctx context.Context, key, actor string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = $1", key)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	s.feed.Publish(ChangeEvent{Table: TableSettings, Action: ActionDeleted, ID: key, Actor: actor})
	return nil
}

// decryptSettingValue unwraps the stored blob. Plain JSON written before
// encryption was introduced is returned as is.
func decryptSettingValue(rawJSON []byte) (json.RawMessage, error) {
	var wrapper encryptedValue
	if err := json.Unmarshal(rawJSON, &wrapper); err == nil && wrapper.Encrypted != "" {
		decrypted, err := utils.Decrypt(wrapper.Encrypted)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt setting value: %w", err)
		}
		return decrypted, nil
	}
	return rawJSON, nil
}
