package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restodash/dashboard-svc/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dashboard_preferences (
			user_id INTEGER PRIMARY KEY,
			language VARCHAR(8) NOT NULL DEFAULT 'en',
			selected_restaurant_id INTEGER NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS dashboard_qr_codes (
			restaurant_id INTEGER NOT NULL,
			table_id INTEGER NOT NULL DEFAULT 0,
			image BYTEA,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (restaurant_id, table_id)
		)`,
		`CREATE TABLE IF NOT EXISTS dashboard_audit (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL,
			organization_id INTEGER NOT NULL,
			action VARCHAR(16) NOT NULL,
			resource VARCHAR(64) NOT NULL,
			resource_id INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		"CREATE INDEX IF NOT EXISTS dashboard_audit_org_idx ON dashboard_audit (organization_id, created_at DESC)",
	}

	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

// GetPreferences returns nil, nil when the user has never saved preferences.
func (r *PostgresRepository) GetPreferences(userID int) (*domain.Preferences, error) {
	prefs := domain.Preferences{UserID: userID}
	err := r.DB.QueryRow(`
		SELECT language, selected_restaurant_id, updated_at
		FROM dashboard_preferences
		WHERE user_id = $1
	`, userID).Scan(&prefs.Language, &prefs.SelectedRestaurantID, &prefs.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (r *PostgresRepository) SavePreferences(prefs *domain.Preferences) error {
	return r.DB.QueryRow(`
		INSERT INTO dashboard_preferences (user_id, language, selected_restaurant_id, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET language = EXCLUDED.language,
			selected_restaurant_id = EXCLUDED.selected_restaurant_id,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`, prefs.UserID, prefs.Language, prefs.SelectedRestaurantID).Scan(&prefs.UpdatedAt)
}

// GetQRCode returns the cached image; tableID 0 is the restaurant-wide code.
// A missing row yields an empty slice and no error.
func (r *PostgresRepository) GetQRCode(restaurantID, tableID int) ([]byte, error) {
	var image []byte
	err := r.DB.QueryRow(`
		SELECT image FROM dashboard_qr_codes
		WHERE restaurant_id = $1 AND table_id = $2
	`, restaurantID, tableID).Scan(&image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return image, err
}

func (r *PostgresRepository) SaveQRCode(restaurantID, tableID int, image []byte) error {
	_, err := r.DB.Exec(`
		INSERT INTO dashboard_qr_codes (restaurant_id, table_id, image, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (restaurant_id, table_id) DO UPDATE
		SET image = EXCLUDED.image, updated_at = CURRENT_TIMESTAMP
	`, restaurantID, tableID, image)
	return err
}

func (r *PostgresRepository) DeleteQRCode(restaurantID, tableID int) error {
	_, err := r.DB.Exec("DELETE FROM dashboard_qr_codes WHERE restaurant_id = $1 AND table_id = $2", restaurantID, tableID)
	return err
}

func (r *PostgresRepository) RecordAudit(entry *domain.AuditEntry) error {
	return r.DB.QueryRow(`
		INSERT INTO dashboard_audit (user_id, organization_id, action, resource, resource_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, entry.UserID, entry.OrganizationID, entry.Action, entry.Resource, entry.ResourceID).
		Scan(&entry.ID, &entry.CreatedAt)
}

func (r *PostgresRepository) ListAudit(organizationID int, since time.Time, limit int) ([]domain.AuditEntry, error) {
	rows, err := r.DB.Query(`
		SELECT id, user_id, organization_id, action, resource, resource_id, created_at
		FROM dashboard_audit
		WHERE organization_id = $1 AND created_at >= $2
		ORDER BY created_at DESC
		LIMIT $3
	`, organizationID, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.AuditEntry{}
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.OrganizationID, &e.Action, &e.Resource, &e.ResourceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
