package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/storage"
)

// UpsertContact persists a contact. A contact whose phone number is already
// stored updates that row; otherwise a new row is created.
func (s *SQLiteStore) UpsertContact(ctx context.Context, contact *models.Recipient) error {
	contact.DisplayName = strings.TrimSpace(contact.DisplayName)
	contact.PhoneNumber = strings.TrimSpace(contact.PhoneNumber)
	if contact.DisplayName == "" {
		return fmt.Errorf("contact display name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	if contact.PhoneNumber != "" {
		err = tx.QueryRowContext(ctx,
			"SELECT id FROM contacts WHERE phone_number = ?",
			contact.PhoneNumber,
		).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to look up contact by phone: %w", err)
		}
	}
	if existingID == "" && contact.ID != "" {
		err = tx.QueryRowContext(ctx, "SELECT id FROM contacts WHERE id = ?", contact.ID).Scan(&existingID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("failed to look up contact: %w", err)
		}
	}

	if existingID != "" {
		_, err = tx.ExecContext(ctx,
			"UPDATE contacts SET display_name = ?, phone_number = ? WHERE id = ?",
			contact.DisplayName, contact.PhoneNumber, existingID,
		)
		if err != nil {
			return fmt.Errorf("failed to update contact: %w", err)
		}
		contact.ID = existingID
	} else {
		if contact.ID == "" {
			contact.ID = uuid.New().String()
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO contacts (id, display_name, phone_number, created_at) VALUES (?, ?, ?, ?)",
			contact.ID, contact.DisplayName, contact.PhoneNumber, time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert contact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetContact retrieves a contact by ID.
func (s *SQLiteStore) GetContact(ctx context.Context, id string) (*models.Recipient, error) {
	contact := &models.Recipient{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, display_name, phone_number FROM contacts WHERE id = ?",
		id,
	).Scan(&contact.ID, &contact.DisplayName, &contact.PhoneNumber)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

// ListContacts returns every contact ordered by display name.
func (s *SQLiteStore) ListContacts(ctx context.Context) ([]models.Recipient, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, display_name, phone_number FROM contacts ORDER BY display_name COLLATE NOCASE, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.Recipient
	for rows.Next() {
		var c models.Recipient
		if err := rows.Scan(&c.ID, &c.DisplayName, &c.PhoneNumber); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return contacts, nil
}

// DeleteContact removes a contact by ID.
func (s *SQLiteStore) DeleteContact(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return nil
}

// importedContact is one entry of a contacts import file.
type importedContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ImportFile loads a JSON array of {"name", "phone"} objects and upserts
// each entry. It returns the number of contacts written.
func (s *SQLiteStore) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read contacts file: %w", err)
	}

	var entries []importedContact
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("failed to parse contacts file: %w", err)
	}

	count := 0
	for i, e := range entries {
		contact := &models.Recipient{DisplayName: e.Name, PhoneNumber: e.Phone}
		if err := s.UpsertContact(ctx, contact); err != nil {
			return count, fmt.Errorf("contact %d: %w", i, err)
		}
		count++
	}
	return count, nil
}
