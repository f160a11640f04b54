// Package storage provides abstractions for the contacts directory backend.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitpay/internal/models"
)

// ErrNotFound is returned when a contact does not exist.
var ErrNotFound = errors.New("contact not found")

// ContactStore defines the interface for contact storage operations.
// This abstraction allows swapping storage backends (SQLite, a device
// address-book bridge, etc.) without changing the directory code.
type ContactStore interface {
	// UpsertContact inserts a contact or updates the one with the same phone number.
	// The contact.ID field will be populated by the store.
	UpsertContact(ctx context.Context, contact *models.Recipient) error

	// GetContact retrieves a contact by its ID.
	// Returns ErrNotFound if the contact does not exist.
	GetContact(ctx context.Context, id string) (*models.Recipient, error)

	// ListContacts returns all contacts ordered by display name.
	ListContacts(ctx context.Context) ([]models.Recipient, error)

	// DeleteContact removes a contact. Returns ErrNotFound if it does not exist.
	DeleteContact(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
