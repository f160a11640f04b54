package models

import "strings"

// Recipient is a contact that can receive a payment request.
// Recipients come from the contacts directory and are read-only to the core.
type Recipient struct {
	// ID is the directory's identifier for the contact.
	ID string

	// DisplayName is the name shown in contact lists and search.
	DisplayName string

	// PhoneNumber is stored as the directory delivered it; no normalisation.
	PhoneNumber string
}

// HasPhoneNumber reports whether the recipient can be reached by SMS.
func (r Recipient) HasPhoneNumber() bool {
	return strings.TrimSpace(r.PhoneNumber) != ""
}
