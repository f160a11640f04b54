// Package platform declares the device capabilities the core depends on.
//
// Implementations live in sub-packages: smsgateway (HTTP SMS gateway),
// discord (chat launcher via webhook) and loopback (log-only adapters used
// when the client performs the action itself).
package platform

import (
	"context"
	"errors"
)

// ErrPermissionDenied is returned by a contacts provider when the user has
// not granted access to the address book.
var ErrPermissionDenied = errors.New("contacts permission denied")

// SMSSender delivers one text message to one phone number.
// A nil error means the transport accepted the message.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

// AppLauncher opens an external application with a payload URI.
// Success means the launch happened, not that anything was delivered.
type AppLauncher interface {
	Launch(ctx context.Context, appID, payloadURI string) error
}

// URIOpener asks the platform to open uri with its registered handler.
type URIOpener interface {
	Open(ctx context.Context, uri string) error
}
