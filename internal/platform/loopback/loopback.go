// Package loopback provides platform adapters that only log.
// They are used when no real transport is configured: the client receives
// the chat link and payment URI in the RPC response and acts on them itself.
package loopback

import (
	"context"
	"log/slog"
)

// SMS logs messages instead of sending them.
type SMS struct {
	Logger *slog.Logger
}

// SendSMS logs the message and reports success.
func (s SMS) SendSMS(ctx context.Context, phoneNumber, message string) error {
	logger(s.Logger).InfoContext(ctx, "SMS handed to client", "phone", phoneNumber, "length", len(message))
	return nil
}

// Launcher logs app launches.
type Launcher struct {
	Logger *slog.Logger
}

// Launch logs the launch request and reports success.
func (l Launcher) Launch(ctx context.Context, appID, payloadURI string) error {
	logger(l.Logger).InfoContext(ctx, "App launch handed to client", "app_id", appID, "uri", payloadURI)
	return nil
}

// Opener logs URIs that should be opened on the device.
type Opener struct {
	Logger *slog.Logger
}

// Open logs uri and reports success.
func (o Opener) Open(ctx context.Context, uri string) error {
	logger(o.Logger).InfoContext(ctx, "URI handed to client", "uri", uri)
	return nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
