// Package discord implements the chat-app channel by posting the payment
// request into a Discord channel through a webhook.
package discord

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bwmarrin/discordgo"

	"github.com/mmynk/splitpay/internal/platform"
)

var _ platform.AppLauncher = (*Launcher)(nil)

// webhookSession is the part of *discordgo.Session the launcher needs.
type webhookSession interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Launcher posts chat payloads to a Discord webhook.
type Launcher struct {
	session   webhookSession
	webhookID string
	token     string
}

// New creates a launcher for the given webhook. Webhooks need no bot token,
// so the session is created without credentials.
func New(webhookID, token string) (*Launcher, error) {
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	return newLauncher(session, webhookID, token), nil
}

func newLauncher(session webhookSession, webhookID, token string) *Launcher {
	return &Launcher{session: session, webhookID: webhookID, token: token}
}

// Launch posts the text carried by payloadURI. appID is ignored: the webhook
// determines where the message goes.
func (l *Launcher) Launch(ctx context.Context, appID, payloadURI string) error {
	content := messageText(payloadURI)
	if content == "" {
		return fmt.Errorf("empty chat payload")
	}

	_, err := l.session.WebhookExecute(l.webhookID, l.token, false, &discordgo.WebhookParams{
		Content: content,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to execute discord webhook: %w", err)
	}
	return nil
}

// messageText extracts the text parameter of a chat deep link such as
// whatsapp://send?text=Please%20pay. Anything else is posted verbatim.
func messageText(payloadURI string) string {
	u, err := url.Parse(payloadURI)
	if err != nil {
		return payloadURI
	}
	if text := u.Query().Get("text"); text != "" {
		return text
	}
	return payloadURI
}
