package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	webhookID string
	token     string
	params    *discordgo.WebhookParams
	err       error
}

func (f *fakeSession) WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.webhookID = webhookID
	f.token = token
	f.params = data
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{Content: data.Content}, nil
}

func TestLaunch_PostsDecodedText(t *testing.T) {
	session := &fakeSession{}
	l := newLauncher(session, "123", "tok")

	err := l.Launch(context.Background(), "com.whatsapp", "whatsapp://send?text=Please%20pay%20%E2%82%B9150.00")
	require.NoError(t, err)

	assert.Equal(t, "123", session.webhookID)
	assert.Equal(t, "tok", session.token)
	assert.Equal(t, "Please pay ₹150.00", session.params.Content)
}

func TestLaunch_PlainPayload(t *testing.T) {
	session := &fakeSession{}
	l := newLauncher(session, "123", "tok")

	require.NoError(t, l.Launch(context.Background(), "", "upi://pay?pa=a%40b&am=1&cu=INR"))
	assert.Equal(t, "upi://pay?pa=a%40b&am=1&cu=INR", session.params.Content)
}

func TestLaunch_WebhookFailure(t *testing.T) {
	session := &fakeSession{err: errors.New("401 Unauthorized")}
	l := newLauncher(session, "123", "bad")

	err := l.Launch(context.Background(), "com.whatsapp", "whatsapp://send?text=hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestLaunch_EmptyPayload(t *testing.T) {
	l := newLauncher(&fakeSession{}, "123", "tok")
	require.Error(t, l.Launch(context.Background(), "com.whatsapp", ""))
}
