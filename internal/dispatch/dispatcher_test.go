package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/upi"
)

type fakeSMS struct {
	mu       sync.Mutex
	failures map[string]error
	sent     map[string]string
	started  chan string
	release  chan struct{}
}

func newFakeSMS() *fakeSMS {
	return &fakeSMS{failures: make(map[string]error), sent: make(map[string]string)}
}

func (f *fakeSMS) SendSMS(ctx context.Context, phoneNumber, message string) error {
	if f.started != nil {
		f.started <- phoneNumber
	}
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failures[phoneNumber]; err != nil {
		return err
	}
	f.sent[phoneNumber] = message
	return nil
}

type fakeLauncher struct {
	appID string
	uri   string
	err   error
}

func (f *fakeLauncher) Launch(ctx context.Context, appID, payloadURI string) error {
	f.appID = appID
	f.uri = payloadURI
	return f.err
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) Open(ctx context.Context, uri string) error {
	f.opened = append(f.opened, uri)
	return f.err
}

type countingObserver struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingObserver) ObserveOutcome(channel string, outcome models.DispatchOutcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[channel+"/"+string(outcome.Status)]++
}

var (
	alice   = models.Recipient{ID: "r1", DisplayName: "Alice", PhoneNumber: "+911111111111"}
	bob     = models.Recipient{ID: "r2", DisplayName: "Bob", PhoneNumber: "+912222222222"}
	charlie = models.Recipient{ID: "r3", DisplayName: "Charlie", PhoneNumber: "+913333333333"}
)

func testIntent(t *testing.T) models.PaymentIntent {
	t.Helper()
	intent, err := upi.BuildPaymentIntent("", 150, "payer@upi", "Payer")
	require.NoError(t, err)
	return intent
}

func TestSelect_Idempotent(t *testing.T) {
	d := New(Config{})

	require.NoError(t, d.Select(alice))
	require.NoError(t, d.Select(alice))
	assert.Equal(t, []models.Recipient{alice}, d.Selected())
	assert.Equal(t, StateSelectionPending, d.State())

	require.NoError(t, d.Deselect(bob))
	assert.Equal(t, []models.Recipient{alice}, d.Selected())

	require.NoError(t, d.Deselect(alice))
	assert.Empty(t, d.Selected())
	assert.Equal(t, StateIdle, d.State())
}

func TestSelect_PreservesOrder(t *testing.T) {
	d := New(Config{})
	require.NoError(t, d.Select(charlie))
	require.NoError(t, d.Select(alice))
	require.NoError(t, d.Select(bob))
	require.NoError(t, d.Deselect(alice))

	assert.Equal(t, []models.Recipient{charlie, bob}, d.Selected())
	assert.True(t, d.IsSelected("r2"))
	assert.False(t, d.IsSelected("r1"))
}

func TestValidateSelection(t *testing.T) {
	tests := []struct {
		name             string
		selected         []models.Recipient
		participantCount int
		wantExpected     int
		wantActual       int
		wantErr          bool
	}{
		{name: "three people, two selected", selected: []models.Recipient{alice, bob}, participantCount: 3},
		{name: "alone, nobody selected", participantCount: 1},
		{name: "three people, one selected", selected: []models.Recipient{alice}, participantCount: 3, wantErr: true, wantExpected: 2, wantActual: 1},
		{name: "two people, two selected", selected: []models.Recipient{alice, bob}, participantCount: 2, wantErr: true, wantExpected: 1, wantActual: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Config{})
			for _, r := range tt.selected {
				require.NoError(t, d.Select(r))
			}

			err := d.ValidateSelection(tt.participantCount)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, StateValidated, d.State())
				return
			}

			var wrong *WrongCountError
			require.ErrorAs(t, err, &wrong)
			assert.Equal(t, tt.wantExpected, wrong.Expected)
			assert.Equal(t, tt.wantActual, wrong.Actual)
			assert.NotEqual(t, StateValidated, d.State())
		})
	}
}

func TestValidateSelection_InvalidCount(t *testing.T) {
	d := New(Config{})
	var verr *models.ValidationError
	require.ErrorAs(t, d.ValidateSelection(0), &verr)
}

func TestValidateSelection_ToggleInvalidates(t *testing.T) {
	d := New(Config{SMS: newFakeSMS()})
	require.NoError(t, d.Select(alice))
	require.NoError(t, d.ValidateSelection(2))

	require.NoError(t, d.Select(bob))
	assert.Equal(t, StateSelectionPending, d.State())

	_, err := d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestDispatch_RequiresValidation(t *testing.T) {
	sms := newFakeSMS()
	d := New(Config{SMS: sms})
	require.NoError(t, d.Select(alice))

	_, err := d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	assert.ErrorIs(t, err, ErrNotValidated)
	assert.Empty(t, sms.sent)
}

func TestDispatch_SMSFailureIsolation(t *testing.T) {
	sms := newFakeSMS()
	sms.failures[bob.PhoneNumber] = errors.New("carrier rejected")
	observer := &countingObserver{}
	d := New(Config{SMS: sms, Observer: observer})

	require.NoError(t, d.Select(alice))
	require.NoError(t, d.Select(bob))
	require.NoError(t, d.ValidateSelection(3))

	report, err := d.Dispatch(context.Background(), Request{
		Channel: ChannelSMS,
		Message: RequestMessage(150),
		Intent:  testIntent(t),
	})
	require.NoError(t, err)

	require.Len(t, report.Outcomes, 2)
	assert.Equal(t, models.Sent(), report.Outcomes["r1"])
	assert.Equal(t, models.OutcomeFailed, report.Outcomes["r2"].Status)
	assert.Contains(t, report.Outcomes["r2"].Reason, "carrier rejected")
	assert.Nil(t, report.Aggregate)
	assert.Equal(t, 1, report.Failures())
	assert.Equal(t, "Please pay ₹150.00", sms.sent[alice.PhoneNumber])
	assert.NotEmpty(t, report.PaymentURI)
	assert.Equal(t, StateCompleted, d.State())

	assert.Equal(t, 1, observer.counts["sms/sent"])
	assert.Equal(t, 1, observer.counts["sms/failed"])
}

func TestDispatch_MissingPhoneNumber(t *testing.T) {
	sms := newFakeSMS()
	d := New(Config{SMS: sms})
	noPhone := models.Recipient{ID: "r9", DisplayName: "Nobody"}

	require.NoError(t, d.Select(alice))
	require.NoError(t, d.Select(noPhone))
	require.NoError(t, d.ValidateSelection(3))

	report, err := d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	require.NoError(t, err)
	assert.True(t, report.Outcomes["r1"].OK())
	assert.Equal(t, models.Failed("missing phone number"), report.Outcomes["r9"])
	assert.Len(t, sms.sent, 1)
}

func TestDispatch_SMSRunsConcurrently(t *testing.T) {
	sms := newFakeSMS()
	sms.started = make(chan string, 3)
	sms.release = make(chan struct{})
	d := New(Config{SMS: sms})

	for _, r := range []models.Recipient{alice, bob, charlie} {
		require.NoError(t, d.Select(r))
	}
	require.NoError(t, d.ValidateSelection(4))

	done := make(chan *Report, 1)
	go func() {
		report, err := d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
		if err != nil {
			t.Errorf("Dispatch failed: %v", err)
		}
		done <- report
	}()

	// All three sends must be in flight at the same time.
	for i := 0; i < 3; i++ {
		select {
		case <-sms.started:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d sends started concurrently", i)
		}
	}

	// While sends are pending, a second dispatch and any toggle are refused.
	assert.Equal(t, StateDispatching, d.State())
	_, err := d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	assert.ErrorIs(t, err, ErrDispatchInFlight)
	assert.ErrorIs(t, d.Deselect(alice), ErrDispatchInFlight)
	assert.ErrorIs(t, d.ValidateSelection(4), ErrDispatchInFlight)

	close(sms.release)
	select {
	case report := <-done:
		require.NotNil(t, report)
		assert.Len(t, report.Outcomes, 3)
		assert.Equal(t, 0, report.Failures())
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not complete")
	}
}

func TestDispatch_RequiresFreshValidation(t *testing.T) {
	d := New(Config{SMS: newFakeSMS()})
	require.NoError(t, d.Select(alice))
	require.NoError(t, d.ValidateSelection(2))

	_, err := d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	require.NoError(t, err)

	_, err = d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	assert.ErrorIs(t, err, ErrNotValidated)

	require.NoError(t, d.ValidateSelection(2))
	_, err = d.Dispatch(context.Background(), Request{Channel: ChannelSMS, Message: "hi"})
	assert.NoError(t, err)
}

func TestDispatch_UnknownChannel(t *testing.T) {
	d := New(Config{})
	require.NoError(t, d.ValidateSelection(1))

	_, err := d.Dispatch(context.Background(), Request{Channel: Channel(42)})
	assert.ErrorIs(t, err, ErrUnknownChannel)
	assert.Equal(t, StateValidated, d.State())
}

func TestDispatch_ChatApp(t *testing.T) {
	launcher := &fakeLauncher{}
	opener := &fakeOpener{}
	sms := newFakeSMS()
	d := New(Config{SMS: sms, Launcher: launcher, Opener: opener})

	require.NoError(t, d.Select(alice))
	require.NoError(t, d.Select(bob))
	require.NoError(t, d.ValidateSelection(3))

	intent := testIntent(t)
	report, err := d.Dispatch(context.Background(), Request{
		Channel: ChannelChatApp,
		Message: RequestMessage(150),
		Intent:  intent,
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultChatAppID, launcher.appID)
	assert.Equal(t, "whatsapp://send?text=Please%20pay%20%E2%82%B9150.00", launcher.uri)
	assert.Equal(t, launcher.uri, report.ChatLink)
	require.NotNil(t, report.Aggregate)
	assert.True(t, report.Aggregate.OK())
	assert.Empty(t, report.Outcomes)
	assert.Equal(t, []string{intent.URI}, opener.opened)
	assert.Empty(t, report.Notices)
	assert.Empty(t, sms.sent)
}

func TestDispatch_ChatAppFailures(t *testing.T) {
	launcher := &fakeLauncher{err: errors.New("app not installed")}
	opener := &fakeOpener{err: errors.New("no handler for upi://")}
	d := New(Config{Launcher: launcher, Opener: opener, ChatAppID: "org.telegram.messenger"})

	require.NoError(t, d.ValidateSelection(1))
	report, err := d.Dispatch(context.Background(), Request{
		Channel: ChannelChatApp,
		Message: "hi",
		Intent:  testIntent(t),
	})
	require.NoError(t, err)

	assert.Equal(t, "org.telegram.messenger", launcher.appID)
	require.NotNil(t, report.Aggregate)
	assert.Equal(t, models.Failed("app not installed"), *report.Aggregate)
	require.Len(t, report.Notices, 1)
	assert.Contains(t, report.Notices[0], "no handler")
	assert.Equal(t, 1, report.Failures())
}

func TestParseChannel(t *testing.T) {
	for in, want := range map[string]Channel{"sms": ChannelSMS, " SMS ": ChannelSMS, "chat_app": ChannelChatApp, "whatsapp": ChannelChatApp} {
		got, err := ParseChannel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseChannel("carrier pigeon")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
