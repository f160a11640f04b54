// Package dispatch turns a computed split and a set of selected contacts into
// outbound payment requests.
//
// A Dispatcher belongs to one session. Recipients are toggled in and out of
// the selection, the selection is validated against the participant count,
// and then exactly one dispatch may run. SMS requests fan out one send per
// recipient and wait for all of them; the chat-app channel launches the chat
// application once and then opens the UPI payment link.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/platform"
	"github.com/mmynk/splitpay/internal/upi"
)

const (
	// DefaultChatAppID is the application package opened for ChannelChatApp.
	DefaultChatAppID = "com.whatsapp"

	chatLinkPrefix = "whatsapp://send?text="
)

// OutcomeObserver is notified of every outcome a dispatch produces.
type OutcomeObserver interface {
	ObserveOutcome(channel string, outcome models.DispatchOutcome)
}

// Config wires a Dispatcher to the platform.
type Config struct {
	SMS       platform.SMSSender
	Launcher  platform.AppLauncher
	Opener    platform.URIOpener
	ChatAppID string
	Logger    *slog.Logger
	Observer  OutcomeObserver
}

// Request is one payment-request dispatch.
type Request struct {
	Channel Channel
	Message string
	Intent  models.PaymentIntent
}

// Report collects what a dispatch did. For SMS, Outcomes has one entry per
// selected recipient; for the chat app, Aggregate holds the single launch result.
type Report struct {
	Channel    Channel
	Outcomes   map[string]models.DispatchOutcome
	Recipients []models.Recipient
	Aggregate  *models.DispatchOutcome
	PaymentURI string
	ChatLink   string
	Notices    []string
}

// Failures counts failed outcomes in the report.
func (r *Report) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	if r.Aggregate != nil && !r.Aggregate.OK() {
		n++
	}
	return n
}

// Dispatcher owns the recipient selection and the dispatch state of a session.
type Dispatcher struct {
	cfg Config

	mu       sync.Mutex
	state    State
	selected map[string]models.Recipient
	order    []string
}

// New creates a Dispatcher in the Idle state.
func New(cfg Config) *Dispatcher {
	if cfg.ChatAppID == "" {
		cfg.ChatAppID = DefaultChatAppID
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Dispatcher{
		cfg:      cfg,
		selected: make(map[string]models.Recipient),
	}
}

// RequestMessage is the text sent to each recipient.
func RequestMessage(amount float64) string {
	return "Please pay ₹" + models.FormatAmount(amount)
}

// ChatLink builds the chat deep link carrying message.
func ChatLink(message string) string {
	return chatLinkPrefix + upi.Escape(message)
}

// State returns the current dispatch state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Select adds r to the selection. Selecting an already-selected recipient is a no-op.
func (d *Dispatcher) Select(r models.Recipient) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDispatching {
		return ErrDispatchInFlight
	}
	if _, ok := d.selected[r.ID]; ok {
		return nil
	}
	d.selected[r.ID] = r
	d.order = append(d.order, r.ID)
	d.state = d.pendingStateLocked()
	return nil
}

// Deselect removes r from the selection. Deselecting an unselected recipient is a no-op.
func (d *Dispatcher) Deselect(r models.Recipient) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDispatching {
		return ErrDispatchInFlight
	}
	if _, ok := d.selected[r.ID]; !ok {
		return nil
	}
	delete(d.selected, r.ID)
	for i, id := range d.order {
		if id == r.ID {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	d.state = d.pendingStateLocked()
	return nil
}

// IsSelected reports whether the recipient with id is selected.
func (d *Dispatcher) IsSelected(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.selected[id]
	return ok
}

// Selected returns the selected recipients in selection order.
func (d *Dispatcher) Selected() []models.Recipient {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selectedLocked()
}

// ValidateSelection checks that exactly participantCount-1 recipients are
// selected and, if so, moves to Validated.
func (d *Dispatcher) ValidateSelection(participantCount int) error {
	if participantCount < 1 {
		return models.NewValidationError("participant count", "must be at least 1, got %d", participantCount)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateDispatching {
		return ErrDispatchInFlight
	}

	expected := participantCount - 1
	if actual := len(d.order); actual != expected {
		d.state = d.pendingStateLocked()
		return &WrongCountError{Expected: expected, Actual: actual}
	}
	d.state = StateValidated
	return nil
}

// Dispatch sends req to the validated selection and waits for every send to
// settle. Individual failures are reported in the Report; the error is only
// non-nil when the dispatch could not start.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Report, error) {
	d.mu.Lock()
	switch d.state {
	case StateValidated:
	case StateDispatching:
		d.mu.Unlock()
		return nil, ErrDispatchInFlight
	default:
		d.mu.Unlock()
		return nil, ErrNotValidated
	}
	if req.Channel != ChannelSMS && req.Channel != ChannelChatApp {
		d.mu.Unlock()
		return nil, ErrUnknownChannel
	}
	recipients := d.selectedLocked()
	d.state = StateDispatching
	d.mu.Unlock()

	report := &Report{
		Channel:    req.Channel,
		Recipients: recipients,
		PaymentURI: req.Intent.URI,
	}

	switch req.Channel {
	case ChannelSMS:
		report.Outcomes = d.sendSMS(ctx, req.Message, recipients)
	case ChannelChatApp:
		d.launchChat(ctx, req, report)
	}

	d.mu.Lock()
	d.state = StateCompleted
	d.mu.Unlock()

	d.cfg.Logger.Info("Dispatch completed",
		"channel", req.Channel.String(),
		"recipients", len(recipients),
		"failures", report.Failures(),
	)
	return report, nil
}

// sendSMS fans out one send per recipient. Each goroutine writes only its own
// slot and never returns an error, so no send cancels or delays another.
func (d *Dispatcher) sendSMS(ctx context.Context, message string, recipients []models.Recipient) map[string]models.DispatchOutcome {
	results := make([]models.DispatchOutcome, len(recipients))

	var g errgroup.Group
	for i, r := range recipients {
		i, r := i, r
		g.Go(func() error {
			results[i] = d.sendOne(ctx, r, message)
			return nil
		})
	}
	_ = g.Wait()

	outcomes := make(map[string]models.DispatchOutcome, len(recipients))
	for i, r := range recipients {
		outcomes[r.ID] = results[i]
		d.observe(ChannelSMS, results[i])
	}
	return outcomes
}

func (d *Dispatcher) sendOne(ctx context.Context, r models.Recipient, message string) models.DispatchOutcome {
	if !r.HasPhoneNumber() {
		d.cfg.Logger.Warn("Skipping SMS, no phone number", "recipient_id", r.ID, "name", r.DisplayName)
		return models.Failed("missing phone number")
	}
	if d.cfg.SMS == nil {
		return models.Failed("sms transport unavailable")
	}

	if err := d.cfg.SMS.SendSMS(ctx, r.PhoneNumber, message); err != nil {
		d.cfg.Logger.Warn("Failed to send SMS", "recipient_id", r.ID, "name", r.DisplayName, "error", err)
		return models.Failed(err.Error())
	}
	d.cfg.Logger.Info("SMS sent", "recipient_id", r.ID, "name", r.DisplayName)
	return models.Sent()
}

func (d *Dispatcher) launchChat(ctx context.Context, req Request, report *Report) {
	report.ChatLink = ChatLink(req.Message)

	outcome := models.Failed("chat launcher unavailable")
	if d.cfg.Launcher != nil {
		if err := d.cfg.Launcher.Launch(ctx, d.cfg.ChatAppID, report.ChatLink); err != nil {
			d.cfg.Logger.Warn("Failed to launch chat app", "app_id", d.cfg.ChatAppID, "error", err)
			outcome = models.Failed(err.Error())
		} else {
			outcome = models.Sent()
		}
	}
	report.Aggregate = &outcome
	d.observe(ChannelChatApp, outcome)

	// A missing UPI handler is reported to the user, never escalated.
	if req.Intent.URI == "" || d.cfg.Opener == nil {
		return
	}
	if err := d.cfg.Opener.Open(ctx, req.Intent.URI); err != nil {
		d.cfg.Logger.Warn("Failed to open UPI app", "uri", req.Intent.URI, "error", err)
		report.Notices = append(report.Notices, "Failed to open UPI app: "+err.Error())
	}
}

func (d *Dispatcher) observe(channel Channel, outcome models.DispatchOutcome) {
	if d.cfg.Observer != nil {
		d.cfg.Observer.ObserveOutcome(channel.String(), outcome)
	}
}

func (d *Dispatcher) selectedLocked() []models.Recipient {
	out := make([]models.Recipient, len(d.order))
	for i, id := range d.order {
		out[i] = d.selected[id]
	}
	return out
}

func (d *Dispatcher) pendingStateLocked() State {
	if len(d.order) == 0 {
		return StateIdle
	}
	return StateSelectionPending
}
