package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/splitpay/internal/calculator"
	"github.com/mmynk/splitpay/internal/contacts"
	"github.com/mmynk/splitpay/internal/dispatch"
	"github.com/mmynk/splitpay/internal/models"
	"github.com/mmynk/splitpay/internal/session"
	"github.com/mmynk/splitpay/internal/upi"
	"github.com/mmynk/splitpay/pkg/api"
	"github.com/mmynk/splitpay/pkg/api/apiconnect"
)

var _ apiconnect.SplitPayServiceHandler = (*SplitPayService)(nil)

// errContactNotFound is returned when a selected contact is not a candidate.
var errContactNotFound = errors.New("contact not found")

// PaymentConfig describes the payee of every payment link.
type PaymentConfig struct {
	Scheme       string
	PayeeAddress string
	PayeeName    string
	// IncludeLinkInSMS appends the UPI link to SMS requests.
	IncludeLinkInSMS bool
}

// SplitPayService implements the Connect SplitPayService.
type SplitPayService struct {
	sessions  *session.Manager
	directory *contacts.Directory
	payment   PaymentConfig
}

// NewSplitPayService creates a SplitPayService.
func NewSplitPayService(sessions *session.Manager, directory *contacts.Directory, payment PaymentConfig) *SplitPayService {
	if payment.Scheme == "" {
		payment.Scheme = upi.DefaultScheme
	}
	return &SplitPayService{sessions: sessions, directory: directory, payment: payment}
}

// CreateSession starts a new session with an empty ledger.
func (s *SplitPayService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	sess := s.sessions.Create()
	return connect.NewResponse(&api.CreateSessionResponse{
		SessionID:        sess.ID,
		ParticipantCount: sess.Participants(),
	}), nil
}

// EndSession discards a session and everything in it.
func (s *SplitPayService) EndSession(ctx context.Context, req *connect.Request[api.EndSessionRequest]) (*connect.Response[api.EndSessionResponse], error) {
	if err := s.sessions.End(req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.EndSessionResponse{}), nil
}

// AddExpense parses the typed amount and appends an expense.
func (s *SplitPayService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	amount, err := calculator.ParseAmount(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	expense, err := sess.Ledger.AddExpense(req.Msg.Description, amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Expense added", "session_id", sess.ID, "expense_id", expense.ID, "amount", expense.Amount)
	return connect.NewResponse(&api.AddExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// RemoveExpense drops an expense. Unknown IDs are not an error.
func (s *SplitPayService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.RemoveExpenseResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	removed := sess.Ledger.RemoveExpense(req.Msg.ExpenseID)
	if !removed {
		slog.Debug("RemoveExpense: no such expense", "session_id", sess.ID, "expense_id", req.Msg.ExpenseID)
	}
	return connect.NewResponse(&api.RemoveExpenseResponse{Removed: removed}), nil
}

// ListExpenses returns the ledger in insertion order with its total.
func (s *SplitPayService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses := sess.Ledger.Expenses()
	out := make([]api.Expense, len(expenses))
	amounts := make([]float64, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
		amounts[i] = e.Amount
	}

	total := calculator.Sum(amounts)
	return connect.NewResponse(&api.ListExpensesResponse{
		Expenses:     out,
		Total:        total,
		TotalDisplay: models.FormatAmount(total),
	}), nil
}

// SetParticipants stores the typed participant count.
func (s *SplitPayService) SetParticipants(ctx context.Context, req *connect.Request[api.SetParticipantsRequest]) (*connect.Response[api.SetParticipantsResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	n := sess.SetParticipants(req.Msg.ParticipantCount)
	return connect.NewResponse(&api.SetParticipantsResponse{
		ParticipantCount:   n,
		RecipientsRequired: n - 1,
	}), nil
}

// ComputeSplit divides the ledger total by the participant count.
func (s *SplitPayService) ComputeSplit(ctx context.Context, req *connect.Request[api.ComputeSplitRequest]) (*connect.Response[api.ComputeSplitResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	split, err := sess.Ledger.ComputeSplit(sess.Participants())
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ComputeSplitResponse{
		Total:            split.Total,
		PerPerson:        split.PerPerson,
		ParticipantCount: split.ParticipantCount,
		TotalDisplay:     models.FormatAmount(split.Total),
		PerPersonDisplay: models.FormatAmount(split.PerPerson),
	}), nil
}

// ListContacts returns candidate recipients filtered by the query.
func (s *SplitPayService) ListContacts(ctx context.Context, req *connect.Request[api.ListContactsRequest]) (*connect.Response[api.ListContactsResponse], error) {
	var dispatcher *dispatch.Dispatcher
	if req.Msg.SessionID != "" {
		sess, err := s.sessions.Get(req.Msg.SessionID)
		if err != nil {
			return nil, toConnectError(err)
		}
		dispatcher = sess.Dispatcher
	}

	candidates, notices := s.directory.Candidates(ctx)
	matches := contacts.Search(candidates, req.Msg.Query, req.Msg.Fuzzy)

	out := make([]api.Contact, len(matches))
	for i, r := range matches {
		out[i] = api.Contact{
			ID:          r.ID,
			DisplayName: r.DisplayName,
			PhoneNumber: r.PhoneNumber,
			Selected:    dispatcher != nil && dispatcher.IsSelected(r.ID),
		}
	}
	return connect.NewResponse(&api.ListContactsResponse{Contacts: out, Notices: notices}), nil
}

// SelectRecipient adds a contact to the session's selection.
func (s *SplitPayService) SelectRecipient(ctx context.Context, req *connect.Request[api.SelectRecipientRequest]) (*connect.Response[api.SelectRecipientResponse], error) {
	sess, recipient, err := s.sessionAndContact(ctx, req.Msg.SessionID, req.Msg.ContactID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := sess.Dispatcher.Select(recipient); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.SelectRecipientResponse{
		SelectedCount: len(sess.Dispatcher.Selected()),
	}), nil
}

// DeselectRecipient removes a contact from the session's selection.
func (s *SplitPayService) DeselectRecipient(ctx context.Context, req *connect.Request[api.DeselectRecipientRequest]) (*connect.Response[api.DeselectRecipientResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}
	// Deselecting needs only the ID, so a contact that has since left the
	// directory can still be removed.
	if err := sess.Dispatcher.Deselect(models.Recipient{ID: req.Msg.ContactID}); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.DeselectRecipientResponse{
		SelectedCount: len(sess.Dispatcher.Selected()),
	}), nil
}

// GetPaymentLink builds the UPI link for the current per-person amount.
func (s *SplitPayService) GetPaymentLink(ctx context.Context, req *connect.Request[api.GetPaymentLinkRequest]) (*connect.Response[api.GetPaymentLinkResponse], error) {
	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	split, err := sess.Ledger.ComputeSplit(sess.Participants())
	if err != nil {
		return nil, toConnectError(err)
	}
	intent, err := s.buildIntent(split.PerPerson)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetPaymentLinkResponse{
		URI:           intent.URI,
		Amount:        intent.Amount,
		AmountDisplay: models.FormatAmount(intent.Amount),
	}), nil
}

// RequestPayment validates the selection against the participant count and
// sends the payment request over the chosen channel.
func (s *SplitPayService) RequestPayment(ctx context.Context, req *connect.Request[api.RequestPaymentRequest]) (*connect.Response[api.RequestPaymentResponse], error) {
	channel, err := dispatch.ParseChannel(req.Msg.Channel)
	if err != nil {
		return nil, toConnectError(err)
	}

	sess, err := s.sessions.Get(req.Msg.SessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	split, err := sess.Ledger.ComputeSplit(sess.Participants())
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := sess.Dispatcher.ValidateSelection(split.ParticipantCount); err != nil {
		slog.Info("RequestPayment: selection rejected", "session_id", sess.ID, "error", err)
		return nil, toConnectError(err)
	}

	intent, err := s.buildIntent(split.PerPerson)
	if err != nil {
		return nil, toConnectError(err)
	}

	message := dispatch.RequestMessage(split.PerPerson)
	if channel == dispatch.ChannelSMS && s.payment.IncludeLinkInSMS {
		message = upi.ShareMessage(message, intent.URI)
	}

	report, err := sess.Dispatcher.Dispatch(ctx, dispatch.Request{
		Channel: channel,
		Message: message,
		Intent:  intent,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(toAPIReport(report, message)), nil
}

func (s *SplitPayService) sessionAndContact(ctx context.Context, sessionID, contactID string) (*session.Session, models.Recipient, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, models.Recipient{}, err
	}

	candidates, _ := s.directory.Candidates(ctx)
	for _, r := range candidates {
		if r.ID == contactID {
			return sess, r, nil
		}
	}
	return nil, models.Recipient{}, fmt.Errorf("%w: %s", errContactNotFound, contactID)
}

func (s *SplitPayService) buildIntent(amount float64) (models.PaymentIntent, error) {
	return upi.BuildPaymentIntent(s.payment.Scheme, amount, s.payment.PayeeAddress, s.payment.PayeeName)
}

func toAPIExpense(e models.Expense) api.Expense {
	return api.Expense{
		ID:            e.ID,
		Description:   e.Description,
		Amount:        e.Amount,
		AmountDisplay: models.FormatAmount(e.Amount),
		CreatedAt:     e.CreatedAt,
	}
}

func toAPIReport(report *dispatch.Report, message string) *api.RequestPaymentResponse {
	resp := &api.RequestPaymentResponse{
		Channel:    report.Channel.String(),
		Message:    message,
		PaymentURI: report.PaymentURI,
		ChatLink:   report.ChatLink,
		Notices:    report.Notices,
		Failures:   report.Failures(),
	}
	// Selection order, not map order.
	for _, r := range report.Recipients {
		outcome, ok := report.Outcomes[r.ID]
		if !ok {
			continue
		}
		resp.Outcomes = append(resp.Outcomes, api.RecipientOutcome{
			RecipientID: r.ID,
			DisplayName: r.DisplayName,
			Outcome:     api.Outcome{Status: string(outcome.Status), Reason: outcome.Reason},
		})
	}
	if report.Aggregate != nil {
		resp.Aggregate = &api.Outcome{Status: string(report.Aggregate.Status), Reason: report.Aggregate.Reason}
	}
	return resp
}
