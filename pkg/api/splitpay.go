// Package api defines the request and response messages of
// splitpay.v1.SplitPayService. Messages travel as JSON.
package api

// Expense is one entry of the session ledger.
type Expense struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amountDisplay"`
	CreatedAt     int64   `json:"createdAt"`
}

// Contact is a candidate recipient.
type Contact struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	PhoneNumber string `json:"phoneNumber"`
	Selected    bool   `json:"selected"`
}

// Outcome is the result of one send or launch.
type Outcome struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// RecipientOutcome is the SMS outcome for one recipient.
type RecipientOutcome struct {
	RecipientID string  `json:"recipientId"`
	DisplayName string  `json:"displayName"`
	Outcome     Outcome `json:"outcome"`
}

type CreateSessionRequest struct{}

type CreateSessionResponse struct {
	SessionID        string `json:"sessionId"`
	ParticipantCount int    `json:"participantCount"`
}

type EndSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type EndSessionResponse struct{}

type AddExpenseRequest struct {
	SessionID   string `json:"sessionId"`
	Description string `json:"description"`
	// Amount is the text the user typed.
	Amount string `json:"amount"`
}

type AddExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type RemoveExpenseRequest struct {
	SessionID string `json:"sessionId"`
	ExpenseID string `json:"expenseId"`
}

type RemoveExpenseResponse struct {
	Removed bool `json:"removed"`
}

type ListExpensesRequest struct {
	SessionID string `json:"sessionId"`
}

type ListExpensesResponse struct {
	Expenses     []Expense `json:"expenses"`
	Total        float64   `json:"total"`
	TotalDisplay string    `json:"totalDisplay"`
}

type SetParticipantsRequest struct {
	SessionID string `json:"sessionId"`
	// ParticipantCount is the text the user typed; blank or invalid means 1.
	ParticipantCount string `json:"participantCount"`
}

type SetParticipantsResponse struct {
	ParticipantCount int `json:"participantCount"`
	// RecipientsRequired is ParticipantCount - 1.
	RecipientsRequired int `json:"recipientsRequired"`
}

type ComputeSplitRequest struct {
	SessionID string `json:"sessionId"`
}

type ComputeSplitResponse struct {
	Total            float64 `json:"total"`
	PerPerson        float64 `json:"perPerson"`
	ParticipantCount int     `json:"participantCount"`
	TotalDisplay     string  `json:"totalDisplay"`
	PerPersonDisplay string  `json:"perPersonDisplay"`
}

type ListContactsRequest struct {
	// SessionID is optional; when set, contacts carry their selection state.
	SessionID string `json:"sessionId,omitempty"`
	Query     string `json:"query,omitempty"`
	Fuzzy     bool   `json:"fuzzy,omitempty"`
}

type ListContactsResponse struct {
	Contacts []Contact `json:"contacts"`
	Notices  []string  `json:"notices,omitempty"`
}

type SelectRecipientRequest struct {
	SessionID string `json:"sessionId"`
	ContactID string `json:"contactId"`
}

type SelectRecipientResponse struct {
	SelectedCount int `json:"selectedCount"`
}

type DeselectRecipientRequest struct {
	SessionID string `json:"sessionId"`
	ContactID string `json:"contactId"`
}

type DeselectRecipientResponse struct {
	SelectedCount int `json:"selectedCount"`
}

type GetPaymentLinkRequest struct {
	SessionID string `json:"sessionId"`
}

type GetPaymentLinkResponse struct {
	URI           string  `json:"uri"`
	Amount        float64 `json:"amount"`
	AmountDisplay string  `json:"amountDisplay"`
}

type RequestPaymentRequest struct {
	SessionID string `json:"sessionId"`
	// Channel is "sms" or "chat_app".
	Channel string `json:"channel"`
}

type RequestPaymentResponse struct {
	Channel    string             `json:"channel"`
	Message    string             `json:"message"`
	Outcomes   []RecipientOutcome `json:"outcomes,omitempty"`
	Aggregate  *Outcome           `json:"aggregate,omitempty"`
	PaymentURI string             `json:"paymentUri"`
	ChatLink   string             `json:"chatLink,omitempty"`
	Notices    []string           `json:"notices,omitempty"`
	Failures   int                `json:"failures"`
}

func (r *EndSessionRequest) GetSessionID() string        { return r.SessionID }
func (r *AddExpenseRequest) GetSessionID() string        { return r.SessionID }
func (r *RemoveExpenseRequest) GetSessionID() string     { return r.SessionID }
func (r *ListExpensesRequest) GetSessionID() string      { return r.SessionID }
func (r *SetParticipantsRequest) GetSessionID() string   { return r.SessionID }
func (r *ComputeSplitRequest) GetSessionID() string      { return r.SessionID }
func (r *ListContactsRequest) GetSessionID() string      { return r.SessionID }
func (r *SelectRecipientRequest) GetSessionID() string   { return r.SessionID }
func (r *DeselectRecipientRequest) GetSessionID() string { return r.SessionID }
func (r *GetPaymentLinkRequest) GetSessionID() string    { return r.SessionID }
func (r *RequestPaymentRequest) GetSessionID() string    { return r.SessionID }
