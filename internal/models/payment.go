package models

// CurrencyINR is the only supported currency.
const CurrencyINR = "INR"

// PaymentIntent is a UPI payment request serialised as a URI.
// It is a value object built fresh for every dispatch.
type PaymentIntent struct {
	Amount       float64
	PayeeAddress string // UPI identifier, e.g. "alice@bank"
	PayeeName    string
	Currency     string
	URI          string
}

// OutcomeStatus is the result of one outbound action.
type OutcomeStatus string

const (
	OutcomeSent   OutcomeStatus = "sent"
	OutcomeFailed OutcomeStatus = "failed"
)

// DispatchOutcome reports what happened to one recipient (SMS) or to the
// single chat-app launch. Reason is empty for sent outcomes.
type DispatchOutcome struct {
	Status OutcomeStatus
	Reason string
}

// Sent returns a successful outcome.
func Sent() DispatchOutcome {
	return DispatchOutcome{Status: OutcomeSent}
}

// Failed returns a failed outcome carrying reason.
func Failed(reason string) DispatchOutcome {
	return DispatchOutcome{Status: OutcomeFailed, Reason: reason}
}

// OK reports whether the outcome is Sent.
func (o DispatchOutcome) OK() bool {
	return o.Status == OutcomeSent
}
