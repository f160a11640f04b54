// Package upi builds UPI payment-intent URIs.
//
// A UPI intent looks like
//
//	upi://pay?pa=alice%40bank&pn=Alice&am=500&cu=INR
//
// where pa is the payee's UPI address, pn the payee name, am the amount and cu
// the currency. Parameters are always written in that order.
package upi

import (
	"math"
	"net/url"
	"strings"

	"github.com/mmynk/splitpay/internal/models"
)

// DefaultScheme is the URI scheme registered by UPI payment apps.
const DefaultScheme = "upi"

// BuildPaymentIntent validates its input and serialises a payment intent.
// An empty scheme means DefaultScheme.
func BuildPaymentIntent(scheme string, amount float64, payeeAddress, payeeName string) (models.PaymentIntent, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.PaymentIntent{}, models.NewValidationError("amount", "must be a finite number")
	}
	if amount <= 0 {
		return models.PaymentIntent{}, models.NewValidationError("amount", "must be positive, got %v", amount)
	}
	if strings.TrimSpace(payeeAddress) == "" {
		return models.PaymentIntent{}, models.NewValidationError("payee address", "required")
	}
	if scheme == "" {
		scheme = DefaultScheme
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://pay?pa=")
	b.WriteString(Escape(payeeAddress))
	b.WriteString("&pn=")
	b.WriteString(Escape(payeeName))
	b.WriteString("&am=")
	b.WriteString(models.PlainAmount(amount))
	b.WriteString("&cu=")
	b.WriteString(models.CurrencyINR)

	return models.PaymentIntent{
		Amount:       amount,
		PayeeAddress: payeeAddress,
		PayeeName:    payeeName,
		Currency:     models.CurrencyINR,
		URI:          b.String(),
	}, nil
}

// Escape percent-encodes s for use as a query value. Spaces become %20,
// matching what payment and chat apps expect from encodeURIComponent.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ShareMessage appends the payment link to a request message.
func ShareMessage(message, uri string) string {
	return message + " - " + uri
}
