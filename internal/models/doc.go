// Package models defines the core domain models for splitpay.
//
// # Session Models
//
// Everything here lives for the duration of one client session:
//   - Expense: an entered expense, immutable once created
//   - SplitResult: total and per-person amount, derived on demand
//   - Recipient: a contact from the directory that can be asked to pay
//   - PaymentIntent: a UPI payment link built fresh for each dispatch
//   - DispatchOutcome: the per-recipient (or aggregate) result of a send
//
// Nothing in this package is persisted. Contacts are read from the
// directory and never written back by the core.
//
// # Design Principles
//
//  1. **Values, not handles**: models are plain structs copied across package
//     boundaries; mutation happens only inside the owning ledger or dispatcher
//  2. **Full precision inside**: amounts are float64 and only rounded when
//     formatted for people (see FormatAmount)
//  3. **Failures are data**: a failed send is a DispatchOutcome, not an error
package models
