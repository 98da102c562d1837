package models

import "github.com/shopspring/decimal"

// Settlement represents a payment between participants to clear debts.
type Settlement struct {
	// FromID is the participant who paid (debtor settling up).
	FromID string `json:"from"`

	// ToID is the participant who received payment (creditor being paid).
	ToID string `json:"to"`

	Amount decimal.Decimal `json:"amount"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`
}
