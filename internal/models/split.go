package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Strategy is the method used to divide a total among participants.
type Strategy string

const (
	// StrategyEqual divides the total evenly.
	StrategyEqual Strategy = "equal"

	// StrategyPercentage assigns each participant a percentage of the total.
	StrategyPercentage Strategy = "percentage"

	// StrategyFixedAmount assigns each participant a fixed amount.
	StrategyFixedAmount Strategy = "fixed_amount"
)

// Strategies lists every supported strategy.
var Strategies = []Strategy{StrategyEqual, StrategyPercentage, StrategyFixedAmount}

// ParseStrategy parses a strategy name. It is case-insensitive and accepts
// "amount" and "custom" as aliases for fixed_amount.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "equal":
		return StrategyEqual, nil
	case "percentage", "percent":
		return StrategyPercentage, nil
	case "fixed_amount", "fixed", "amount", "custom":
		return StrategyFixedAmount, nil
	default:
		return "", fmt.Errorf("unknown split strategy %q", s)
	}
}

// UnmarshalText parses a strategy name with ParseStrategy, so JSON input
// accepts the same aliases as the form.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool { return slices.Contains(Strategies, s) }

// Allocation is one participant's share of a split.
type Allocation struct {
	Participant Participant `json:"participant"`

	// Percentage is the participant's share of the total.
	// Input for percentage splits; derived for the other strategies.
	Percentage decimal.Decimal `json:"percentage"`

	// Amount is the participant's share in currency units.
	// Input for fixed_amount splits; computed for the other strategies.
	Amount decimal.Decimal `json:"amount"`
}

// SplitRequest is a shared expense to be divided among participants.
//
// A SplitRequest is built once the form inputs are complete, finalized by
// the calculator and handed off for notification. It is never persisted.
type SplitRequest struct {
	// ID is assigned when the request is submitted (UUID format).
	ID string `json:"id,omitempty"`

	// Title is the human-readable name for the expense (e.g., "Dinner at Pizza Hut").
	Title string `json:"title"`

	// Total is the full amount being split.
	Total decimal.Decimal `json:"total"`

	// Currency is the ISO 4217 code of Total. Empty means DefaultCurrency.
	Currency string `json:"currency,omitempty"`

	Strategy Strategy `json:"strategy"`

	// Participants in display order. The owner, if present, is usually first.
	Participants []Participant `json:"participants"`

	// Allocations holds one entry per participant, in Participants order.
	// Equal splits may leave it empty on input.
	Allocations []Allocation `json:"allocations,omitempty"`

	Description string `json:"description,omitempty"`

	// Date of the expense. Defaults to the submission day.
	Date Date `json:"date"`

	// PayerID is the participant who paid the total. Empty means the owner.
	PayerID string `json:"payer_id,omitempty"`
}

// Clone returns a copy of r that shares no slices with it.
func (r SplitRequest) Clone() SplitRequest {
	r.Participants = slices.Clone(r.Participants)
	r.Allocations = slices.Clone(r.Allocations)
	return r
}

// Owner returns the owning participant, if any.
func (r SplitRequest) Owner() (Participant, bool) {
	for _, p := range r.Participants {
		if p.Owner {
			return p, true
		}
	}
	return Participant{}, false
}

// Payer returns the ID of the participant who paid, defaulting to the owner.
func (r SplitRequest) Payer() string {
	if r.PayerID != "" {
		return r.PayerID
	}
	if owner, ok := r.Owner(); ok {
		return owner.ID
	}
	return ""
}

// AllocationFor returns the allocation of the given participant.
func (r SplitRequest) AllocationFor(participantID string) (Allocation, bool) {
	for _, a := range r.Allocations {
		if a.Participant.ID == participantID {
			return a, true
		}
	}
	return Allocation{}, false
}

// Amounts returns the allocation amounts in order.
func (r SplitRequest) Amounts() []decimal.Decimal {
	out := make([]decimal.Decimal, len(r.Allocations))
	for i, a := range r.Allocations {
		out[i] = a.Amount
	}
	return out
}

// Percentages returns the allocation percentages in order.
func (r SplitRequest) Percentages() []decimal.Decimal {
	out := make([]decimal.Decimal, len(r.Allocations))
	for i, a := range r.Allocations {
		out[i] = a.Percentage
	}
	return out
}
