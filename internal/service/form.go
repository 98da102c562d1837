package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/calculator"
	"github.com/mmynk/quicksplit/internal/models"
)

// SplitForm is the raw input of the split form, exactly as typed.
type SplitForm struct {
	Title       string
	Amount      string
	Currency    string // empty means the service default
	Strategy    string // equal, percentage or fixed_amount (aliases: amount, custom)
	Description string
	Date        string // YYYY-MM-DD, empty means today on submission
	PayerID     string // empty means the signed-in user

	// OwnerValue is the signed-in user's percentage or amount for
	// non-equal splits.
	OwnerValue string

	// Members are the people the expense is shared with, excluding the
	// signed-in user.
	Members []MemberInput
}

// MemberInput is one person picked in the form.
type MemberInput struct {
	ID   string // defaults to Name
	Name string

	// Value is the member's percentage or amount for non-equal splits.
	Value string
}

func formError(field, format string, args ...any) error {
	ie := &calculator.InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
	return &calculator.ValidationError{Reason: ie.Error(), Err: ie}
}

// buildRequest turns form input into a SplitRequest. owner is prepended to
// the participants when non-nil. The result is not finalized yet.
func buildRequest(form SplitForm, owner *models.Participant, defaultCurrency string) (models.SplitRequest, error) {
	strategy, err := models.ParseStrategy(form.Strategy)
	if err != nil {
		return models.SplitRequest{}, formError("strategy", "%q is not a split strategy", form.Strategy)
	}

	total, err := parseDecimal(form.Amount)
	if err != nil {
		return models.SplitRequest{}, formError("total", "%q is not an amount", form.Amount)
	}

	currency := form.Currency
	if strings.TrimSpace(currency) == "" {
		currency = defaultCurrency
	}

	req := models.SplitRequest{
		Title:       form.Title,
		Total:       total,
		Currency:    models.NormalizeCurrency(currency),
		Strategy:    strategy,
		Description: strings.TrimSpace(form.Description),
		PayerID:     strings.TrimSpace(form.PayerID),
	}

	if strings.TrimSpace(form.Date) != "" {
		date, err := models.ParseDate(form.Date)
		if err != nil {
			return models.SplitRequest{}, formError("date", "%q is not a date (want YYYY-MM-DD)", form.Date)
		}
		req.Date = date
	}

	type entry struct {
		participant models.Participant
		value       string
	}
	var entries []entry
	if owner != nil {
		entries = append(entries, entry{*owner, form.OwnerValue})
	}
	for i, m := range form.Members {
		id := strings.TrimSpace(m.ID)
		name := strings.TrimSpace(m.Name)
		if id == "" {
			id = name
		}
		if id == "" {
			return models.SplitRequest{}, formError("participants", "person %d has no name", i+1)
		}
		entries = append(entries, entry{models.Participant{ID: id, Name: name}, m.Value})
	}

	for _, e := range entries {
		req.Participants = append(req.Participants, e.participant)
		if strategy == models.StrategyEqual {
			continue
		}
		value, err := parseDecimal(e.value)
		if err != nil {
			return models.SplitRequest{}, formError("allocations", "%s: %q is not a number", e.participant.DisplayName(), e.value)
		}
		a := models.Allocation{Participant: e.participant}
		if strategy == models.StrategyPercentage {
			a.Percentage = value
		} else {
			a.Amount = value
		}
		req.Allocations = append(req.Allocations, a)
	}

	return req, nil
}

// parseDecimal accepts "1,500.50" and "₹1500" style input.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "₹$€£¥")
	s = strings.TrimRight(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty value")
	}
	return decimal.NewFromString(s)
}
