package calculator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// FinalizeSplit validates req and computes one allocation per participant
// according to req.Strategy. An empty strategy means equal.
//
// The returned request is a copy of req with the title trimmed, the
// currency normalized and Allocations filled in participant order. For
// percentage and fixed_amount splits the per-participant inputs are read
// from req.Allocations, matched by participant ID.
//
// Every failure is a *ValidationError. Its cause, an *InvalidInputError or
// an *UnbalancedSplitError, can be retrieved with errors.As.
func FinalizeSplit(req models.SplitRequest) (models.SplitRequest, error) {
	out := req.Clone()
	out.Title = strings.TrimSpace(out.Title)
	out.Currency = models.NormalizeCurrency(out.Currency)
	if out.Strategy == "" {
		out.Strategy = models.StrategyEqual
	}

	c, err := ForCurrency(out.Currency)
	if err != nil {
		return models.SplitRequest{}, rejected(invalidInput("currency", "%q is not a known currency", out.Currency))
	}

	if out.Title == "" {
		return models.SplitRequest{}, rejected(invalidInput("title", "must not be empty"))
	}
	if err := c.checkTotal(out.Total); err != nil {
		return models.SplitRequest{}, rejected(err)
	}
	if err := checkParticipants(out.Participants); err != nil {
		return models.SplitRequest{}, rejected(err)
	}
	if out.PayerID != "" && !hasParticipant(out.Participants, out.PayerID) {
		return models.SplitRequest{}, rejected(invalidInput("payer", "%q must be one of the participants", out.PayerID))
	}

	var allocations []models.Allocation
	switch out.Strategy {
	case models.StrategyEqual:
		allocations, err = c.EqualSplit(out.Total, out.Participants)

	case models.StrategyPercentage:
		var percentages []decimal.Decimal
		percentages, err = inputsByParticipant(out, "percentages", func(a models.Allocation) decimal.Decimal { return a.Percentage })
		if err == nil {
			allocations, err = c.PercentageSplit(out.Total, out.Participants, percentages)
		}

	case models.StrategyFixedAmount:
		var amounts []decimal.Decimal
		amounts, err = inputsByParticipant(out, "amounts", func(a models.Allocation) decimal.Decimal { return a.Amount })
		if err == nil {
			allocations, err = c.FixedAmountSplit(out.Total, out.Participants, amounts)
		}

	default:
		err = invalidInput("strategy", "unknown split strategy %q", out.Strategy)
	}
	if err != nil {
		return models.SplitRequest{}, rejected(err)
	}

	out.Allocations = allocations
	return out, nil
}

// inputsByParticipant lines up the strategy inputs in req.Allocations with
// req.Participants. Every participant needs exactly one entry.
func inputsByParticipant(req models.SplitRequest, field string, value func(models.Allocation) decimal.Decimal) ([]decimal.Decimal, error) {
	byID := make(map[string]models.Allocation, len(req.Allocations))
	for _, a := range req.Allocations {
		id := a.Participant.ID
		if !hasParticipant(req.Participants, id) {
			return nil, invalidInput(field, "participant %q is not part of the split", id)
		}
		if _, dup := byID[id]; dup {
			return nil, invalidInput(field, "participant %q is listed twice", id)
		}
		byID[id] = a
	}

	values := make([]decimal.Decimal, len(req.Participants))
	for i, p := range req.Participants {
		a, ok := byID[p.ID]
		if !ok {
			return nil, invalidInput(field, "missing value for %s", p.DisplayName())
		}
		values[i] = value(a)
	}
	return values, nil
}

func hasParticipant(participants []models.Participant, id string) bool {
	for _, p := range participants {
		if p.ID == id {
			return true
		}
	}
	return false
}
