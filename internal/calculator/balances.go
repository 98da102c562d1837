package calculator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// ErrMixedCurrencies is returned when balances are asked for across splits
// in different currencies.
var ErrMixedCurrencies = errors.New("splits use different currencies")

// MemberBalance represents the balance information for one participant.
type MemberBalance struct {
	ParticipantID string
	Name          string
	NetBalance    decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid     decimal.Decimal // Total amount paid across all splits and settlements
	TotalOwed     decimal.Decimal // Total amount this person owes
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Summary is the owner's view of a set of balances.
type Summary struct {
	OwedToYou decimal.Decimal
	YouOwe    decimal.Decimal
	Net       decimal.Decimal // OwedToYou - YouOwe
}

// CalculateBalances computes balances across multiple splits and settlements.
//
// Algorithm:
//   - For each split: the payer contributed +total, each participant owes their allocation
//   - For each settlement: payer's balance improves, receiver's balance decreases
//   - Aggregate: net_balance = total_paid - total_owed
//   - Debt matrix: simplified by greedily matching the largest debts with the largest credits
//
// Splits are finalized again before use, so unfinalized requests are fine.
// All splits must share one currency, otherwise ErrMixedCurrencies is
// returned. Settlement amounts are taken to be in that currency.
// Splits without a payer (no PayerID and no owner) are skipped. Balances are
// returned in the order participants were first seen.
func CalculateBalances(splits []models.SplitRequest, settlements []models.Settlement) ([]MemberBalance, []DebtEdge, error) {
	balances := make(map[string]*MemberBalance)
	var order []string

	member := func(id, name string) *MemberBalance {
		if b, ok := balances[id]; ok {
			if b.Name == b.ParticipantID && name != "" {
				b.Name = name
			}
			return b
		}
		if name == "" {
			name = id
		}
		b := &MemberBalance{ParticipantID: id, Name: name}
		balances[id] = b
		order = append(order, id)
		return b
	}

	var currency string
	for i, split := range splits {
		finalized, err := FinalizeSplit(split)
		if err != nil {
			return nil, nil, fmt.Errorf("split %d (%q): %w", i+1, split.Title, err)
		}
		if currency == "" {
			currency = finalized.Currency
		} else if finalized.Currency != currency {
			return nil, nil, fmt.Errorf("split %d (%q): %w: %s, want %s",
				i+1, split.Title, ErrMixedCurrencies, finalized.Currency, currency)
		}

		payerID := finalized.Payer()
		if payerID == "" {
			continue
		}

		for _, p := range finalized.Participants {
			member(p.ID, p.Name)
		}
		payer := member(payerID, "")
		payer.TotalPaid = payer.TotalPaid.Add(finalized.Total)

		for _, a := range finalized.Allocations {
			b := member(a.Participant.ID, a.Participant.Name)
			b.TotalOwed = b.TotalOwed.Add(a.Amount)
		}
	}

	for i, s := range settlements {
		if s.FromID == "" || s.ToID == "" {
			return nil, nil, fmt.Errorf("settlement %d: both parties are required", i+1)
		}
		if s.FromID == s.ToID {
			return nil, nil, fmt.Errorf("settlement %d: %q cannot settle with themselves", i+1, s.FromID)
		}
		if !s.Amount.IsPositive() {
			return nil, nil, fmt.Errorf("settlement %d: amount must be positive, got %s", i+1, s.Amount.String())
		}
		// Payer's balance improves (they effectively "paid" to settle debt)
		from := member(s.FromID, "")
		from.TotalPaid = from.TotalPaid.Add(s.Amount)
		// Receiver's balance decreases (they received payment)
		to := member(s.ToID, "")
		to.TotalOwed = to.TotalOwed.Add(s.Amount)
	}

	memberBalances := make([]MemberBalance, 0, len(order))
	for _, id := range order {
		b := balances[id]
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}

	return memberBalances, simplifyDebts(memberBalances), nil
}

// simplifyDebts matches debtors with creditors to minimize transactions.
func simplifyDebts(balances []MemberBalance) []DebtEdge {
	type party struct {
		id     string
		amount decimal.Decimal
	}
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.NetBalance.IsPositive():
			creditors = append(creditors, party{b.ParticipantID, b.NetBalance})
		case b.NetBalance.IsNegative():
			debtors = append(debtors, party{b.ParticipantID, b.NetBalance.Neg()})
		}
	}
	byAmount := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool { return ps[i].amount.GreaterThan(ps[j].amount) }
	}
	sort.SliceStable(creditors, byAmount(creditors))
	sort.SliceStable(debtors, byAmount(debtors))

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.IsPositive() {
			edges = append(edges, DebtEdge{From: debtors[i].id, To: creditors[j].id, Amount: amount})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if !debtors[i].amount.IsPositive() {
			i++
		}
		if !creditors[j].amount.IsPositive() {
			j++
		}
	}
	return edges
}

// Summarize reports how much is owed to and by ownerID in the simplified debts.
func Summarize(ownerID string, debts []DebtEdge) Summary {
	s := Summary{OwedToYou: decimal.Zero, YouOwe: decimal.Zero}
	for _, d := range debts {
		switch ownerID {
		case d.To:
			s.OwedToYou = s.OwedToYou.Add(d.Amount)
		case d.From:
			s.YouOwe = s.YouOwe.Add(d.Amount)
		}
	}
	s.Net = s.OwedToYou.Sub(s.YouOwe)
	return s
}
