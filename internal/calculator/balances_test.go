package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/quicksplit/internal/models"
)

func balanceOf(t *testing.T, balances []MemberBalance, id string) MemberBalance {
	t.Helper()
	for _, b := range balances {
		if b.ParticipantID == id {
			return b
		}
	}
	t.Fatalf("no balance for %s", id)
	return MemberBalance{}
}

func TestCalculateBalances(t *testing.T) {
	you := models.Participant{ID: "you", Name: "You", Owner: true}
	rahul := models.Participant{ID: "rahul", Name: "Rahul"}
	priya := models.Participant{ID: "priya", Name: "Priya"}

	splits := []models.SplitRequest{
		{
			// You paid 1500, split three ways: Rahul and Priya owe you 500 each.
			Title:        "Dinner at Pizza Hut",
			Total:        d("1500"),
			Strategy:     models.StrategyEqual,
			Participants: []models.Participant{you, rahul, priya},
		},
		{
			// Rahul paid 800 for two: you owe Rahul 400.
			Title:        "Movie Tickets",
			Total:        d("800"),
			Strategy:     models.StrategyEqual,
			Participants: []models.Participant{you, rahul},
			PayerID:      "rahul",
		},
	}

	balances, debts, err := CalculateBalances(splits, nil)
	require.NoError(t, err)
	require.Len(t, balances, 3)
	assert.Equal(t, []string{"you", "rahul", "priya"},
		[]string{balances[0].ParticipantID, balances[1].ParticipantID, balances[2].ParticipantID})

	yours := balanceOf(t, balances, "you")
	assert.Equal(t, "You", yours.Name)
	assert.Equal(t, "1500.00", yours.TotalPaid.StringFixed(2))
	assert.Equal(t, "900.00", yours.TotalOwed.StringFixed(2))
	assert.Equal(t, "600.00", yours.NetBalance.StringFixed(2))
	assert.Equal(t, "-100.00", balanceOf(t, balances, "rahul").NetBalance.StringFixed(2))
	assert.Equal(t, "-500.00", balanceOf(t, balances, "priya").NetBalance.StringFixed(2))

	// Net: you +600, rahul -100, priya -500. Rahul's debt for dinner is
	// offset by the movie, so both debtors pay you directly.
	require.Len(t, debts, 2)
	assert.Equal(t, "priya", debts[0].From)
	assert.Equal(t, "you", debts[0].To)
	assert.Equal(t, "500.00", debts[0].Amount.StringFixed(2))
	assert.Equal(t, "rahul", debts[1].From)
	assert.Equal(t, "you", debts[1].To)
	assert.Equal(t, "100.00", debts[1].Amount.StringFixed(2))

	summary := Summarize("you", debts)
	assert.Equal(t, "600.00", summary.OwedToYou.StringFixed(2))
	assert.Equal(t, "0.00", summary.YouOwe.StringFixed(2))
	assert.Equal(t, "600.00", summary.Net.StringFixed(2))
}

func TestCalculateBalancesWithSettlements(t *testing.T) {
	you := models.Participant{ID: "you", Owner: true}
	amit := models.Participant{ID: "amit"}

	splits := []models.SplitRequest{{
		Title:        "Uber Ride",
		Total:        d("850"),
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{you, amit},
	}}

	t.Run("partial settlement", func(t *testing.T) {
		settlements := []models.Settlement{{FromID: "amit", ToID: "you", Amount: d("125")}}
		balances, debts, err := CalculateBalances(splits, settlements)
		require.NoError(t, err)

		assert.Equal(t, "300.00", balanceOf(t, balances, "you").NetBalance.StringFixed(2))
		assert.Equal(t, "-300.00", balanceOf(t, balances, "amit").NetBalance.StringFixed(2))
		require.Len(t, debts, 1)
		assert.Equal(t, "amit", debts[0].From)
		assert.Equal(t, "300.00", debts[0].Amount.StringFixed(2))
	})

	t.Run("fully settled", func(t *testing.T) {
		settlements := []models.Settlement{{FromID: "amit", ToID: "you", Amount: d("425")}}
		balances, debts, err := CalculateBalances(splits, settlements)
		require.NoError(t, err)

		for _, b := range balances {
			assert.True(t, b.NetBalance.IsZero(), "%s net = %s", b.ParticipantID, b.NetBalance)
		}
		assert.Empty(t, debts)
		assert.True(t, Summarize("you", debts).Net.IsZero())
	})

	t.Run("overpaid flips the debt", func(t *testing.T) {
		settlements := []models.Settlement{{FromID: "amit", ToID: "you", Amount: d("500")}}
		_, debts, err := CalculateBalances(splits, settlements)
		require.NoError(t, err)

		require.Len(t, debts, 1)
		assert.Equal(t, "you", debts[0].From)
		assert.Equal(t, "amit", debts[0].To)
		assert.Equal(t, "75.00", debts[0].Amount.StringFixed(2))

		summary := Summarize("you", debts)
		assert.Equal(t, "75.00", summary.YouOwe.StringFixed(2))
		assert.Equal(t, "-75.00", summary.Net.StringFixed(2))
	})
}

func TestCalculateBalancesErrors(t *testing.T) {
	ok := models.SplitRequest{
		Title:        "Coffee",
		Total:        d("640"),
		Strategy:     models.StrategyEqual,
		Participants: []models.Participant{{ID: "you", Owner: true}, {ID: "meera"}},
	}

	tests := []struct {
		name        string
		splits      []models.SplitRequest
		settlements []models.Settlement
	}{
		{
			name: "invalid split",
			splits: []models.SplitRequest{{
				Title: "Broken", Total: d("100"), Strategy: models.StrategyPercentage,
				Participants: []models.Participant{{ID: "a"}},
				Allocations:  []models.Allocation{{Participant: models.Participant{ID: "a"}, Percentage: d("50")}},
			}},
		},
		{
			name:        "settlement with self",
			splits:      []models.SplitRequest{ok},
			settlements: []models.Settlement{{FromID: "you", ToID: "you", Amount: d("1")}},
		},
		{
			name:        "non-positive settlement",
			splits:      []models.SplitRequest{ok},
			settlements: []models.Settlement{{FromID: "meera", ToID: "you", Amount: d("0")}},
		},
		{
			name:        "settlement without receiver",
			splits:      []models.SplitRequest{ok},
			settlements: []models.Settlement{{FromID: "meera", Amount: d("10")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := CalculateBalances(tt.splits, tt.settlements)
			assert.Error(t, err)
		})
	}
}

func TestCalculateBalancesSkipsSplitsWithoutPayer(t *testing.T) {
	splits := []models.SplitRequest{{
		Title:        "No owner, no payer",
		Total:        d("100"),
		Strategy:     models.StrategyEqual,
		Participants: people("a", "b"),
	}}
	balances, debts, err := CalculateBalances(splits, nil)
	require.NoError(t, err)
	assert.Empty(t, balances)
	assert.Empty(t, debts)
}

func TestCalculateBalancesRejectsMixedCurrencies(t *testing.T) {
	a := models.Participant{ID: "a", Owner: true}
	b := models.Participant{ID: "b"}
	splits := []models.SplitRequest{
		{Title: "Dinner", Total: d("1000"), Currency: "INR", Strategy: models.StrategyEqual,
			Participants: []models.Participant{a, b}},
		{Title: "Ramen", Total: d("1000"), Currency: "JPY", Strategy: models.StrategyEqual,
			Participants: []models.Participant{a, b}, PayerID: "b"},
	}

	_, _, err := CalculateBalances(splits, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMixedCurrencies)
	assert.Contains(t, err.Error(), "split 2")

	// An empty currency is the default one.
	splits[1].Currency = ""
	balances, _, err := CalculateBalances(splits, nil)
	require.NoError(t, err)
	assert.True(t, balanceOf(t, balances, "a").NetBalance.IsZero())
}
