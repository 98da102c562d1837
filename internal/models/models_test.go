package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyEqual, false},
		{"equal", StrategyEqual, false},
		{"Percentage", StrategyPercentage, false},
		{"fixed_amount", StrategyFixedAmount, false},
		{"amount", StrategyFixedAmount, false},
		{"custom", StrategyFixedAmount, false},
		{"shares", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.True(t, got.Valid())
	}
	assert.False(t, Strategy("custom").Valid())
}

func TestSplitRequestHelpers(t *testing.T) {
	you := Participant{ID: "you", Owner: true}
	amit := Participant{ID: "amit", Name: "Amit"}
	req := SplitRequest{
		Participants: []Participant{amit, you},
		Allocations: []Allocation{
			{Participant: amit, Amount: decimal.NewFromInt(300), Percentage: decimal.NewFromInt(60)},
			{Participant: you, Amount: decimal.NewFromInt(200), Percentage: decimal.NewFromInt(40)},
		},
	}

	owner, ok := req.Owner()
	require.True(t, ok)
	assert.Equal(t, "you", owner.ID)
	assert.Equal(t, "you", req.Payer())

	req.PayerID = "amit"
	assert.Equal(t, "amit", req.Payer())

	a, ok := req.AllocationFor("amit")
	require.True(t, ok)
	assert.True(t, a.Amount.Equal(decimal.NewFromInt(300)))
	_, ok = req.AllocationFor("nobody")
	assert.False(t, ok)

	assert.Len(t, req.Amounts(), 2)
	assert.True(t, req.Percentages()[1].Equal(decimal.NewFromInt(40)))

	clone := req.Clone()
	clone.Participants[0].Name = "Changed"
	clone.Allocations[0].Amount = decimal.Zero
	assert.Equal(t, "Amit", req.Participants[0].Name)
	assert.True(t, req.Allocations[0].Amount.Equal(decimal.NewFromInt(300)))

	assert.Equal(t, "Amit", amit.DisplayName())
	assert.Equal(t, "you", you.DisplayName())
}

func TestPayerWithoutOwner(t *testing.T) {
	req := SplitRequest{Participants: []Participant{{ID: "a"}, {ID: "b"}}}
	assert.Empty(t, req.Payer())
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-12-5")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.December, 5), d)
	assert.Equal(t, "2024-12-05", d.String())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)

	assert.Equal(t, NewDate(2025, time.January, 1), NewDate(2024, time.December, 32), "dates are normalized")
	assert.Equal(t, NewDate(2024, time.December, 28), DateOf(time.Date(2024, time.December, 28, 23, 59, 0, 0, time.UTC)))
	assert.True(t, Date{}.IsZero())
	assert.Empty(t, Date{}.String())
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Date Date `json:"date"`
	}

	out, err := json.Marshal(wrapper{NewDate(2024, time.December, 26)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date": "2024-12-26"}`, string(out))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"date": "2024-12-26"}`), &w))
	assert.Equal(t, NewDate(2024, time.December, 26), w.Date)

	require.NoError(t, json.Unmarshal([]byte(`{"date": ""}`), &w))
	assert.True(t, w.Date.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"date": "26/12/2024"}`), &w))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "INR", NormalizeCurrency(""))
	assert.Equal(t, "USD", NormalizeCurrency(" usd "))

	places, err := CurrencyPlaces("inr")
	require.NoError(t, err)
	assert.Equal(t, int32(2), places)

	places, err = CurrencyPlaces("JPY")
	require.NoError(t, err)
	assert.Equal(t, int32(0), places)

	_, err = CurrencyPlaces("ZZZ")
	assert.True(t, errors.Is(err, ErrUnknownCurrency))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₹1,500.00", FormatAmount(decimal.NewFromInt(1500), "INR"))
	assert.Equal(t, "$0.01", FormatAmount(decimal.RequireFromString("0.01"), "USD"))
	assert.Equal(t, "12.5", FormatAmount(decimal.RequireFromString("12.5"), "ZZZ"))
}

func TestStrategyUnmarshalJSON(t *testing.T) {
	var req SplitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"strategy": "custom"}`), &req))
	assert.Equal(t, StrategyFixedAmount, req.Strategy)

	require.NoError(t, json.Unmarshal([]byte(`{"strategy": "Percent"}`), &req))
	assert.Equal(t, StrategyPercentage, req.Strategy)

	assert.Error(t, json.Unmarshal([]byte(`{"strategy": "shares"}`), &req))

	out, err := json.Marshal(SplitRequest{Strategy: StrategyFixedAmount})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"strategy":"fixed_amount"`)
}
