// Package calculator divides shared expenses among participants.
//
// All arithmetic is exact decimal arithmetic on currency minor units. Every
// function is pure: inputs are never mutated and the same input always
// produces the same output.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// Tolerance is how far percentage sums may drift from 100, and fixed amount
// sums from the total, before a split is considered unbalanced.
var Tolerance = decimal.New(1, -2)

var hundred = decimal.NewFromInt(100)

// Calculator splits amounts at a fixed currency precision.
type Calculator struct {
	places int32
}

// New returns a Calculator rounding to the given number of decimal places.
func New(places int32) Calculator {
	if places < 0 {
		places = 0
	}
	return Calculator{places: places}
}

// ForCurrency returns a Calculator for the currency's minor unit.
func ForCurrency(code string) (Calculator, error) {
	places, err := models.CurrencyPlaces(code)
	if err != nil {
		return Calculator{}, err
	}
	return New(places), nil
}

// Places returns the number of decimal places allocations are rounded to.
func (c Calculator) Places() int32 { return c.places }

// std is used by the package-level functions (cents/paise precision).
var std = New(2)

// ComputeEqualSplit divides total evenly among participants at two decimal places.
// See Calculator.EqualSplit.
func ComputeEqualSplit(total decimal.Decimal, participants []models.Participant) ([]models.Allocation, error) {
	return std.EqualSplit(total, participants)
}

// ComputePercentageSplit allocates total by percentage at two decimal places.
// See Calculator.PercentageSplit.
func ComputePercentageSplit(total decimal.Decimal, participants []models.Participant, percentages []decimal.Decimal) ([]models.Allocation, error) {
	return std.PercentageSplit(total, participants, percentages)
}

// ComputeFixedAmountSplit allocates fixed amounts at two decimal places.
// See Calculator.FixedAmountSplit.
func ComputeFixedAmountSplit(total decimal.Decimal, participants []models.Participant, amounts []decimal.Decimal) ([]models.Allocation, error) {
	return std.FixedAmountSplit(total, participants, amounts)
}

// ValidatePercentageSplit reports whether percentages add up to 100 within Tolerance.
func ValidatePercentageSplit(percentages []decimal.Decimal) bool {
	return withinTolerance(sum(percentages), hundred)
}

// ValidateFixedAmountSplit reports whether amounts add up to total within Tolerance.
func ValidateFixedAmountSplit(total decimal.Decimal, amounts []decimal.Decimal) bool {
	return withinTolerance(sum(amounts), total)
}

// EqualSplit divides total evenly among participants.
//
// The total is split in minor units. When it does not divide evenly, the
// leftover units are handed out one at a time: owner first, then the other
// participants in order. Allocations always add up to exactly total.
func (c Calculator) EqualSplit(total decimal.Decimal, participants []models.Participant) ([]models.Allocation, error) {
	if err := c.checkTotal(total); err != nil {
		return nil, err
	}
	if err := checkParticipants(participants); err != nil {
		return nil, err
	}

	weights := make([]decimal.Decimal, len(participants))
	for i := range weights {
		weights[i] = decimal.NewFromInt(1)
	}
	amounts := c.apportion(total, participants, weights)

	allocations := make([]models.Allocation, len(participants))
	for i, p := range participants {
		allocations[i] = models.Allocation{
			Participant: p,
			Amount:      amounts[i],
			Percentage:  percentageOf(amounts[i], total),
		}
	}
	return allocations, nil
}

// PercentageSplit allocates total × percentage_i / 100 to each participant.
//
// percentages must be in participant order and add up to 100 within
// Tolerance, otherwise an *UnbalancedSplitError is returned. An unbalanced
// sum is reported before any negative percentage.
//
// Shares are taken relative to the actual sum of percentages, not to 100, and
// are rounded down to minor units with the leftover units distributed the
// same way as in EqualSplit, so allocations add up to exactly total. When the
// sum is off by up to Tolerance, an allocation can therefore differ from
// total × percentage / 100 by at most total × Tolerance / 100 plus one minor
// unit (0.11 on a total of 1000 with two decimal places).
func (c Calculator) PercentageSplit(total decimal.Decimal, participants []models.Participant, percentages []decimal.Decimal) ([]models.Allocation, error) {
	if err := c.checkTotal(total); err != nil {
		return nil, err
	}
	if err := checkParticipants(participants); err != nil {
		return nil, err
	}
	if len(percentages) != len(participants) {
		return nil, invalidInput("percentages", "got %d for %d participants", len(percentages), len(participants))
	}
	if !ValidatePercentageSplit(percentages) {
		return nil, &UnbalancedSplitError{Strategy: models.StrategyPercentage, Sum: sum(percentages), Want: hundred}
	}
	for i, p := range percentages {
		if p.IsNegative() {
			return nil, invalidInput("percentages", "%s has a negative percentage", participants[i].DisplayName())
		}
	}

	amounts := c.apportion(total, participants, percentages)

	allocations := make([]models.Allocation, len(participants))
	for i, p := range participants {
		allocations[i] = models.Allocation{
			Participant: p,
			Amount:      amounts[i],
			Percentage:  percentages[i],
		}
	}
	return allocations, nil
}

// FixedAmountSplit assigns each participant the given amount.
//
// amounts must add up to total within Tolerance, otherwise an
// *UnbalancedSplitError is returned. They must also be in participant order,
// non-negative and at currency precision. Amounts are kept as given.
func (c Calculator) FixedAmountSplit(total decimal.Decimal, participants []models.Participant, amounts []decimal.Decimal) ([]models.Allocation, error) {
	if err := c.checkTotal(total); err != nil {
		return nil, err
	}
	if err := checkParticipants(participants); err != nil {
		return nil, err
	}
	if len(amounts) != len(participants) {
		return nil, invalidInput("amounts", "got %d for %d participants", len(amounts), len(participants))
	}
	if !ValidateFixedAmountSplit(total, amounts) {
		return nil, &UnbalancedSplitError{Strategy: models.StrategyFixedAmount, Sum: sum(amounts), Want: total}
	}
	for i, a := range amounts {
		if a.IsNegative() {
			return nil, invalidInput("amounts", "%s has a negative amount", participants[i].DisplayName())
		}
		if !a.Equal(a.Round(c.places)) {
			return nil, invalidInput("amounts", "%s has more than %d decimal places", participants[i].DisplayName(), c.places)
		}
	}

	allocations := make([]models.Allocation, len(participants))
	for i, p := range participants {
		allocations[i] = models.Allocation{
			Participant: p,
			Amount:      amounts[i],
			Percentage:  percentageOf(amounts[i], total),
		}
	}
	return allocations, nil
}

// apportion splits total in proportion to weights, in minor units.
// Leftover units go one each to participants with a positive weight, owner
// first. Each floored share loses less than one unit, so the leftover is
// always smaller than the number of positive weights.
func (c Calculator) apportion(total decimal.Decimal, participants []models.Participant, weights []decimal.Decimal) []decimal.Decimal {
	units := total.Shift(c.places)
	totalWeight := sum(weights)

	shares := make([]decimal.Decimal, len(weights))
	allotted := decimal.Zero
	for i, w := range weights {
		q, _ := units.Mul(w).QuoRem(totalWeight, 0)
		shares[i] = q
		allotted = allotted.Add(q)
	}

	leftover := units.Sub(allotted).IntPart()
	one := decimal.NewFromInt(1)
	for _, i := range remainderOrder(participants, weights) {
		if leftover <= 0 {
			break
		}
		shares[i] = shares[i].Add(one)
		leftover--
	}

	for i := range shares {
		shares[i] = shares[i].Shift(-c.places)
	}
	return shares
}

// remainderOrder returns the indexes eligible for leftover units: the owner
// first, then everyone else in order, skipping zero weights.
func remainderOrder(participants []models.Participant, weights []decimal.Decimal) []int {
	order := make([]int, 0, len(participants))
	for i, p := range participants {
		if p.Owner && weights[i].IsPositive() {
			order = append(order, i)
		}
	}
	for i, p := range participants {
		if !p.Owner && weights[i].IsPositive() {
			order = append(order, i)
		}
	}
	return order
}

func (c Calculator) checkTotal(total decimal.Decimal) error {
	if !total.IsPositive() {
		return invalidInput("total", "must be positive, got %s", total.String())
	}
	if !total.Equal(total.Round(c.places)) {
		return invalidInput("total", "%s has more than %d decimal places", total.String(), c.places)
	}
	return nil
}

func checkParticipants(participants []models.Participant) error {
	if len(participants) == 0 {
		return invalidInput("participants", "must have at least one participant")
	}
	seen := make(map[string]bool, len(participants))
	owners := 0
	for i, p := range participants {
		if p.ID == "" {
			return invalidInput("participants", "participant %d has no ID", i+1)
		}
		if seen[p.ID] {
			return invalidInput("participants", "duplicate participant %q", p.ID)
		}
		seen[p.ID] = true
		if p.Owner {
			owners++
		}
	}
	if owners > 1 {
		return invalidInput("participants", "%d participants are marked as owner", owners)
	}
	return nil
}

// percentageOf returns amount as a percentage of total, at two decimal places.
func percentageOf(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Mul(hundred).DivRound(total, 2)
}

func withinTolerance(got, want decimal.Decimal) bool {
	return got.Sub(want).Abs().LessThanOrEqual(Tolerance)
}

func sum(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
