package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
)

// InvalidInputError reports input that cannot be split at all: no
// participants, a non-positive total, an empty title and similar.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidInput(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UnbalancedSplitError reports percentages that do not add up to 100 or
// fixed amounts that do not add up to the total.
type UnbalancedSplitError struct {
	Strategy models.Strategy
	Sum      decimal.Decimal
	Want     decimal.Decimal
}

func (e *UnbalancedSplitError) Error() string {
	switch e.Strategy {
	case models.StrategyPercentage:
		return fmt.Sprintf("percentages add up to %s%%, want %s%%", e.Sum.String(), e.Want.String())
	default:
		return fmt.Sprintf("amounts add up to %s, want %s", e.Sum.String(), e.Want.String())
	}
}

// ValidationError is returned by FinalizeSplit. Reason is suitable for
// showing next to the form; the underlying *InvalidInputError or
// *UnbalancedSplitError is available via errors.As.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return "split rejected: " + e.Reason
}

func (e *ValidationError) Unwrap() error { return e.Err }

func rejected(err error) *ValidationError {
	return &ValidationError{Reason: err.Error(), Err: err}
}
