// Package models defines the core domain models for quicksplit.
//
// # Models
//
//   - Participant: someone sharing an expense, including the current user
//   - SplitRequest: a shared expense to be divided among participants
//   - Allocation: one participant's share of a SplitRequest
//   - Settlement: a payment between participants that clears debt
//
// # Design Principles
//
// 1. **Values, not handles**: a SplitRequest is built once its inputs are
// complete and is passed around by value. Code that derives a new request
// (finalizing, defaulting a date) copies slices instead of sharing them.
// 2. **Exact money**: amounts and percentages are decimal.Decimal. Currency
// precision comes from the ISO 4217 minor unit of the request's currency.
// 3. **IDs, not pointers**: relationships use participant ID strings.
package models
