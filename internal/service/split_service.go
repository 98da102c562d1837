// Package service is the boundary between the split form and the calculator.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/quicksplit/internal/calculator"
	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/session"
)

// ErrUnauthenticated is returned by Submit when nobody is signed in.
var ErrUnauthenticated = errors.New("authentication required")

// SplitService previews and submits splits for the signed-in user.
type SplitService struct {
	notifier Notifier
	metrics  *Metrics
	currency string
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a SplitService.
type Option func(*SplitService)

// WithMetrics records previews and submissions on m.
func WithMetrics(m *Metrics) Option { return func(s *SplitService) { s.metrics = m } }

// WithCurrency sets the currency used when the form does not name one.
func WithCurrency(code string) Option {
	return func(s *SplitService) { s.currency = models.NormalizeCurrency(code) }
}

// WithClock sets the clock used to default the split date.
func WithClock(now func() time.Time) Option { return func(s *SplitService) { s.now = now } }

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option { return func(s *SplitService) { s.logger = l } }

// NewSplitService creates a SplitService that hands submitted splits to notifier.
func NewSplitService(notifier Notifier, opts ...Option) *SplitService {
	s := &SplitService{
		notifier: notifier,
		currency: models.DefaultCurrency,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Preview computes the split breakdown without submitting it.
// The signed-in user, if any, is included as the owner.
func (s *SplitService) Preview(ctx context.Context, form SplitForm) (models.SplitRequest, error) {
	var owner *models.Participant
	if sess, ok := session.FromContext(ctx); ok {
		p := sess.Participant()
		owner = &p
	}

	req, err := s.finalize(form, owner)
	if err != nil {
		s.logger.DebugContext(ctx, "Preview rejected", "error", err)
		s.metrics.record("preview", req.Strategy, OutcomeRejected)
		return models.SplitRequest{}, err
	}

	s.metrics.record("preview", req.Strategy, OutcomeOK)
	return req, nil
}

// Submit finalizes the split and hands it to the notifier. It requires a
// signed-in user, who becomes the owner and, unless the form says
// otherwise, the payer.
func (s *SplitService) Submit(ctx context.Context, form SplitForm) (models.SplitRequest, error) {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return models.SplitRequest{}, ErrUnauthenticated
	}
	owner := sess.Participant()

	req, err := s.finalize(form, &owner)
	if err != nil {
		s.logger.InfoContext(ctx, "Split rejected", "user_id", sess.UserID, "error", err)
		s.metrics.record("submit", req.Strategy, OutcomeRejected)
		return models.SplitRequest{}, err
	}

	req.ID = uuid.NewString()
	if req.Date.IsZero() {
		req.Date = models.DateOf(s.now())
	}

	if err := s.notifier.RequestSplit(ctx, req); err != nil {
		s.logger.ErrorContext(ctx, "Split notification failed", "split_id", req.ID, "error", err)
		s.metrics.record("submit", req.Strategy, OutcomeFailed)
		return models.SplitRequest{}, fmt.Errorf("failed to send split request: %w", err)
	}

	s.metrics.record("submit", req.Strategy, OutcomeOK)
	s.metrics.observeParticipants(len(req.Participants))
	s.logger.InfoContext(ctx, "Split submitted",
		"split_id", req.ID,
		"user_id", sess.UserID,
		"strategy", req.Strategy,
		"total", models.FormatAmount(req.Total, req.Currency),
		"participants", len(req.Participants),
	)
	return req, nil
}

// finalize builds and finalizes the request. When the calculator rejects it,
// the returned request still carries the strategy, for metrics.
func (s *SplitService) finalize(form SplitForm, owner *models.Participant) (models.SplitRequest, error) {
	req, err := buildRequest(form, owner, s.currency)
	if err != nil {
		return req, err
	}
	finalized, err := calculator.FinalizeSplit(req)
	if err != nil {
		return models.SplitRequest{Strategy: req.Strategy}, err
	}
	for _, a := range finalized.Allocations {
		s.logger.Debug("Allocation",
			"participant", a.Participant.ID,
			"percentage", a.Percentage.StringFixed(2),
			"amount", a.Amount.String(),
		)
	}
	return finalized, nil
}
