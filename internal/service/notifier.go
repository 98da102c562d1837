package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/quicksplit/internal/models"
)

// Notifier delivers a finalized split to the people who owe a share.
type Notifier interface {
	RequestSplit(ctx context.Context, req models.SplitRequest) error
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(ctx context.Context, req models.SplitRequest) error

func (f NotifierFunc) RequestSplit(ctx context.Context, req models.SplitRequest) error {
	return f(ctx, req)
}

// LogNotifier logs one line per participant who owes the payer.
type LogNotifier struct {
	Logger *slog.Logger // nil means slog.Default()
}

func (n LogNotifier) RequestSplit(ctx context.Context, req models.SplitRequest) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	payer := req.Payer()
	for _, a := range req.Allocations {
		if a.Participant.ID == payer || a.Amount.IsZero() {
			continue
		}
		logger.InfoContext(ctx, "Split request sent",
			"split_id", req.ID,
			"title", req.Title,
			"to", a.Participant.DisplayName(),
			"payer", payer,
			"amount", models.FormatAmount(a.Amount, req.Currency),
		)
	}
	return nil
}
