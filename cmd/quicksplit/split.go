package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/mmynk/quicksplit/internal/calculator"
	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/service"
)

type splitCmd struct {
	svc      *service.SplitService
	registry *prometheus.Registry
	out      io.Writer

	title    string
	amount   string
	strategy string
	with     string
	mine     string
	currency string
	desc     string
	date     string
	payer    string
	submit   bool
	metrics  bool
}

func (*splitCmd) Name() string     { return "split" }
func (*splitCmd) Synopsis() string { return "preview or submit a shared expense" }
func (*splitCmd) Usage() string {
	return `quicksplit split -title <title> -amount <total> -with <people> [-strategy equal|percentage|fixed_amount] [-mine <value>] [-submit]

  Computes how a shared expense is divided. <people> is a comma separated
  list of [id:]name[=value] entries, where value is the person's percentage
  or amount for non-equal splits. -mine is the signed-in user's value.

  Without -submit the breakdown is only previewed. -submit requires
  QUICKSPLIT_USER_ID and sends a split request to every participant.
`
}

func (c *splitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "What the expense was for.")
	f.StringVar(&c.amount, "amount", "", "Total amount to split.")
	f.StringVar(&c.strategy, "strategy", "equal", "Split strategy: equal, percentage or fixed_amount.")
	f.StringVar(&c.with, "with", "", "People to split with: [id:]name[=value],...")
	f.StringVar(&c.mine, "mine", "", "Your percentage or amount for non-equal splits.")
	f.StringVar(&c.currency, "currency", "", "ISO 4217 currency code. Defaults to QUICKSPLIT_CURRENCY.")
	f.StringVar(&c.desc, "desc", "", "Optional description.")
	f.StringVar(&c.date, "date", "", "Date of the expense (YYYY-MM-DD). Defaults to today.")
	f.StringVar(&c.payer, "payer", "", "ID of the person who paid. Defaults to you.")
	f.BoolVar(&c.submit, "submit", false, "Send the split requests instead of only previewing.")
	f.BoolVar(&c.metrics, "metrics", false, "Print split metrics to stderr when done.")
}

func (c *splitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	members, err := parseMembers(c.with)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	form := service.SplitForm{
		Title:       c.title,
		Amount:      c.amount,
		Currency:    c.currency,
		Strategy:    c.strategy,
		Description: c.desc,
		Date:        c.date,
		PayerID:     c.payer,
		OwnerValue:  c.mine,
		Members:     members,
	}

	var req models.SplitRequest
	if c.submit {
		req, err = c.svc.Submit(ctx, form)
	} else {
		req, err = c.svc.Preview(ctx, form)
	}
	if c.metrics {
		defer c.dumpMetrics(os.Stderr)
	}

	var validation *calculator.ValidationError
	switch {
	case errors.As(err, &validation):
		fmt.Fprintln(os.Stderr, validation.Reason)
		return subcommands.ExitUsageError
	case errors.Is(err, service.ErrUnauthenticated):
		fmt.Fprintln(os.Stderr, "-submit requires QUICKSPLIT_USER_ID to be set")
		return subcommands.ExitUsageError
	case err != nil:
		slog.Error("Split failed", "error", err)
		return subcommands.ExitFailure
	}

	if err := writeBreakdown(c.out, req); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *splitCmd) dumpMetrics(w io.Writer) {
	families, err := c.registry.Gather()
	if err != nil {
		slog.Warn("Failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			slog.Warn("Failed to write metrics", "error", err)
			return
		}
	}
}

// parseMembers parses "[id:]name[=value],..." into form members.
func parseMembers(s string) ([]service.MemberInput, error) {
	var members []service.MemberInput
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		var m service.MemberInput
		who, value, hasValue := strings.Cut(entry, "=")
		if hasValue {
			m.Value = strings.TrimSpace(value)
			if m.Value == "" {
				return nil, fmt.Errorf("%q: missing value after '='", entry)
			}
		}
		if id, name, ok := strings.Cut(who, ":"); ok {
			m.ID = strings.TrimSpace(id)
			m.Name = strings.TrimSpace(name)
		} else {
			m.Name = strings.TrimSpace(who)
		}
		if m.ID == "" && m.Name == "" {
			return nil, fmt.Errorf("%q: missing name", entry)
		}
		members = append(members, m)
	}
	return members, nil
}

// writeBreakdown prints the split as an aligned table.
func writeBreakdown(w io.Writer, req models.SplitRequest) error {
	fmt.Fprintf(w, "%s: %s split %s\n", req.Title, models.FormatAmount(req.Total, req.Currency), req.Strategy)
	if req.ID != "" {
		fmt.Fprintf(w, "request %s on %s\n", req.ID, req.Date)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	payer := req.Payer()
	for _, a := range req.Allocations {
		note := ""
		switch {
		case a.Participant.ID == payer:
			note = "paid"
		case a.Participant.Owner:
			note = "you"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s%%\t%s\t\n",
			a.Participant.DisplayName(),
			models.FormatAmount(a.Amount, req.Currency),
			a.Percentage.StringFixed(2),
			note,
		)
	}
	return tw.Flush()
}
