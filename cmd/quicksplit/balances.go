package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/mmynk/quicksplit/internal/calculator"
	"github.com/mmynk/quicksplit/internal/models"
)

// ledger is the input file of the balances command.
type ledger struct {
	// Owner is the ID of the person the summary is for.
	Owner       string                `json:"owner"`
	Currency    string                `json:"currency,omitempty"`
	Splits      []models.SplitRequest `json:"splits"`
	Settlements []models.Settlement   `json:"settlements,omitempty"`
}

type balancesCmd struct {
	out  io.Writer
	file string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show who owes whom across several splits" }
func (*balancesCmd) Usage() string {
	return `quicksplit balances -f <file.json>

  Reads {"owner": id, "splits": [...], "settlements": [...]} and prints each
  person's net balance, the simplified list of debts and a summary for the
  owner. Use "-" to read from stdin.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "Ledger file to read (JSON).")
}

func (c *balancesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	l, err := readLedger(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := writeBalances(c.out, l); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func readLedger(file string) (ledger, error) {
	var r io.Reader = os.Stdin
	if file != "-" {
		fh, err := os.Open(file)
		if err != nil {
			return ledger{}, fmt.Errorf("failed to open ledger: %w", err)
		}
		defer fh.Close()
		r = fh
	}
	return decodeLedger(r)
}

func decodeLedger(r io.Reader) (ledger, error) {
	var l ledger
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&l); err != nil {
		return ledger{}, fmt.Errorf("failed to decode ledger: %w", err)
	}
	for i := range l.Splits {
		if l.Splits[i].Currency == "" {
			l.Splits[i].Currency = l.Currency
		}
	}
	return l, nil
}

func writeBalances(w io.Writer, l ledger) error {
	balances, debts, err := calculator.CalculateBalances(l.Splits, l.Settlements)
	if err != nil {
		return err
	}
	cur := l.Currency
	if len(l.Splits) > 0 {
		cur = l.Splits[0].Currency
	}
	cur = models.NormalizeCurrency(cur)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPAID\tSHARE\tNET\t")
	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", b.Name,
			models.FormatAmount(b.TotalPaid, cur),
			models.FormatAmount(b.TotalOwed, cur),
			models.FormatAmount(b.NetBalance, cur),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if len(debts) == 0 {
		fmt.Fprintln(w, "All settled up.")
	}
	for _, d := range debts {
		fmt.Fprintf(w, "%s owes %s %s\n", d.From, d.To, models.FormatAmount(d.Amount, cur))
	}

	if l.Owner != "" {
		s := calculator.Summarize(l.Owner, debts)
		fmt.Fprintf(w, "\nOwed to you: %s\nYou owe: %s\nNet: %s\n",
			models.FormatAmount(s.OwedToYou, cur),
			models.FormatAmount(s.YouOwe, cur),
			models.FormatAmount(s.Net, cur),
		)
	}
	return nil
}
