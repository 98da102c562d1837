// Command quicksplit previews, submits and settles shared expenses.
//
// Usage:
//
//	quicksplit split -title "Dinner" -amount 1500 -with Rahul,Priya
//	quicksplit split -title "Rent" -amount 30000 -strategy percentage -mine 50 -with Rahul=30,Priya=20 -submit
//	quicksplit balances -f splits.json
//
// Environment variables:
//
//	QUICKSPLIT_USER_ID, QUICKSPLIT_USER_NAME: the signed-in user (required for -submit)
//	QUICKSPLIT_CURRENCY: default currency (default: INR)
//	LOG_LEVEL: debug, info, warn, error (default: info)
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/quicksplit/internal/config"
	"github.com/mmynk/quicksplit/internal/service"
	"github.com/mmynk/quicksplit/internal/session"
	"github.com/mmynk/quicksplit/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	logging.SetupWithLevel(cfg.LogLevel)

	registry := prometheus.NewRegistry()
	svc := service.NewSplitService(service.LogNotifier{},
		service.WithCurrency(cfg.Currency),
		service.WithMetrics(service.NewMetrics(registry)),
	)

	ctx := context.Background()
	if s, ok := session.New(cfg.UserID, cfg.UserName); ok {
		ctx = session.NewContext(ctx, s)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&splitCmd{svc: svc, registry: registry, out: os.Stdout}, "splits")
	commander.Register(&balancesCmd{out: os.Stdout}, "splits")

	flag.Parse()
	os.Exit(int(commander.Execute(ctx)))
}
