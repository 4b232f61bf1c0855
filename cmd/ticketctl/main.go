package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/platform/config"
)

const usage = `usage: ticketctl <command> [flags]

commands:
  checkout   run order information, recipient and payment steps for an order
  pay        pay an order whose information steps are done
  back       leave the checkout and release the order
  wishlist   list|add|update|remove|bulk-remove|checkout
  suggest    ask for event suggestions
  login      store a bearer token in the shared token store
  sweep      cancel payment sessions abandoned by crashed clients
`

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.IsDev() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, logger, os.Stdout)
	defer a.Close()

	if err := a.dispatch(ctx, os.Args[1], os.Args[2:]); err != nil {
		a.report(err)
		return 1
	}
	return 0
}
