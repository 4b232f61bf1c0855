package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/srgjo27/ticketing_client/internal/adapter/credentials"
	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/format"
	"github.com/srgjo27/ticketing_client/internal/core/services"
)

const progressInterval = 10 * time.Second

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := a.flags("checkout")
	orderID := fs.String("order", "", "order id")
	answers := fs.String("answers", "{}", "answers to the event questions, as JSON")
	name := fs.String("name", "", "recipient full name")
	phone := fs.String("phone", "", "recipient phone number")
	email := fs.String("email", "", "recipient email")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !json.Valid([]byte(*answers)) {
		return fmt.Errorf("%w: -answers must be valid JSON", errUsage)
	}

	session, stop := a.newSession(ctx)
	defer stop()

	in := services.CheckoutInput{
		Answers:   json.RawMessage(*answers),
		Recipient: domain.Recipient{FullName: *name, Phone: *phone, Email: *email},
	}
	return a.runSession(ctx, session, func(ctx context.Context) error {
		return session.Run(ctx, *orderID, in)
	})
}

func (a *app) pay(ctx context.Context, args []string) error {
	fs := a.flags("pay")
	orderID := fs.String("order", "", "order id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, stop := a.newSession(ctx)
	defer stop()

	return a.runSession(ctx, session, func(ctx context.Context) error {
		return session.Pay(ctx, *orderID)
	})
}

// runSession runs flow next to the status server and the progress printer.
// Only flow decides the outcome: a status server that cannot start is logged
// and the checkout carries on.
func (a *app) runSession(ctx context.Context, session *services.CheckoutSession, flow func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	flowCtx, cancelFlow := context.WithCancel(gctx)
	defer cancelFlow()

	g.Go(func() error {
		defer cancelFlow()
		return flow(flowCtx)
	})
	g.Go(func() error {
		if err := a.serveStatus(flowCtx, session); err != nil {
			a.logger.Warn("status server unavailable, continuing without it", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		a.printProgress(flowCtx, session)
		return nil
	})

	return g.Wait()
}

func (a *app) printProgress(ctx context.Context, session *services.CheckoutSession) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	qrShown := false
	for {
		snap := session.Poller().Snapshot()
		if !qrShown && snap.QRCodeURL != "" {
			fmt.Fprintf(a.out, "VNPay QR: %s\n", snap.QRCodeURL)
			qrShown = true
		}
		if cd := session.Countdown(); cd != nil {
			fmt.Fprintf(a.out, "[%s] %s %s\n", cd.Severity(), format.Clock(cd.Remaining()), snap.State)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *app) back(ctx context.Context, args []string) error {
	fs := a.flags("back")
	orderID := fs.String("order", "", "order id")
	eventID := fs.String("event", "", "event id to return to")
	if err := fs.Parse(args); err != nil {
		return err
	}

	checkout := services.NewCheckoutService(a.client, a.client, a.nav, a.logger)
	if *eventID == "" && *orderID != "" {
		if order, err := checkout.LoadOrder(ctx, *orderID); err == nil {
			*eventID = order.EventID
		}
	}
	checkout.Back(ctx, *orderID, *eventID)
	return nil
}

func (a *app) wishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: wishlist needs a subcommand", errUsage)
	}
	svc := services.NewWishlistService(a.client, a.nav, a.logger)
	sub, args := args[0], args[1:]

	fs := a.flags("wishlist " + sub)
	id := fs.String("id", "", "wishlist item id")
	ids := fs.String("ids", "", "comma separated wishlist item ids")
	eventID := fs.String("event", "", "event id")
	ticketType := fs.String("ticket-type", "", "ticket type id")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch sub {
	case "list":
		items, err := svc.Refresh(ctx)
		if err != nil {
			return err
		}
		a.printWishlist(items)
		all := make([]string, 0, len(items))
		for _, it := range items {
			all = append(all, it.ID)
		}
		fmt.Fprintf(a.out, "total: %s\n", a.fmt.Currency(svc.Total(all)))
		return nil
	case "add":
		item, err := svc.Add(ctx, domain.NewWishlistItem{EventID: *eventID, TicketTypeID: *ticketType, Quantity: *qty})
		if err != nil {
			return err
		}
		a.printWishlist([]domain.WishlistItem{*item})
		return nil
	case "update":
		item, err := svc.UpdateQuantity(ctx, *id, *qty)
		if err != nil {
			return err
		}
		a.printWishlist([]domain.WishlistItem{*item})
		return nil
	case "remove":
		return svc.Remove(ctx, *id)
	case "bulk-remove":
		return svc.BulkRemove(ctx, strings.Split(*ids, ","))
	case "checkout":
		handoff, err := svc.Checkout(ctx, strings.Split(*ids, ","))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "draft order: %s\n", handoff.OrderDraftID)
		return nil
	}
	return fmt.Errorf("%w: unknown wishlist subcommand %q", errUsage, sub)
}

func (a *app) printWishlist(items []domain.WishlistItem) {
	for _, it := range items {
		fmt.Fprintf(a.out, "%-8s %-24s %-16s x%-3d %14s  %s\n",
			it.ID, it.EventName, it.TicketTypeName, it.Quantity,
			a.fmt.Currency(int64(it.Quantity)*it.UnitPrice), a.fmt.Date(it.AddedAt))
	}
}

func (a *app) suggest(ctx context.Context, args []string) error {
	fs := a.flags("suggest")
	prompt := fs.String("prompt", "", "what you are looking for")
	limit := fs.Int("limit", 5, "maximum number of suggestions")
	if err := fs.Parse(args); err != nil {
		return err
	}

	out, err := services.NewSuggestionService(a.client).Suggest(ctx, *prompt, *limit)
	if err != nil {
		return err
	}
	for i, s := range out {
		fmt.Fprintf(a.out, "%d. %s (%s) %.2f\n   %s\n", i+1, s.Title, s.EventID, s.Score, s.Reason)
	}
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	token := fs.String("token", "", "bearer token")
	logout := fs.Bool("logout", false, "remove the stored token")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if a.tokens == nil {
		return fmt.Errorf("%w: login needs REDIS_ADDR", errUsage)
	}

	if *logout {
		return a.tokens.Clear(ctx)
	}
	if *token == "" {
		return fmt.Errorf("%w: -token is required", errUsage)
	}
	return a.tokens.Save(ctx, *token, credentials.TTL(*token, time.Now()))
}

func (a *app) sweep(ctx context.Context, args []string) error {
	fs := a.flags("sweep")
	once := fs.Bool("once", false, "sweep one batch and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	repo, err := a.journal(ctx)
	if err != nil {
		return err
	}
	if repo == nil {
		return fmt.Errorf("%w: sweep needs DB_HOST", errUsage)
	}

	sweeper := services.NewSessionSweeper(repo, a.client, a.cfg.SweepInterval, a.logger)
	if *once {
		n, err := sweeper.Sweep(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "swept %d payment sessions\n", n)
		return nil
	}

	sweeper.RunBackgroundCleanup(ctx)
	return nil
}
