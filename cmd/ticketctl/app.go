package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/srgjo27/ticketing_client/internal/adapter/credentials"
	"github.com/srgjo27/ticketing_client/internal/adapter/events"
	"github.com/srgjo27/ticketing_client/internal/adapter/handler"
	"github.com/srgjo27/ticketing_client/internal/adapter/repository/postgres"
	"github.com/srgjo27/ticketing_client/internal/adapter/restclient"
	"github.com/srgjo27/ticketing_client/internal/core/domain"
	"github.com/srgjo27/ticketing_client/internal/core/format"
	"github.com/srgjo27/ticketing_client/internal/core/ports"
	"github.com/srgjo27/ticketing_client/internal/core/services"
	"github.com/srgjo27/ticketing_client/internal/platform/config"
	"github.com/srgjo27/ticketing_client/internal/platform/database"
)

var errUsage = errors.New("invalid usage")

type app struct {
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer
	fmt    *format.Formatter
	nav    *consoleNavigator

	redis  *redis.Client
	tokens *credentials.RedisStore
	client *restclient.Client

	closers []func()
}

func newApp(cfg config.Config, logger *zap.Logger, out io.Writer) *app {
	a := &app{
		cfg:    cfg,
		logger: logger,
		out:    out,
		fmt:    format.New(cfg.Lang),
		nav:    &consoleNavigator{out: out, logger: logger},
	}

	var providers []ports.CredentialProvider
	if cfg.RedisAddr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		a.tokens = credentials.NewRedisStore(a.redis, cfg.TokenKey, logger)
		providers = append(providers, a.tokens)
		a.closers = append(a.closers, func() { _ = a.redis.Close() })
	}
	providers = append(providers, credentials.NewStatic(cfg.APIToken))

	a.client = restclient.NewClient(cfg.APIBaseURL,
		credentials.NewChain(logger, providers...),
		logger,
		restclient.WithTimeout(cfg.HTTPTimeout),
	)
	return a
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "checkout":
		return a.checkout(ctx, args)
	case "pay":
		return a.pay(ctx, args)
	case "back":
		return a.back(ctx, args)
	case "wishlist":
		return a.wishlist(ctx, args)
	case "suggest":
		return a.suggest(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "sweep":
		return a.sweep(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// report prints err for the user. Authorization errors add a login hint.
func (a *app) report(err error) {
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(a.out, "%v\n\n%s", err, usage)
		return
	}
	a.logger.Debug("command failed", zap.Error(err))
	fmt.Fprintln(a.out, a.fmt.UserMessage(err))
	if domain.IsAuthError(err) {
		fmt.Fprintln(a.out, "ticketctl login -token <token>")
	}
}

func (a *app) pollerConfig() services.PollerConfig {
	cfg := services.DefaultPollerConfig()
	cfg.Interval = a.cfg.PollInterval
	cfg.MaxAttempts = a.cfg.PollMaxAttempts
	cfg.SuccessDelay = a.cfg.SuccessDelay
	cfg.SessionTTL = a.cfg.ReservationTTL
	return cfg
}

// journal opens the payment session journal. It returns nil when no
// database is configured.
func (a *app) journal(ctx context.Context) (*postgres.SessionRepository, error) {
	if a.cfg.DB.DSN() == "" {
		return nil, nil
	}
	db, err := database.NewPostgresDB(ctx, a.cfg.DB, a.logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })

	repo := postgres.NewSessionRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// publisher starts the Kafka producer when brokers are configured. The
// returned stop func flushes buffered events.
func (a *app) publisher() (ports.EventPublisher, func()) {
	if len(a.cfg.KafkaBrokers) == 0 {
		return events.Nop{}, func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := events.NewProducer(a.cfg.KafkaBrokers, a.cfg.KafkaTopic, 64, a.logger)
	p.Start(ctx)
	return p, func() {
		cancel()
		p.Wait()
	}
}

// newSession wires a checkout session with the optional journal and event
// publisher.
func (a *app) newSession(ctx context.Context) (*services.CheckoutSession, func()) {
	opts := []services.PollerOption{}

	repo, err := a.journal(ctx)
	if err != nil {
		a.logger.Warn("payment journal unavailable, continuing without it", zap.Error(err))
	} else if repo != nil {
		opts = append(opts, services.WithSessionRepository(repo))
	}

	pub, stop := a.publisher()
	opts = append(opts, services.WithEventPublisher(pub))

	poller := services.NewPaymentPoller(a.client, a.client, a.nav, a.pollerConfig(), a.logger, opts...)
	checkout := services.NewCheckoutService(a.client, a.client, a.nav, a.logger)
	return services.NewCheckoutSession(checkout, poller, a.cfg.ReservationTTL, a.logger), stop
}

// serveStatus runs the status server until ctx is done. Without STATUS_ADDR
// it returns immediately.
func (a *app) serveStatus(ctx context.Context, session *services.CheckoutSession) error {
	if a.cfg.StatusAddr == "" {
		return nil
	}

	srv := &http.Server{
		Addr:         a.cfg.StatusAddr,
		Handler:      handler.NewSessionHandler(session).Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			a.logger.Warn("status server forced to shutdown", zap.Error(err))
		}
	}()

	a.logger.Info("status server starting", zap.String("addr", a.cfg.StatusAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

type consoleNavigator struct {
	out    io.Writer
	logger *zap.Logger
}

func (n *consoleNavigator) Navigate(path string) {
	n.logger.Info("navigate", zap.String("path", path))
	fmt.Fprintf(n.out, "-> %s\n", path)
}
