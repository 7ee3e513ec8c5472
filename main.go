// Package main SwiftRide API.
//
// @title           SwiftRide API
// @version         1.0
// @description     Vehicle rental marketplace: listings, bookings, payments, branches and finance reporting.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"swiftride/config"
	xenditrepo "swiftride/repository/xendit"
	"swiftride/util/cache"
	"swiftride/util/database"
	"swiftride/util/events"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := rootCmd(log).ExecuteContext(context.Background()); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func rootCmd(log *slog.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "swiftride",
		Short:         "SwiftRide vehicle rental API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), log)
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), log)
			},
		},
		migrateCmd(log),
		paymentsCmd(log),
		usersCmd(log),
	)
	return root
}

// infra holds the shared backends opened for a command.
type infra struct {
	cfg     config.App
	db      *database.DB
	cache   cache.Cache
	events  events.Publisher
	gateway xenditrepo.Repo
	closers []func() error
}

func open(ctx context.Context, log *slog.Logger) (*infra, error) {
	cfg := config.Load()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		return nil, err
	}
	in := &infra{cfg: cfg, db: db, cache: cache.Noop{}, events: events.Noop{}}
	in.closers = append(in.closers, func() error { db.Close(); return nil })

	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, "swiftride:")
		if err != nil {
			log.Warn("redis unavailable, finance cache disabled", "err", err)
		} else {
			in.cache = rc
			in.closers = append(in.closers, rc.Close)
		}
	}

	if cfg.AMQPURL != "" {
		rb, err := events.NewRabbit(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Warn("rabbitmq unavailable, events disabled", "err", err)
		} else {
			in.events = rb
			in.closers = append(in.closers, rb.Close)
		}
	}

	if cfg.PaymentAPIKey != "" {
		in.gateway = xenditrepo.NewHTTP(cfg.PaymentAPIURL, cfg.PaymentAPIKey, cfg.PaymentCallbackToken)
		if cfg.PaymentCallbackToken == "" {
			log.Warn("PAYMENT_CALLBACK_TOKEN not set, payment webhooks will be rejected")
		}
	} else {
		log.Warn("PAYMENT_API_KEY not set, bookings will not get payment links")
	}
	return in, nil
}

func (in *infra) Close() {
	for i := len(in.closers) - 1; i >= 0; i-- {
		_ = in.closers[i]()
	}
}
