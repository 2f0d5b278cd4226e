package main

import (
	"context"
	"os"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/cmd"
	"github.com/anunay-mishra-24/loanverify/pkg/log"
	"github.com/anunay-mishra-24/loanverify/pkg/otelhelper"
	cli "github.com/urfave/cli/v3"
)

const (
	defaultPort           = 9092
	defaultRecheckSeconds = 30
	defaultInflightTTL    = 300
)

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "loanverify-api",
		Usage:                 "Dispatch loan verification actions and resolve deviation approvals",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:     "gateway-url",
				Usage:    "Base URL of the verification gateway",
				Required: true,
				Sources:  cli.EnvVars("GATEWAY_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma-separated Kafka broker list (kafka event bus only)",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for the cross-instance in-flight tracker (empty keeps it in-process)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.IntFlag{
				Name:    "verification-recheck-seconds",
				Usage:   "Wait before the single delayed-result follow-up check",
				Value:   defaultRecheckSeconds,
				Sources: cli.EnvVars("VERIFICATION_RECHECK_SECONDS"),
			},
			&cli.IntFlag{
				Name:    "inflight-ttl-seconds",
				Usage:   "TTL backstop on in-flight claims",
				Value:   defaultInflightTTL,
				Sources: cli.EnvVars("INFLIGHT_TTL_SECONDS"),
			},
			&cli.BoolFlag{
				Name:    "enable-tracing",
				Usage:   "Export dispatch spans over OTLP",
				Sources: cli.EnvVars("ENABLE_TRACING"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   "text",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), command.String("log-format"))

			logger.InfoContext(ctx, "Initializing loanverify API")

			if command.Bool("enable-tracing") {
				if _, err := otelhelper.NewTracer(ctx, "loanverify-api"); err != nil {
					return err
				}
			}

			registry := cmd.NewRegistry(logger)

			persistence, err := cmd.NewPersistence(ctx, logger, command.String("database-url"))
			if err != nil {
				return err
			}

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), command.String("kafka-brokers"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			tracker, err := cmd.NewTracker(
				command.String("redis-url"),
				time.Duration(command.Int("inflight-ttl-seconds"))*time.Second,
				logger,
			)
			if err != nil {
				return err
			}

			api := NewAPI(
				logger,
				persistence,
				registry,
				eventBus,
				tracker,
				command.String("gateway-url"),
				time.Duration(command.Int("verification-recheck-seconds"))*time.Second,
			)

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
