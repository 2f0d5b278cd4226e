// Package main provides the in-flight claim sweeper. It periodically clears
// claims whose dispatch died without releasing, so records do not stay
// locked until the TTL backstop fires.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/cmd"
	"github.com/anunay-mishra-24/loanverify/pkg/log"
	"github.com/robfig/cron/v3"
	cli "github.com/urfave/cli/v3"
)

const defaultStaleSeconds = 600

func main() {
	logger := log.WithModule("sweeper")

	command := &cli.Command{
		Name:  "loanverify-sweeper",
		Usage: "Sweep stale in-flight verification claims",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "redis-url",
				Usage:    "Redis URL holding the in-flight claims",
				Required: true,
				Sources:  cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "sweep-schedule",
				Usage:   "Cron schedule for sweep runs",
				Value:   "*/5 * * * *",
				Sources: cli.EnvVars("SWEEP_SCHEDULE"),
			},
			&cli.IntFlag{
				Name:    "stale-after-seconds",
				Usage:   "Age at which an unreleased claim is considered stale",
				Value:   defaultStaleSeconds,
				Sources: cli.EnvVars("STALE_AFTER_SECONDS"),
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

			staleAfter := time.Duration(command.Int("stale-after-seconds")) * time.Second

			tracker, err := cmd.NewTracker(command.String("redis-url"), staleAfter, logger)
			if err != nil {
				return err
			}

			scheduler := cron.New()

			_, err = scheduler.AddFunc(command.String("sweep-schedule"), func() {
				swept, err := tracker.Sweep(ctx, staleAfter)
				if err != nil {
					logger.ErrorContext(ctx, "Sweep run failed", "error", err)

					return
				}

				logger.InfoContext(ctx, "Sweep run completed", "swept", swept)
			})
			if err != nil {
				return err
			}

			logger.InfoContext(ctx, "Starting in-flight sweeper",
				"schedule", command.String("sweep-schedule"),
				"stale_after", staleAfter,
			)
			scheduler.Start()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop

			logger.InfoContext(ctx, "Stopping in-flight sweeper")
			<-scheduler.Stop().Done()

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
