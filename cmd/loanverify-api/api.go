// Package main provides the loanverify API server implementation.
package main

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/approval"
	"github.com/anunay-mishra-24/loanverify/pkg/dispatch"
	"github.com/anunay-mishra-24/loanverify/pkg/eventbus"
	"github.com/anunay-mishra-24/loanverify/pkg/gateway"
	"github.com/anunay-mishra-24/loanverify/pkg/inflight"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/anunay-mishra-24/loanverify/pkg/registry"
	"github.com/anunay-mishra-24/loanverify/pkg/services"
	"github.com/anunay-mishra-24/loanverify/pkg/uibridge"
	"github.com/anunay-mishra-24/loanverify/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	tracker     inflight.Tracker
	gatewayURL  string
	recheckWait time.Duration
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	tracker inflight.Tracker,
	gatewayURL string,
	recheckWait time.Duration,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    registry,
		eventBus:    eventBus,
		tracker:     tracker,
		gatewayURL:  gatewayURL,
		recheckWait: recheckWait,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	client := gateway.NewClient(a.gatewayURL, a.logger)
	bridge := uibridge.NewBridge(a.eventBus, a.logger)

	dispatcher := dispatch.NewDispatcher(dispatch.Dependencies{
		Registry:       a.registry,
		Invoker:        client,
		Notifier:       bridge,
		Reloader:       bridge,
		MissingFields:  bridge,
		SecondaryInput: bridge,
		Applicants:     client,
		Navigator:      bridge,
		Records:        a.persistence.RecordRepository(),
		Verifications:  a.persistence.VerificationRepository(),
		Tracker:        a.tracker,
		EventBus:       a.eventBus,
	}, a.recheckWait, a.logger)

	resolver := approval.NewResolver(client, client, a.logger)
	deviationService := services.NewDeviation(a.persistence, resolver, a.eventBus, a.logger)
	verificationService := services.NewVerification(a.persistence)

	handlers := web.NewAPIHandlers(dispatcher, deviationService, verificationService, a.validate, a.persistence)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Loanverify API")
	})

	app.Post("/actions", handlers.PostDispatch)

	d := app.Group("/deviations")
	d.Get("/", handlers.GetDeviations)
	d.Post("/", handlers.PostDeviation)
	d.Post("/decisions", handlers.PostBulkDecision)
	d.Get("/:id", handlers.GetDeviation)

	app.Get("/records/:id/verifications", handlers.GetVerificationHistory)

	app.Get("/health", handlers.GetHealth)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
