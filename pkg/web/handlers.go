// Package web provides HTTP handlers and REST API endpoints for the
// verification dispatch and deviation approval APIs.
package web

import (
	"github.com/anunay-mishra-24/loanverify/pkg/approval"
	"github.com/anunay-mishra-24/loanverify/pkg/dispatch"
	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/anunay-mishra-24/loanverify/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type APIHandlers struct {
	dispatcher          *dispatch.Dispatcher
	deviationService    *services.Deviation
	verificationService *services.Verification
	validator           *validator.Validate
	persistence         persistence.Persistence
}

func NewAPIHandlers(
	dispatcher *dispatch.Dispatcher,
	deviationService *services.Deviation,
	verificationService *services.Verification,
	validator *validator.Validate,
	persistence persistence.Persistence,
) *APIHandlers {
	return &APIHandlers{
		dispatcher:          dispatcher,
		deviationService:    deviationService,
		verificationService: verificationService,
		validator:           validator,
		persistence:         persistence,
	}
}

// PostDispatch consumes one row action. Delayed-result integrations answer
// 202 with recheck_scheduled set; everything else answers 200 with the
// terminal outcome.
func (h *APIHandlers) PostDispatch(c fiber.Ctx) error {
	var req DispatchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	session := models.NewSession()
	for key, value := range req.Session {
		session.Set(key, value)
	}

	result, err := h.dispatcher.Dispatch(c.Context(), req.ActionRequest(), req.UserContext(), session)
	if err != nil {
		return handleServiceError(c, err)
	}

	if result.RecheckScheduled {
		return c.Status(fiber.StatusAccepted).JSON(result)
	}

	return c.JSON(result)
}

// PostBulkDecision applies one decision to a selection of deviations. An
// authorization rejection answers 422 with the surfaced reason.
func (h *APIHandlers) PostBulkDecision(c fiber.Ctx) error {
	var body BulkDecisionBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	role, err := approval.ParseRole(body.Role)
	if err != nil {
		return badRequest(c, "Unknown role: "+body.Role)
	}

	result, err := h.deviationService.Decide(c.Context(), services.BulkDecisionRequest{
		DeviationIDs:  body.DeviationIDs,
		Decision:      models.Decision(body.Decision),
		Action:        approval.ActionKind(body.Action),
		Role:          role,
		UserID:        body.UserID,
		RecordOwnerID: body.RecordOwnerID,
		Remark:        body.Remark,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(BulkDecisionResponse{
		EligibleIDs: result.EligibleIDs,
		Decision:    body.Decision,
	})
}

// PostDeviation registers one deviation record so it can later be decided
// in bulk. Records always enter pending.
func (h *APIHandlers) PostDeviation(c fiber.Ctx) error {
	var body CreateDeviationBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	record, err := h.deviationService.Create(c.Context(), body.Record())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

// GetDeviation returns one deviation record by id.
func (h *APIHandlers) GetDeviation(c fiber.Ctx) error {
	record, err := h.deviationService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(record)
}

// GetDeviations lists deviation records, optionally narrowed by record id
// and decision state.
func (h *APIHandlers) GetDeviations(c fiber.Ctx) error {
	filter := persistence.DeviationFilter{
		RecordID: c.Query("record_id"),
	}

	if decisionStr := c.Query("decision"); decisionStr != "" {
		decision := models.Decision(decisionStr)
		if decision != models.DecisionPending && decision != models.DecisionApproved && decision != models.DecisionRejected {
			return badRequest(c, "Invalid decision filter: "+decisionStr)
		}

		filter.Decision = &decision
	}

	deviations, err := h.deviationService.List(c.Context(), filter)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"deviations": deviations,
		"count":      len(deviations),
	})
}

// GetVerificationHistory returns the terminal verification outcomes
// recorded for a record, newest first.
func (h *APIHandlers) GetVerificationHistory(c fiber.Ctx) error {
	recordID := c.Params("id")
	if recordID == "" {
		return badRequest(c, "Record ID is required")
	}

	results, err := h.verificationService.History(c.Context(), recordID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"record_id": recordID,
		"results":   results,
	})
}

func (h *APIHandlers) GetHealth(c fiber.Ctx) error {
	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}
