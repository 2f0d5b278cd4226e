package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/approval"
	"github.com/anunay-mishra-24/loanverify/pkg/dispatch"
	"github.com/anunay-mishra-24/loanverify/pkg/inflight"
	"github.com/anunay-mishra-24/loanverify/pkg/integrations/litigation"
	"github.com/anunay-mishra-24/loanverify/pkg/log"
	mockpkg "github.com/anunay-mishra-24/loanverify/pkg/mocks"
	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence/file"
	"github.com/anunay-mishra-24/loanverify/pkg/registry"
	"github.com/anunay-mishra-24/loanverify/pkg/services"
	"github.com/anunay-mishra-24/loanverify/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app       *fiber.App
	invoker   *mockpkg.MockInvoker
	chain     *mockpkg.MockManagerChainResolver
	submitter *mockpkg.MockDecisionSubmitter
	store     *file.Persistence
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()

	logger := log.WithModule("test")
	store := file.NewPersistence(t.TempDir())

	reg := registry.NewRegistry(logger)
	require.NoError(t, reg.Register(registry.Registration{Factory: litigation.NewFactory()}))

	env := &testEnv{
		invoker:   &mockpkg.MockInvoker{},
		chain:     &mockpkg.MockManagerChainResolver{},
		submitter: &mockpkg.MockDecisionSubmitter{},
		store:     store,
	}

	notifier := &mockpkg.MockNotifier{}
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	reloader := &mockpkg.MockListReloader{}
	reloader.On("Reload", mock.Anything, mock.Anything).Return(nil)

	missingFields := &mockpkg.MockMissingFieldsDialog{}
	missingFields.On("OpenMissingFields", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	dispatcher := dispatch.NewDispatcher(dispatch.Dependencies{
		Registry:       reg,
		Invoker:        env.invoker,
		Notifier:       notifier,
		Reloader:       reloader,
		MissingFields:  missingFields,
		SecondaryInput: &mockpkg.MockSecondaryInput{},
		Applicants:     &mockpkg.MockApplicantSource{},
		Navigator:      &mockpkg.MockRecordNavigator{},
		Records:        store.RecordRepository(),
		Verifications:  store.VerificationRepository(),
		Tracker:        inflight.NewMemoryTracker(),
	}, time.Millisecond, logger)

	resolver := approval.NewResolver(env.chain, env.submitter, logger)
	deviationService := services.NewDeviation(store, resolver, nil, logger)
	verificationService := services.NewVerification(store)

	handlers := web.NewAPIHandlers(
		dispatcher,
		deviationService,
		verificationService,
		validator.New(validator.WithRequiredStructEnabled()),
		store,
	)

	app := fiber.New()
	app.Post("/actions", handlers.PostDispatch)
	app.Get("/deviations", handlers.GetDeviations)
	app.Post("/deviations", handlers.PostDeviation)
	app.Post("/deviations/decisions", handlers.PostBulkDecision)
	app.Get("/deviations/:id", handlers.GetDeviation)
	app.Get("/records/:id/verifications", handlers.GetVerificationHistory)
	app.Get("/health", handlers.GetHealth)

	env.app = app

	return env
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func dispatchBody() web.DispatchRequest {
	return web.DispatchRequest{
		RecordID:      "rec-1",
		Integration:   "litigation-check",
		Action:        "Litigation Check",
		Payload:       map[string]any{"applicantName": "R. Sharma"},
		UserID:        "user-1",
		IsRecordOwner: true,
	}
}

func TestPostDispatch_Success(t *testing.T) {
	env := setupTestApp(t)

	env.invoker.On("Invoke", mock.Anything, "litigation-check", mock.Anything).Return([]byte("Success"), nil)

	resp := postJSON(t, env.app, "/actions", dispatchBody())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result dispatch.Result

	decodeBody(t, resp, &result)
	assert.Equal(t, models.OutcomeSuccess, result.Outcome.Kind)
	assert.False(t, result.RecheckScheduled)
}

func TestPostDispatch_ValidatorRejectsMissingFields(t *testing.T) {
	env := setupTestApp(t)

	body := dispatchBody()
	body.RecordID = ""

	resp := postJSON(t, env.app, "/actions", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env.invoker.AssertNotCalled(t, "Invoke")
}

func TestPostDispatch_AccessDenied(t *testing.T) {
	env := setupTestApp(t)

	body := dispatchBody()
	body.IsRecordOwner = false

	resp := postJSON(t, env.app, "/actions", body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPostDispatch_RemoteFailureStillAnswers200(t *testing.T) {
	env := setupTestApp(t)

	env.invoker.On("Invoke", mock.Anything, "litigation-check", mock.Anything).Return([]byte("service down"), nil)

	resp := postJSON(t, env.app, "/actions", dispatchBody())
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result dispatch.Result

	decodeBody(t, resp, &result)
	assert.Equal(t, models.OutcomeRemoteFailure, result.Outcome.Kind)
	assert.Equal(t, "service down", result.Outcome.Message)
}

func saveDeviation(t *testing.T, env *testEnv, id string, decision models.Decision) {
	t.Helper()

	require.NoError(t, env.store.DeviationRepository().Save(t.Context(), &models.DeviationRecord{
		ID:                   id,
		RecordID:             "rec-1",
		ApprovingAuthorities: []string{"officer"},
		Decision:             decision,
		MitigantRef:          "mit-1",
	}))
}

func decisionBody(ids ...string) web.BulkDecisionBody {
	return web.BulkDecisionBody{
		DeviationIDs:  ids,
		Decision:      "approved",
		Action:        "submit_decision",
		Role:          "area_manager",
		UserID:        "user-1",
		RecordOwnerID: "user-1",
		Remark:        "within policy",
	}
}

func TestPostDeviation_CreatesPendingRecord(t *testing.T) {
	env := setupTestApp(t)

	resp := postJSON(t, env.app, "/deviations", web.CreateDeviationBody{
		RecordID:             "rec-1",
		Description:          "LTV above policy ceiling",
		ApprovingAuthorities: []string{"area manager"},
		MitigantRef:          "mit-1",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.DeviationRecord

	decodeBody(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.DecisionPending, created.Decision)

	req := httptest.NewRequest(http.MethodGet, "/deviations/"+created.ID, nil)

	fetched, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, fetched.StatusCode)

	var record models.DeviationRecord

	decodeBody(t, fetched, &record)
	assert.Equal(t, created.ID, record.ID)
	assert.Equal(t, "rec-1", record.RecordID)
}

func TestPostDeviation_ValidatorRejectsMissingAuthorities(t *testing.T) {
	env := setupTestApp(t)

	resp := postJSON(t, env.app, "/deviations", web.CreateDeviationBody{
		RecordID:    "rec-1",
		Description: "LTV above policy ceiling",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDeviation_Unknown(t *testing.T) {
	env := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/deviations/no-such", nil)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostBulkDecision_OverIngestedDeviation(t *testing.T) {
	env := setupTestApp(t)

	created := postJSON(t, env.app, "/deviations", web.CreateDeviationBody{
		RecordID:             "rec-1",
		Description:          "income documents expired",
		ApprovingAuthorities: []string{"officer"},
		MitigantRef:          "mit-7",
	})
	require.Equal(t, http.StatusCreated, created.StatusCode)

	var record models.DeviationRecord

	decodeBody(t, created, &record)

	env.submitter.On("SubmitDecision", mock.Anything, []string{record.ID}, mock.Anything).Return(nil)

	resp := postJSON(t, env.app, "/deviations/decisions", decisionBody(record.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.BulkDecisionResponse

	decodeBody(t, resp, &result)
	assert.Equal(t, []string{record.ID}, result.EligibleIDs)
}

func TestPostBulkDecision_Success(t *testing.T) {
	env := setupTestApp(t)
	saveDeviation(t, env, "dev-1", models.DecisionPending)

	env.submitter.On("SubmitDecision", mock.Anything, []string{"dev-1"}, mock.Anything).Return(nil)

	resp := postJSON(t, env.app, "/deviations/decisions", decisionBody("dev-1"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.BulkDecisionResponse

	decodeBody(t, resp, &result)
	assert.Equal(t, []string{"dev-1"}, result.EligibleIDs)

	// The local trace was updated too.
	record, err := env.store.DeviationRepository().GetByID(t.Context(), "dev-1")
	require.NoError(t, err)
	assert.Equal(t, models.DecisionApproved, record.Decision)
}

func TestPostBulkDecision_RejectionAnswers422(t *testing.T) {
	env := setupTestApp(t)
	saveDeviation(t, env, "dev-1", models.DecisionApproved)

	resp := postJSON(t, env.app, "/deviations/decisions", decisionBody("dev-1"))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	env.submitter.AssertNotCalled(t, "SubmitDecision")
}

func TestPostBulkDecision_UnknownRole(t *testing.T) {
	env := setupTestApp(t)

	body := decisionBody("dev-1")
	body.Role = "grand vizier"

	resp := postJSON(t, env.app, "/deviations/decisions", body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostBulkDecision_EmptySelection(t *testing.T) {
	env := setupTestApp(t)

	resp := postJSON(t, env.app, "/deviations/decisions", decisionBody())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetDeviations_Filter(t *testing.T) {
	env := setupTestApp(t)
	saveDeviation(t, env, "dev-1", models.DecisionPending)
	saveDeviation(t, env, "dev-2", models.DecisionApproved)

	req := httptest.NewRequest(http.MethodGet, "/deviations?decision=pending", nil)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Deviations []*models.DeviationRecord `json:"deviations"`
		Count      int                       `json:"count"`
	}

	decodeBody(t, resp, &body)
	assert.Equal(t, 1, body.Count)
	require.Len(t, body.Deviations, 1)
	assert.Equal(t, "dev-1", body.Deviations[0].ID)
}

func TestGetDeviations_InvalidDecisionFilter(t *testing.T) {
	env := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/deviations?decision=maybe", nil)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetVerificationHistory(t *testing.T) {
	env := setupTestApp(t)

	require.NoError(t, env.store.VerificationRepository().Save(t.Context(), &models.VerificationResult{
		ID:          "v-1",
		RecordID:    "rec-1",
		Integration: "litigation-check",
		Kind:        models.OutcomeSuccess,
		CreatedAt:   time.Now().UTC(),
	}))

	req := httptest.NewRequest(http.MethodGet, "/records/rec-1/verifications", nil)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		RecordID string                       `json:"record_id"`
		Results  []*models.VerificationResult `json:"results"`
	}

	decodeBody(t, resp, &body)
	assert.Equal(t, "rec-1", body.RecordID)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "v-1", body.Results[0].ID)
}

func TestGetHealth(t *testing.T) {
	env := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	resp, err := env.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
