package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
	"github.com/anunay-mishra-24/loanverify/pkg/registry"
)

// reactFunc applies outcome reactions; the coordinator shares the
// dispatcher's implementation so follow-up outcomes notify and reload the
// same way first-call outcomes do.
type reactFunc func(ctx context.Context, req models.ActionRequest, outcome models.Outcome)

// PollingCoordinator implements the trigger-wait-recheck pattern for
// delayed-result integrations: one timed wait, one follow-up call, done.
// The wait duration is an external business contract with the third party,
// so this deliberately stays single-shot rather than a retry loop.
type PollingCoordinator struct {
	registry *registry.Registry
	invoker  protocol.Invoker
	react    reactFunc
	logger   *slog.Logger
}

func newPollingCoordinator(reg *registry.Registry, invoker protocol.Invoker, react reactFunc, logger *slog.Logger) *PollingCoordinator {
	return &PollingCoordinator{
		registry: reg,
		invoker:  invoker,
		react:    react,
		logger:   logger.With("module", "polling_coordinator"),
	}
}

// Schedule queues the single follow-up check. The wait is not cancellable:
// the remote state change must be recorded server-side even if the
// originating UI session is torn down, so the follow-up runs detached from
// the request context. release is called once the follow-up concludes,
// ending the single-flight hold.
func (p *PollingCoordinator) Schedule(ctx context.Context, task models.PollingTask, release func()) {
	logger := p.logger.With(
		"record_id", task.Request.RecordID,
		"integration", task.Request.Integration,
		"follow_up", task.FollowUpIntegration,
		"wait", task.Wait,
	)
	logger.InfoContext(ctx, "Scheduled delayed-result recheck")

	detached := context.WithoutCancel(ctx)

	go func() {
		defer release()

		timer := time.NewTimer(task.Wait)
		defer timer.Stop()
		<-timer.C

		p.runFollowUp(detached, task, logger)
	}()
}

func (p *PollingCoordinator) runFollowUp(ctx context.Context, task models.PollingTask, logger *slog.Logger) {
	followUp := models.ActionRequest{
		RecordID:    task.Request.RecordID,
		Integration: task.FollowUpIntegration,
		Action:      task.Request.Action,
		Payload:     task.Request.Payload,
	}

	handler := p.registry.Resolve(task.FollowUpIntegration)

	var outcome models.Outcome

	raw, err := p.invoker.Invoke(ctx, task.FollowUpIntegration, task.Request.Payload)
	if err != nil {
		logger.ErrorContext(ctx, "Delayed-result follow-up call failed", "error", err)

		outcome = models.RemoteFailure(err.Error())
	} else {
		outcome = handler.Integration.Interpret(raw)
	}

	// The follow-up outcome is terminal regardless of value; there is no
	// second recheck.
	p.react(ctx, followUp, outcome)
}
