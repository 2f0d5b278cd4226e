package approval

import (
	"errors"
	"testing"

	"github.com/anunay-mishra-24/loanverify/pkg/log"
	"github.com/anunay-mishra-24/loanverify/pkg/mocks"
	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, *mocks.MockManagerChainResolver, *mocks.MockDecisionSubmitter) {
	t.Helper()

	chain := &mocks.MockManagerChainResolver{}
	submitter := &mocks.MockDecisionSubmitter{}

	return NewResolver(chain, submitter, log.WithModule("test")), chain, submitter
}

func pendingCandidate(id, authority string) models.ApprovalCandidate {
	return models.ApprovalCandidate{
		ID:                   id,
		ApprovingAuthorities: []string{authority},
		Decision:             models.DecisionPending,
		HasMitigant:          true,
	}
}

func TestAuthorize_SubmitsFullEligibleSet(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	chain.On("ResolveManagerChain", mock.Anything, "owner-1").Return([]string{"mgr-1", "user-1"}, nil)
	submitter.On("SubmitDecision", mock.Anything, []string{"dev-1", "dev-2"}, mock.Anything).Return(nil)

	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection: []models.ApprovalCandidate{
			pendingCandidate("dev-1", "officer"),
			pendingCandidate("dev-2", "branch manager"),
		},
		Role:          RoleAreaManager,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionApproved,
		UserID:        "user-1",
		RecordOwnerID: "owner-1",
		Meta:          models.DecisionMeta{ActorID: "user-1"},
	})

	require.NoError(t, err)
	assert.False(t, result.Rejected())
	assert.Equal(t, []string{"dev-1", "dev-2"}, result.EligibleIDs)
	submitter.AssertNumberOfCalls(t, "SubmitDecision", 1)
}

func TestAuthorize_AllOrNothing(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	// One candidate requires a higher authority than the caller holds. The
	// whole batch must be refused; the otherwise-eligible item never reaches
	// the submitter.
	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection: []models.ApprovalCandidate{
			pendingCandidate("dev-1", "officer"),
			pendingCandidate("dev-2", "zonal manager"),
		},
		Role:          RoleBranchManager,
		Action:        ActionRecommend,
		Decision:      models.DecisionApproved,
		UserID:        "user-1",
		RecordOwnerID: "owner-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ReasonNotAllAuthorized, result.RejectedReason)
	chain.AssertNotCalled(t, "ResolveManagerChain")
	submitter.AssertNotCalled(t, "SubmitDecision")
}

func TestAuthorize_LegacyLabelsResolveByRank(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection: []models.ApprovalCandidate{
			pendingCandidate("dev-1", "Branch Credit Manager"),
			pendingCandidate("dev-2", "Zonal Manager"),
		},
		Role:          RoleAreaManager,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionApproved,
		UserID:        "user-1",
		RecordOwnerID: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ReasonNotAllAuthorized, result.RejectedReason)
	chain.AssertNotCalled(t, "ResolveManagerChain")
	submitter.AssertNotCalled(t, "SubmitDecision")
}

func TestAuthorize_AlreadyDecided(t *testing.T) {
	resolver, _, submitter := newTestResolver(t)

	decided := pendingCandidate("dev-2", "officer")
	decided.Decision = models.DecisionApproved

	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection: []models.ApprovalCandidate{
			pendingCandidate("dev-1", "officer"),
			decided,
		},
		Role:          RoleHead,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionRejected,
		UserID:        "user-1",
		RecordOwnerID: "owner-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ReasonAlreadyDecided, result.RejectedReason)
	submitter.AssertNotCalled(t, "SubmitDecision")
}

func TestAuthorize_MitigantRequiredForSubmitOnly(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	unmitigated := pendingCandidate("dev-1", "officer")
	unmitigated.HasMitigant = false

	// submit_decision insists on mitigants.
	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection:     []models.ApprovalCandidate{unmitigated},
		Role:          RoleHead,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionApproved,
		UserID:        "user-1",
		RecordOwnerID: "owner-1",
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonMitigantsRequired, result.RejectedReason)

	// recommend does not.
	chain.On("ResolveManagerChain", mock.Anything, "owner-1").Return([]string{"user-1"}, nil)
	submitter.On("SubmitDecision", mock.Anything, []string{"dev-1"}, mock.Anything).Return(nil)

	result, err = resolver.Authorize(t.Context(), BulkRequest{
		Selection:     []models.ApprovalCandidate{unmitigated},
		Role:          RoleHead,
		Action:        ActionRecommend,
		Decision:      models.DecisionApproved,
		UserID:        "user-1",
		RecordOwnerID: "owner-1",
	})
	require.NoError(t, err)
	assert.False(t, result.Rejected())
}

func TestAuthorize_OwnershipViaManagerChain(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	chain.On("ResolveManagerChain", mock.Anything, "owner-1").Return([]string{"mgr-1", "mgr-2"}, nil)

	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection:     []models.ApprovalCandidate{pendingCandidate("dev-1", "officer")},
		Role:          RoleHead,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionApproved,
		UserID:        "stranger",
		RecordOwnerID: "owner-1",
	})

	require.NoError(t, err)
	assert.Equal(t, ReasonNotOwner, result.RejectedReason)
	submitter.AssertNotCalled(t, "SubmitDecision")
}

func TestAuthorize_OwnerSkipsChainLookup(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	submitter.On("SubmitDecision", mock.Anything, []string{"dev-1"}, mock.Anything).Return(nil)

	result, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection:     []models.ApprovalCandidate{pendingCandidate("dev-1", "officer")},
		Role:          RoleHead,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionApproved,
		UserID:        "owner-1",
		RecordOwnerID: "owner-1",
	})

	require.NoError(t, err)
	assert.False(t, result.Rejected())
	chain.AssertNotCalled(t, "ResolveManagerChain")
}

func TestAuthorize_ChainLookupFailure(t *testing.T) {
	resolver, chain, submitter := newTestResolver(t)

	chain.On("ResolveManagerChain", mock.Anything, "owner-1").Return(nil, errors.New("org service down"))

	_, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection:     []models.ApprovalCandidate{pendingCandidate("dev-1", "officer")},
		Role:          RoleHead,
		Action:        ActionRecommend,
		Decision:      models.DecisionApproved,
		UserID:        "user-1",
		RecordOwnerID: "owner-1",
	})

	require.Error(t, err)
	submitter.AssertNotCalled(t, "SubmitDecision")
}

func TestAuthorize_SubmissionFailureLeavesNoResult(t *testing.T) {
	resolver, _, submitter := newTestResolver(t)

	submitter.On("SubmitDecision", mock.Anything, []string{"dev-1"}, mock.Anything).Return(errors.New("remote rejected"))

	_, err := resolver.Authorize(t.Context(), BulkRequest{
		Selection:     []models.ApprovalCandidate{pendingCandidate("dev-1", "officer")},
		Role:          RoleHead,
		Action:        ActionSubmitDecision,
		Decision:      models.DecisionApproved,
		UserID:        "owner-1",
		RecordOwnerID: "owner-1",
	})

	require.Error(t, err)
}
