// Package mocks provides testify mock implementations of the dispatch and
// approval collaborator interfaces.
package mocks

import (
	"context"

	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/protocol"
	"github.com/stretchr/testify/mock"
)

// MockInvoker is a mock implementation of protocol.Invoker.
type MockInvoker struct {
	mock.Mock
}

func (m *MockInvoker) Invoke(ctx context.Context, integration string, payload map[string]any) ([]byte, error) {
	args := m.Called(ctx, integration, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockNotifier is a mock implementation of protocol.Notifier.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, title, message string, severity protocol.Severity) {
	m.Called(ctx, title, message, severity)
}

// MockListReloader is a mock implementation of protocol.ListReloader.
type MockListReloader struct {
	mock.Mock
}

func (m *MockListReloader) Reload(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)

	return args.Error(0)
}

// MockMissingFieldsDialog is a mock implementation of protocol.MissingFieldsDialog.
type MockMissingFieldsDialog struct {
	mock.Mock
}

func (m *MockMissingFieldsDialog) OpenMissingFields(ctx context.Context, recordID string, fields []string) error {
	args := m.Called(ctx, recordID, fields)

	return args.Error(0)
}

// MockSecondaryInput is a mock implementation of protocol.SecondaryInput.
type MockSecondaryInput struct {
	mock.Mock
}

func (m *MockSecondaryInput) OpenSecondaryInput(ctx context.Context, applicantID string, applicant map[string]any) error {
	args := m.Called(ctx, applicantID, applicant)

	return args.Error(0)
}

// MockApplicantSource is a mock implementation of protocol.ApplicantSource.
type MockApplicantSource struct {
	mock.Mock
}

func (m *MockApplicantSource) DependentApplicant(ctx context.Context, applicantID string) (map[string]any, error) {
	args := m.Called(ctx, applicantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(map[string]any), args.Error(1)
}

// MockManagerChainResolver is a mock implementation of protocol.ManagerChainResolver.
type MockManagerChainResolver struct {
	mock.Mock
}

func (m *MockManagerChainResolver) ResolveManagerChain(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]string), args.Error(1)
}

// MockDecisionSubmitter is a mock implementation of protocol.DecisionSubmitter.
type MockDecisionSubmitter struct {
	mock.Mock
}

func (m *MockDecisionSubmitter) SubmitDecision(ctx context.Context, ids []string, meta models.DecisionMeta) error {
	args := m.Called(ctx, ids, meta)

	return args.Error(0)
}

// MockRecordNavigator is a mock implementation of protocol.RecordNavigator.
type MockRecordNavigator struct {
	mock.Mock
}

func (m *MockRecordNavigator) OpenDetail(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)

	return args.Error(0)
}

func (m *MockRecordNavigator) OpenEdit(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)

	return args.Error(0)
}

func (m *MockRecordNavigator) OpenExternalTool(ctx context.Context, recordID string, payload map[string]any) error {
	args := m.Called(ctx, recordID, payload)

	return args.Error(0)
}
