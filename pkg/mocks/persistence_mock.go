package mocks

import (
	"context"
	"time"

	"github.com/anunay-mishra-24/loanverify/pkg/inflight"
	"github.com/anunay-mishra-24/loanverify/pkg/models"
	"github.com/anunay-mishra-24/loanverify/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockDeviationRepository is a mock implementation of persistence.DeviationRepository.
type MockDeviationRepository struct {
	mock.Mock
}

func (m *MockDeviationRepository) Save(ctx context.Context, deviation *models.DeviationRecord) error {
	args := m.Called(ctx, deviation)

	return args.Error(0)
}

func (m *MockDeviationRepository) GetByID(ctx context.Context, id string) (*models.DeviationRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.DeviationRecord), args.Error(1)
}

func (m *MockDeviationRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.DeviationRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.DeviationRecord), args.Error(1)
}

func (m *MockDeviationRepository) List(ctx context.Context, filter persistence.DeviationFilter) ([]*models.DeviationRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.DeviationRecord), args.Error(1)
}

func (m *MockDeviationRepository) ApplyDecision(ctx context.Context, ids []string, decision models.Decision, meta models.DecisionMeta) error {
	args := m.Called(ctx, ids, decision, meta)

	return args.Error(0)
}

// MockVerificationRepository is a mock implementation of persistence.VerificationRepository.
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Save(ctx context.Context, result *models.VerificationResult) error {
	args := m.Called(ctx, result)

	return args.Error(0)
}

func (m *MockVerificationRepository) ByRecord(ctx context.Context, recordID string) ([]*models.VerificationResult, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.VerificationResult), args.Error(1)
}

// MockRecordRepository is a mock implementation of persistence.RecordRepository.
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) SoftDelete(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)

	return args.Error(0)
}

// MockPersistence is a mock implementation of persistence.Persistence.
type MockPersistence struct {
	mock.Mock

	Deviations    *MockDeviationRepository
	Verifications *MockVerificationRepository
	Records       *MockRecordRepository
}

func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		Deviations:    &MockDeviationRepository{},
		Verifications: &MockVerificationRepository{},
		Records:       &MockRecordRepository{},
	}
}

func (m *MockPersistence) DeviationRepository() persistence.DeviationRepository {
	return m.Deviations
}

func (m *MockPersistence) VerificationRepository() persistence.VerificationRepository {
	return m.Verifications
}

func (m *MockPersistence) RecordRepository() persistence.RecordRepository {
	return m.Records
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

// MockTracker is a mock implementation of inflight.Tracker.
type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Begin(ctx context.Context, key inflight.Key) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockTracker) End(ctx context.Context, key inflight.Key) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

func (m *MockTracker) Sweep(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)

	return args.Int(0), args.Error(1)
}
