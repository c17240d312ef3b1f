package v1_test

import (
	"context"

	"skillmatch-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Usecases
type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Register(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUC) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}
func (m *MockAuthUC) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockMarketplaceUC struct {
	mock.Mock
}

func (m *MockMarketplaceUC) ListJobs(ctx context.Context, userID string, query domain.MarketplaceQuery) (*domain.MarketplacePage, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketplacePage), args.Error(1)
}
func (m *MockMarketplaceUC) GetJob(ctx context.Context, id string) (*domain.MarketplaceJobWithCompany, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketplaceJobWithCompany), args.Error(1)
}
func (m *MockMarketplaceUC) SaveJob(ctx context.Context, userID, jobID string) (*domain.SavedJob, error) {
	args := m.Called(ctx, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedJob), args.Error(1)
}
func (m *MockMarketplaceUC) UnsaveJob(ctx context.Context, userID, jobID string) error {
	return m.Called(ctx, userID, jobID).Error(0)
}
func (m *MockMarketplaceUC) ListSavedJobs(ctx context.Context, userID string) ([]domain.SavedJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedJob), args.Error(1)
}
func (m *MockMarketplaceUC) ApplyToJob(ctx context.Context, userID, jobID string) (*domain.Application, error) {
	args := m.Called(ctx, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockMarketplaceUC) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

type MockPipelineUC struct {
	mock.Mock
}

func (m *MockPipelineUC) CreateJob(ctx context.Context, userID string, job *domain.PipelineJob) error {
	return m.Called(ctx, userID, job).Error(0)
}
func (m *MockPipelineUC) ListJobs(ctx context.Context, userID string, stage string) ([]domain.PipelineJob, error) {
	args := m.Called(ctx, userID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PipelineJob), args.Error(1)
}
func (m *MockPipelineUC) GetJob(ctx context.Context, userID, id string) (*domain.PipelineJob, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineJob), args.Error(1)
}
func (m *MockPipelineUC) UpdateJob(ctx context.Context, userID, id string, patch domain.PipelineJobPatch) (*domain.PipelineJob, error) {
	args := m.Called(ctx, userID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PipelineJob), args.Error(1)
}
func (m *MockPipelineUC) DeleteJob(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
func (m *MockPipelineUC) Board(ctx context.Context, userID string) ([]domain.BoardColumn, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoardColumn), args.Error(1)
}

type MockProfileUC struct {
	mock.Mock
}

func (m *MockProfileUC) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}
func (m *MockProfileUC) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProfile), args.Error(1)
}

type MockResumeUC struct {
	mock.Mock
}

func (m *MockResumeUC) ParseResume(ctx context.Context, userID string, upload domain.ResumeUpload) (*domain.ResumeReview, error) {
	args := m.Called(ctx, userID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeReview), args.Error(1)
}
func (m *MockResumeUC) UploadResume(ctx context.Context, userID string, upload domain.ResumeUpload) (*domain.Resume, error) {
	args := m.Called(ctx, userID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resume), args.Error(1)
}
func (m *MockResumeUC) ListResumes(ctx context.Context, userID string) ([]domain.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Resume), args.Error(1)
}
