package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"interview-ai/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	STTService      *MockSTTService
	FeedbackService *MockFeedbackService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		STTService:      NewMockSTTService(t),
		FeedbackService: NewMockFeedbackService(t),
	}
}

// AssertExpectations asserts expectations on every mock
func (m *MockServices) AssertExpectations(t *testing.T) {
	m.STTService.AssertExpectations(t)
	m.FeedbackService.AssertExpectations(t)
}

// MockSTTService is a mock implementation of STTService
type MockSTTService struct {
	mock.Mock
}

func NewMockSTTService(t *testing.T) *MockSTTService {
	m := &MockSTTService{}
	m.Test(t)
	return m
}

func (m *MockSTTService) TranscribeURL(ctx context.Context, req *dto.STTRequest) (*dto.STTData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.STTData), args.Error(1)
}

func (m *MockSTTService) TranscribeUpload(ctx context.Context, req *dto.STTUploadRequest) (*dto.STTData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.STTData), args.Error(1)
}

// MockFeedbackService is a mock implementation of FeedbackService
type MockFeedbackService struct {
	mock.Mock
}

func NewMockFeedbackService(t *testing.T) *MockFeedbackService {
	m := &MockFeedbackService{}
	m.Test(t)
	return m
}

func (m *MockFeedbackService) Generate(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackData, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedbackData), args.Error(1)
}
