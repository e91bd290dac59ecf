package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"interview-ai/internal/api/errors"
	"interview-ai/internal/api/v1/dto"
	apperrors "interview-ai/internal/app/errors"
	"interview-ai/internal/app/feedback"
	"interview-ai/internal/app/lock"
)

// FeedbackServiceImpl implements FeedbackService
type FeedbackServiceImpl struct {
	pipeline *feedback.Pipeline
	locker   lock.Locker
	lockTTL  time.Duration
	logger   *zap.Logger
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(pipeline *feedback.Pipeline, locker lock.Locker, lockTTL time.Duration, logger *zap.Logger) FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackServiceImpl{
		pipeline: pipeline,
		locker:   locker,
		lockTTL:  lockTTL,
		logger:   logger,
	}
}

// Generate runs the feedback pipeline while holding the user/question lock.
// A second request for the same pair fails with feedback_already_in_progress.
func (s *FeedbackServiceImpl) Generate(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackData, error) {
	key := lock.FeedbackKey(req.UserID, req.QuestionID)
	lease, ok, err := s.locker.Acquire(ctx, key, s.lockTTL)
	if err != nil {
		s.logger.Error("feedback lock unavailable", zap.String("key", key), zap.Error(err))
		return nil, errors.New(apperrors.CodeServiceTemporarilyUnavailable, "failed to acquire feedback lock")
	}
	if !ok {
		return nil, errors.NewConflictError("feedback for this question is already being generated")
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release feedback lock", zap.String("key", key), zap.Error(err))
		}
	}()

	result, err := s.pipeline.Run(ctx, req.ToDomain())
	if err != nil {
		return nil, err
	}
	return dto.NewFeedbackData(req.UserID, req.QuestionID, result), nil
}
