package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
)

type MyAttemptsInput struct {
	QuizID int64 `validate:"required"`
}

type MyAttemptsOutput struct {
	Attempts []entity.Attempt
}

func (s *Usecase) MyAttempts(ctx context.Context, in MyAttemptsInput) (*MyAttemptsOutput, error) {
	ctx, span := s.startSpan(ctx, "MyAttempts")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	attempts, err := s.repoDB.ListAttemptsByUser(ctx, in.QuizID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list attempts", "quiz_id", in.QuizID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MyAttemptsOutput{Attempts: attempts}, nil
}
