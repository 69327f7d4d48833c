package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type QuizCreateInput struct {
	CourseID     int64  `validate:"required"`
	Title        string `validate:"required,min=3,max=150"`
	PassingScore int32  `validate:"gte=0,lte=100"`
}

type QuizCreateOutput struct {
	ID int64
}

// QuizCreate attaches a quiz to an owned course. One quiz per course.
func (s *Usecase) QuizCreate(ctx context.Context, in QuizCreateInput) (*QuizCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "QuizCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermQuizzes, constant.PermActCreate)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.courseOwnedBy(ctx, clm, in.CourseID); err != nil {
		return nil, err
	}

	quiz := entity.Quiz{
		ID:           s.uid.Generate(),
		CourseID:     in.CourseID,
		Title:        in.Title,
		PassingScore: in.PassingScore,
	}

	if err := s.repoDB.CreateQuiz(ctx, quiz); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("Course already has a quiz", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to create quiz", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &QuizCreateOutput{ID: quiz.ID}, nil
}
