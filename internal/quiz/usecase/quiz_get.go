package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
)

type QuizGetInput struct {
	CourseID int64 `validate:"required"`
}

type QuizGetOutput struct {
	Quiz      entity.Quiz
	Questions []entity.Question
}

// QuizGet returns the course quiz with its questions for an enrolled
// learner. Correct indexes are stripped unless the caller owns the
// course.
func (s *Usecase) QuizGet(ctx context.Context, in QuizGetInput) (*QuizGetOutput, error) {
	ctx, span := s.startSpan(ctx, "QuizGet")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	quiz, err := s.repoDB.GetQuizByCourse(ctx, in.CourseID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Quiz not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get quiz by course", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	isOwner := s.courseOwnedBy(ctx, clm, quiz.CourseID) == nil
	if !isOwner {
		enrolled, err := s.repoDB.IsActivelyEnrolled(ctx, clm.UserID, quiz.CourseID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check enrollment", "course_id", quiz.CourseID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if !enrolled {
			return nil, goerror.NewBusiness("Enroll in the course to take its quiz", goerror.CodeForbidden)
		}
	}

	questions, err := s.repoDB.ListQuestions(ctx, quiz.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list questions", "quiz_id", quiz.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !isOwner {
		for i := range questions {
			questions[i].CorrectIndex = -1
		}
	}

	return &QuizGetOutput{Quiz: *quiz, Questions: questions}, nil
}
