package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
)

type AssessInput struct {
	QuizID  int64           `validate:"required"`
	Answers map[int64]int32 `validate:"required,min=1"`
}

type AssessOutput struct {
	Score           int32
	TotalQuestions  int32
	PercentageScore int32
	Passed          bool
}

// Assess grades a submission against the quiz's questions and stores
// the attempt. Unanswered questions count as wrong; the percentage is
// rounded to the nearest whole number.
func (s *Usecase) Assess(ctx context.Context, in AssessInput) (*AssessOutput, error) {
	ctx, span := s.startSpan(ctx, "Assess")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	quiz, err := s.repoDB.GetQuizByID(ctx, in.QuizID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Quiz not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get quiz", "quiz_id", in.QuizID, "error", err)
		return nil, goerror.NewServer(err)
	}

	enrolled, err := s.repoDB.IsActivelyEnrolled(ctx, clm.UserID, quiz.CourseID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check enrollment", "course_id", quiz.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !enrolled {
		return nil, goerror.NewBusiness("Enroll in the course to take its quiz", goerror.CodeForbidden)
	}

	questions, err := s.repoDB.ListQuestions(ctx, quiz.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list questions", "quiz_id", quiz.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if len(questions) == 0 {
		return nil, goerror.NewBusiness("Quiz has no questions", goerror.CodeInvalidInput)
	}

	attempt := entity.Attempt{
		ID:        s.uid.Generate(),
		QuizID:    quiz.ID,
		UserID:    clm.UserID,
		CreatedAt: s.clock.Now(),
	}

	var score int32
	answers := make([]entity.AttemptAnswer, 0, len(questions))
	for _, q := range questions {
		selected, answered := in.Answers[q.ID]
		correct := answered && selected == q.CorrectIndex
		if correct {
			score++
		}
		if !answered {
			selected = -1
		}
		answers = append(answers, entity.AttemptAnswer{
			ID:            s.uid.Generate(),
			AttemptID:     attempt.ID,
			QuestionID:    q.ID,
			SelectedIndex: selected,
			Correct:       correct,
		})
	}

	total := int32(len(questions))
	percentage := int32(math.Round(100 * float64(score) / float64(total)))

	attempt.Score = score
	attempt.PercentageScore = percentage
	attempt.Passed = percentage >= quiz.PassingScore

	if err := s.repoDB.CreateAttempt(ctx, attempt, answers); err != nil {
		slog.ErrorContext(ctx, "failed to store attempt", "quiz_id", quiz.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AssessOutput{
		Score:           score,
		TotalQuestions:  total,
		PercentageScore: percentage,
		Passed:          attempt.Passed,
	}, nil
}
