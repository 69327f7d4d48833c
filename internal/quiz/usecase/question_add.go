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

type QuestionAddInput struct {
	QuizID       int64    `validate:"required"`
	Prompt       string   `validate:"required,min=5"`
	Options      []string `validate:"required,min=2,max=6,dive,required"`
	CorrectIndex int32    `validate:"gte=0"`
	Position     int32    `validate:"gte=0"`
}

type QuestionAddOutput struct {
	ID int64
}

func (s *Usecase) QuestionAdd(ctx context.Context, in QuestionAddInput) (*QuestionAddOutput, error) {
	ctx, span := s.startSpan(ctx, "QuestionAdd")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermQuizzes, constant.PermActUpdate)
	if err != nil {
		return nil, err
	}

	in.Prompt = strings.TrimSpace(in.Prompt)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if int(in.CorrectIndex) >= len(in.Options) {
		return nil, goerror.NewBusiness("Correct index is out of range", goerror.CodeInvalidInput)
	}

	quiz, err := s.repoDB.GetQuizByID(ctx, in.QuizID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Quiz not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get quiz", "quiz_id", in.QuizID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.courseOwnedBy(ctx, clm, quiz.CourseID); err != nil {
		return nil, err
	}

	question := entity.Question{
		ID:           s.uid.Generate(),
		QuizID:       in.QuizID,
		Prompt:       in.Prompt,
		Options:      in.Options,
		CorrectIndex: in.CorrectIndex,
		Position:     in.Position,
	}

	if err := s.repoDB.CreateQuestion(ctx, question); err != nil {
		slog.ErrorContext(ctx, "failed to create question", "quiz_id", in.QuizID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &QuestionAddOutput{ID: question.ID}, nil
}
