package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/review/entity"
)

type ReviewCreateInput struct {
	CourseID int64  `validate:"required"`
	Rating   int32  `validate:"required,min=1,max=5"`
	Comment  string `validate:"max=2000"`
}

type ReviewCreateOutput struct {
	ReviewID int64
}

// ReviewCreate records the caller's review for a course they are
// enrolled in. A second review for the same course is a conflict.
func (s *Usecase) ReviewCreate(ctx context.Context, in ReviewCreateInput) (*ReviewCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ReviewCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.CourseExists(ctx, in.CourseID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check course", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}

	enrolled, err := s.repoDB.IsEnrolled(ctx, clm.UserID, in.CourseID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check enrollment", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !enrolled {
		return nil, goerror.NewBusiness("You must be enrolled to review this course", goerror.CodeForbidden)
	}

	review := entity.Review{
		ID:        s.uid.Generate(),
		CourseID:  in.CourseID,
		UserID:    clm.UserID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repoDB.CreateReview(ctx, review); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("You have already reviewed this course", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to create review", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ReviewCreateOutput{ReviewID: review.ID}, nil
}
