package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/review/entity"
)

type ReviewListInput struct {
	CourseID int64 `validate:"required"`
	Page     int32
	Size     int32
}

type ReviewListOutput struct {
	Reviews []entity.ReviewWithAuthor
	Page    int32
	Size    int32
	Total   int64
}

// ReviewList returns a course's reviews newest first.
func (s *Usecase) ReviewList(ctx context.Context, in ReviewListInput) (*ReviewListOutput, error) {
	ctx, span := s.startSpan(ctx, "ReviewList")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	size := in.Size
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	page := in.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size

	reviews, total, err := s.repoDB.ListReviews(ctx, in.CourseID, size, offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list reviews", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ReviewListOutput{Reviews: reviews, Page: page, Size: size, Total: total}, nil
}
