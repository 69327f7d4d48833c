package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type CompleteChapterInput struct {
	ChapterID int64 `validate:"required"`
}

type CompleteChapterOutput struct {
	PercentComplete int32
	CourseCompleted bool
}

// CompleteChapter marks a chapter done for the caller's enrollment and
// recomputes the completion percentage. Marking the same chapter twice
// is a no-op; reaching 100% flips the enrollment to completed.
func (s *Usecase) CompleteChapter(ctx context.Context, in CompleteChapterInput) (*CompleteChapterOutput, error) {
	ctx, span := s.startSpan(ctx, "CompleteChapter")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	enrollment, err := s.repoDB.GetEnrollmentForChapter(ctx, clm.UserID, in.ChapterID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("You are not enrolled in this course", goerror.CodeForbidden)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get enrollment for chapter", "chapter_id", in.ChapterID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if _, err := s.repoDB.MarkChapterCompleted(ctx, enrollment.ID, in.ChapterID); err != nil {
		slog.ErrorContext(ctx, "failed to mark chapter completed", "chapter_id", in.ChapterID, "error", err)
		return nil, goerror.NewServer(err)
	}

	summary, err := s.repoDB.GetProgressSummary(ctx, enrollment.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get progress summary", "enrollment_id", enrollment.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	percent := summary.Percent()
	completed := summary.TotalChapters > 0 && summary.CompletedChapters == summary.TotalChapters

	if completed && enrollment.Status != entity.EnrollmentStatusCompleted {
		if err := s.repoDB.SetEnrollmentCompleted(ctx, enrollment.ID); err != nil {
			slog.ErrorContext(ctx, "failed to set enrollment completed", "enrollment_id", enrollment.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	return &CompleteChapterOutput{PercentComplete: percent, CourseCompleted: completed}, nil
}
