package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type CourseUpdateInput struct {
	CourseID    int64  `validate:"required"`
	Title       string `validate:"omitempty,min=5,max=150"`
	Description string `validate:"omitempty,min=20"`
	Level       string `validate:"omitempty,oneof=beginner intermediate advanced"`
	PriceMinor  *int64 `validate:"omitempty"`
}

// CourseUpdate edits a course's descriptive fields. The slug is fixed
// at creation; only the owner (or an admin) may update.
func (s *Usecase) CourseUpdate(ctx context.Context, in CourseUpdateInput) error {
	ctx, span := s.startSpan(ctx, "CourseUpdate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActUpdate)
	if err != nil {
		return err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	course, err := s.ownedCourse(ctx, clm, in.CourseID)
	if err != nil {
		return err
	}

	if in.Title != "" {
		course.Title = in.Title
	}
	if in.Description != "" {
		course.Description = in.Description
	}
	if in.Level != "" {
		course.Level = entity.ParseCourseLevel(in.Level)
	}
	if in.PriceMinor != nil {
		if *in.PriceMinor < 0 {
			return goerror.NewBusiness("Price cannot be negative", goerror.CodeInvalidInput)
		}
		course.PriceMinor = *in.PriceMinor
	}

	if err := s.repoDB.UpdateCourse(ctx, *course); err != nil {
		slog.ErrorContext(ctx, "failed to update course", "course_id", in.CourseID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
