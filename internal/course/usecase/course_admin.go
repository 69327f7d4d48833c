package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type CourseApproveInput struct {
	CourseID int64 `validate:"required"`
	Approved bool
}

// CourseApprove flips the admin approval flag. Only approved courses
// show up in the public catalog.
func (s *Usecase) CourseApprove(ctx context.Context, in CourseApproveInput) error {
	ctx, span := s.startSpan(ctx, "CourseApprove")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCourseAdmin, constant.PermActUpdate); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SetCourseApproved(ctx, in.CourseID, in.Approved); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Course not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to set course approval", "course_id", in.CourseID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type CourseFeatureInput struct {
	CourseID int64 `validate:"required"`
	Featured bool
}

func (s *Usecase) CourseFeature(ctx context.Context, in CourseFeatureInput) error {
	ctx, span := s.startSpan(ctx, "CourseFeature")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermCourseAdmin, constant.PermActUpdate); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.SetCourseFeatured(ctx, in.CourseID, in.Featured); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Course not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to set course featured", "course_id", in.CourseID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
