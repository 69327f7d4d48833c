package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type CoursePublishInput struct {
	CourseID int64 `validate:"required"`
}

// CoursePublish moves a draft course to published. A course is only
// publishable once it has at least one section containing a chapter.
func (s *Usecase) CoursePublish(ctx context.Context, in CoursePublishInput) error {
	ctx, span := s.startSpan(ctx, "CoursePublish")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActUpdate)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	course, err := s.ownedCourse(ctx, clm, in.CourseID)
	if err != nil {
		return err
	}

	if course.Status == entity.CourseStatusPublished {
		return nil
	}

	sections, err := s.repoDB.GetSectionsWithChapters(ctx, in.CourseID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course sections", "course_id", in.CourseID, "error", err)
		return goerror.NewServer(err)
	}

	publishable := false
	for _, section := range sections {
		if len(section.Chapters) > 0 {
			publishable = true
			break
		}
	}
	if !publishable {
		return goerror.NewBusiness("Course must have at least one section with a chapter before publishing", goerror.CodeInvalidInput)
	}

	if err := s.repoDB.SetCourseStatus(ctx, in.CourseID, entity.CourseStatusPublished); err != nil {
		slog.ErrorContext(ctx, "failed to publish course", "course_id", in.CourseID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
