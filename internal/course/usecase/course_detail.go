package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type CourseDetailInput struct {
	Slug string `validate:"required"`
}

type CourseDetailOutput struct {
	entity.CourseDetail
	Enrolled bool
}

// CourseDetail returns a course with its curriculum. Callers who are
// not enrolled (and not the owner) only see preview chapters; media
// keys never leave this layer.
func (s *Usecase) CourseDetail(ctx context.Context, in CourseDetailInput) (*CourseDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "CourseDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	course, err := s.repoDB.GetCourseBySlug(ctx, in.Slug)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course by slug", "slug", in.Slug, "error", err)
		return nil, goerror.NewServer(err)
	}

	clm := jwt.GetAuth(ctx)
	isOwner := clm != nil && (clm.UserID == course.EducatorID || clm.UserRole == constant.RoleAdmin)

	if course.Status != entity.CourseStatusPublished && !isOwner {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}

	enrolled := false
	if clm != nil && !isOwner {
		enrolled, err = s.repoDB.IsEnrolled(ctx, clm.UserID, course.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check enrollment", "course_id", course.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	sections, err := s.repoDB.GetSectionsWithChapters(ctx, course.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course sections", "course_id", course.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	fullAccess := isOwner || enrolled
	sections = lo.Map(sections, func(sec entity.SectionWithChapters, _ int) entity.SectionWithChapters {
		sec.Chapters = lo.FilterMap(sec.Chapters, func(ch entity.Chapter, _ int) (entity.Chapter, bool) {
			ch.MediaKey = "" // resolved via playback URLs only
			return ch, fullAccess || ch.Preview
		})
		return sec
	})

	return &CourseDetailOutput{
		CourseDetail: entity.CourseDetail{Course: *course, Sections: sections},
		Enrolled:     enrolled || isOwner,
	}, nil
}
