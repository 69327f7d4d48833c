package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/strcase"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type CourseCreateInput struct {
	Title       string `validate:"required,min=5,max=150"`
	Description string `validate:"required,min=20"`
	Level       string `validate:"required,oneof=beginner intermediate advanced"`
	PriceMinor  int64  `validate:"gte=0"`
}

type CourseCreateOutput struct {
	ID   int64
	Slug string
}

// CourseCreate registers a draft course owned by the calling educator.
// The slug is derived from the title and must be unique.
func (s *Usecase) CourseCreate(ctx context.Context, in CourseCreateInput) (*CourseCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "CourseCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActCreate)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	course := entity.Course{
		ID:          s.uid.Generate(),
		EducatorID:  clm.UserID,
		Title:       in.Title,
		Slug:        strcase.ToSlug(in.Title),
		Description: in.Description,
		Level:       entity.ParseCourseLevel(in.Level),
		PriceMinor:  in.PriceMinor,
		Status:      entity.CourseStatusDraft,
	}

	if err := s.repoDB.CreateCourse(ctx, course); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewBusiness("A course with a similar title already exists", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to create course", "educator_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CourseCreateOutput{ID: course.ID, Slug: course.Slug}, nil
}
