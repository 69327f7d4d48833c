package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type SectionCreateInput struct {
	CourseID int64  `validate:"required"`
	Title    string `validate:"required,min=3,max=150"`
	Position int32  `validate:"gte=0"`
}

type SectionCreateOutput struct {
	ID int64
}

func (s *Usecase) SectionCreate(ctx context.Context, in SectionCreateInput) (*SectionCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "SectionCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActUpdate)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.ownedCourse(ctx, clm, in.CourseID); err != nil {
		return nil, err
	}

	section := entity.Section{
		ID:       s.uid.Generate(),
		CourseID: in.CourseID,
		Title:    in.Title,
		Position: in.Position,
	}

	if err := s.repoDB.CreateSection(ctx, section); err != nil {
		slog.ErrorContext(ctx, "failed to create section", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SectionCreateOutput{ID: section.ID}, nil
}
