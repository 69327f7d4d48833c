package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
)

type CourseMineOutput struct {
	Courses []entity.Course
}

// CourseMine lists every course owned by the calling educator,
// regardless of status.
func (s *Usecase) CourseMine(ctx context.Context) (*CourseMineOutput, error) {
	ctx, span := s.startSpan(ctx, "CourseMine")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermCourses, constant.PermActCreate)
	if err != nil {
		return nil, err
	}

	courses, err := s.repoDB.ListCoursesByEducator(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list educator courses", "educator_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CourseMineOutput{Courses: courses}, nil
}
