package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type CourseListInput struct {
	Search   string
	Level    string
	Featured bool
	Size     int32
	Page     int32
}

type CourseListOutput struct {
	Page    int32
	Size    int32
	Total   int64
	Courses []entity.Course
}

// CourseList returns published, approved courses. Public endpoint.
func (s *Usecase) CourseList(ctx context.Context, in CourseListInput) (*CourseListOutput, error) {
	ctx, span := s.startSpan(ctx, "CourseList")
	defer span.End()

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}

	filter := entity.CourseListFilter{
		Search:   strings.TrimSpace(in.Search),
		Level:    entity.ParseCourseLevel(in.Level),
		Featured: in.Featured,
		Size:     in.Size,
		Offset:   (max(in.Page, 1) - 1) * in.Size,
	}
	if filter.Search != "" {
		filter.IsFilterBySearch = true
	}
	if filter.Level != entity.CourseLevelUnknown {
		filter.IsFilterByLevel = true
	}
	if in.Featured {
		filter.IsFilterByFeatured = true
	}

	courses, total, err := s.repoDB.ListPublishedCourses(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list courses", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CourseListOutput{
		Page:    max(in.Page, 1),
		Size:    in.Size,
		Total:   total,
		Courses: courses,
	}, nil
}
