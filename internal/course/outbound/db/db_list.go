package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
)

// ListPublishedCourses returns the public catalog page plus the total
// matching count. Filters are appended positionally so the query stays
// a single prepared statement per filter combination.
func (s *DB) ListPublishedCourses(ctx context.Context, filter entity.CourseListFilter) (_ []entity.Course, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListPublishedCourses")
	defer func() { s.endSpan(span, err) }()

	conds := []string{"status = $1", "approved = TRUE", "deleted_at IS NULL"}
	args := []any{entity.CourseStatusPublished}

	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if filter.IsFilterByLevel {
		args = append(args, filter.Level)
		conds = append(conds, fmt.Sprintf("level = $%d", len(args)))
	}
	if filter.IsFilterByFeatured {
		conds = append(conds, "featured = TRUE")
	}

	where := strings.Join(conds, " AND ")

	var total int64
	countQuery := "SELECT COUNT(*) FROM courses WHERE " + where
	if err = s.conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size, filter.Offset)
	listQuery := fmt.Sprintf(`
		SELECT `+courseColumns+`
		FROM courses
		WHERE %s
		ORDER BY featured DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := s.conn.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	var courses []entity.Course
	for rows.Next() {
		c, err := s.scanCourse(rows)
		if err != nil {
			return nil, 0, err
		}
		courses = append(courses, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return courses, total, nil
}
