package db

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

func (s *DB) UpdateCourse(ctx context.Context, course entity.Course) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCourse")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE courses
		SET title = $2, description = $3, level = $4, price_minor = $5, thumbnail_key = $6, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query,
		course.ID, course.Title, course.Description, course.Level, course.PriceMinor, course.ThumbnailKey,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) SetCourseStatus(ctx context.Context, id int64, status entity.CourseStatus) (err error) {
	ctx, span := s.startSpan(ctx, "SetCourseStatus")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE courses SET status = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, status)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) SetCourseApproved(ctx context.Context, id int64, approved bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetCourseApproved")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE courses SET approved = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, approved)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) SetCourseFeatured(ctx context.Context, id int64, featured bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetCourseFeatured")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE courses SET featured = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, featured)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
