package db

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
)

func (s *DB) CreateCourse(ctx context.Context, course entity.Course) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCourse")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO courses (id, educator_id, title, slug, description, level, price_minor, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.conn.Exec(ctx, query,
		course.ID, course.EducatorID, course.Title, course.Slug,
		course.Description, course.Level, course.PriceMinor, course.Status,
	)

	return s.mapError(err)
}

func (s *DB) CreateSection(ctx context.Context, section entity.Section) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSection")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO course_sections (id, course_id, title, position)
		VALUES ($1, $2, $3, $4)`

	_, err = s.conn.Exec(ctx, query, section.ID, section.CourseID, section.Title, section.Position)

	return s.mapError(err)
}

func (s *DB) CreateChapter(ctx context.Context, chapter entity.Chapter) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChapter")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO course_chapters (id, section_id, title, media_key, duration_sec, position, preview)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query,
		chapter.ID, chapter.SectionID, chapter.Title, chapter.MediaKey,
		chapter.DurationSec, chapter.Position, chapter.Preview,
	)

	return s.mapError(err)
}
