package db

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/course/entity"
)

const courseColumns = `id, educator_id, title, slug, description, level, price_minor,
		thumbnail_key, status, approved, featured, rating_avg, rating_count, created_at, updated_at`

func (s *DB) scanCourse(row interface{ Scan(dest ...any) error }) (*entity.Course, error) {
	var c entity.Course
	err := row.Scan(
		&c.ID, &c.EducatorID, &c.Title, &c.Slug, &c.Description, &c.Level, &c.PriceMinor,
		&c.ThumbnailKey, &c.Status, &c.Approved, &c.Featured, &c.RatingAvg, &c.RatingCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &c, nil
}

func (s *DB) GetCourseByID(ctx context.Context, id int64) (_ *entity.Course, err error) {
	ctx, span := s.startSpan(ctx, "GetCourseByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE id = $1 AND deleted_at IS NULL`

	return s.scanCourse(s.conn.QueryRow(ctx, query, id))
}

func (s *DB) GetCourseBySlug(ctx context.Context, slug string) (_ *entity.Course, err error) {
	ctx, span := s.startSpan(ctx, "GetCourseBySlug")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE slug = $1 AND deleted_at IS NULL`

	return s.scanCourse(s.conn.QueryRow(ctx, query, slug))
}

func (s *DB) GetSectionByID(ctx context.Context, id int64) (_ *entity.Section, err error) {
	ctx, span := s.startSpan(ctx, "GetSectionByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, course_id, title, position
		FROM course_sections
		WHERE id = $1`

	var sec entity.Section
	err = s.conn.QueryRow(ctx, query, id).Scan(&sec.ID, &sec.CourseID, &sec.Title, &sec.Position)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sec, nil
}

func (s *DB) GetChapterByID(ctx context.Context, id int64) (_ *entity.Chapter, err error) {
	ctx, span := s.startSpan(ctx, "GetChapterByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, section_id, title, media_key, duration_sec, position, preview
		FROM course_chapters
		WHERE id = $1`

	var ch entity.Chapter
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&ch.ID, &ch.SectionID, &ch.Title, &ch.MediaKey, &ch.DurationSec, &ch.Position, &ch.Preview,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &ch, nil
}

func (s *DB) GetSectionsWithChapters(ctx context.Context, courseID int64) (_ []entity.SectionWithChapters, err error) {
	ctx, span := s.startSpan(ctx, "GetSectionsWithChapters")
	defer func() { s.endSpan(span, err) }()

	const sectionQuery = `
		SELECT id, course_id, title, position
		FROM course_sections
		WHERE course_id = $1
		ORDER BY position, id`

	rows, err := s.conn.Query(ctx, sectionQuery, courseID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var sections []entity.SectionWithChapters
	index := map[int64]int{}
	for rows.Next() {
		var sec entity.Section
		if err = rows.Scan(&sec.ID, &sec.CourseID, &sec.Title, &sec.Position); err != nil {
			return nil, s.mapError(err)
		}
		index[sec.ID] = len(sections)
		sections = append(sections, entity.SectionWithChapters{Section: sec})
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	const chapterQuery = `
		SELECT ch.id, ch.section_id, ch.title, ch.media_key, ch.duration_sec, ch.position, ch.preview
		FROM course_chapters ch
		JOIN course_sections cs ON cs.id = ch.section_id
		WHERE cs.course_id = $1
		ORDER BY ch.position, ch.id`

	chRows, err := s.conn.Query(ctx, chapterQuery, courseID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer chRows.Close()

	for chRows.Next() {
		var ch entity.Chapter
		if err = chRows.Scan(&ch.ID, &ch.SectionID, &ch.Title, &ch.MediaKey, &ch.DurationSec, &ch.Position, &ch.Preview); err != nil {
			return nil, s.mapError(err)
		}
		if i, ok := index[ch.SectionID]; ok {
			sections[i].Chapters = append(sections[i].Chapters, ch)
		}
	}
	if err = chRows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return sections, nil
}

func (s *DB) ListCoursesByEducator(ctx context.Context, educatorID int64) (_ []entity.Course, err error) {
	ctx, span := s.startSpan(ctx, "ListCoursesByEducator")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE educator_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	rows, err := s.conn.Query(ctx, query, educatorID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var courses []entity.Course
	for rows.Next() {
		c, err := s.scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return courses, nil
}

func (s *DB) IsEnrolled(ctx context.Context, userID, courseID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsEnrolled")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`

	var exists bool
	if err = s.conn.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}
