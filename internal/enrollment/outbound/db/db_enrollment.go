package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/enrollment/usecase"
)

func (s *DB) GetCourseInfo(ctx context.Context, courseID int64) (_ *usecase.CourseInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetCourseInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, title, price_minor, (status = 2 AND approved) AS published
		FROM courses
		WHERE id = $1 AND deleted_at IS NULL`

	var info usecase.CourseInfo
	err = s.conn.QueryRow(ctx, query, courseID).Scan(&info.ID, &info.Title, &info.PriceMinor, &info.Published)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) ListCourseChapterRefs(ctx context.Context, courseID int64) (_ []usecase.ChapterRef, err error) {
	ctx, span := s.startSpan(ctx, "ListCourseChapterRefs")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT cs.id, ch.id
		FROM course_sections cs
		JOIN course_chapters ch ON ch.section_id = cs.id
		WHERE cs.course_id = $1
		ORDER BY cs.position, ch.position`

	rows, err := s.conn.Query(ctx, query, courseID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var refs []usecase.ChapterRef
	for rows.Next() {
		var ref usecase.ChapterRef
		if err = rows.Scan(&ref.SectionID, &ref.ChapterID); err != nil {
			return nil, s.mapError(err)
		}
		refs = append(refs, ref)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return refs, nil
}

func (s *DB) GetEnrollment(ctx context.Context, userID, courseID int64) (_ *entity.Enrollment, err error) {
	ctx, span := s.startSpan(ctx, "GetEnrollment")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, user_id, course_id, status, enrolled_at, completed_at
		FROM enrollments
		WHERE user_id = $1 AND course_id = $2`

	var e entity.Enrollment
	err = s.conn.QueryRow(ctx, query, userID, courseID).Scan(
		&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.EnrolledAt, &e.CompletedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &e, nil
}

func (s *DB) GetEnrollmentByID(ctx context.Context, id int64) (_ *entity.Enrollment, err error) {
	ctx, span := s.startSpan(ctx, "GetEnrollmentByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, user_id, course_id, status, enrolled_at, completed_at
		FROM enrollments
		WHERE id = $1`

	var e entity.Enrollment
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.EnrolledAt, &e.CompletedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &e, nil
}

// CreateEnrollmentWithProgress inserts the enrollment and seeds one
// progress row per chapter atomically.
func (s *DB) CreateEnrollmentWithProgress(ctx context.Context, enrollment entity.Enrollment, progress []entity.ChapterProgress) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEnrollmentWithProgress")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	const insertEnrollment = `
		INSERT INTO enrollments (id, user_id, course_id, status, enrolled_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err = tx.Exec(ctx, insertEnrollment,
		enrollment.ID, enrollment.UserID, enrollment.CourseID, enrollment.Status, enrollment.EnrolledAt,
	); err != nil {
		return s.mapError(err)
	}

	const insertProgress = `
		INSERT INTO chapter_progress (id, enrollment_id, section_id, chapter_id, completed)
		VALUES ($1, $2, $3, $4, FALSE)`

	for _, p := range progress {
		if _, err = tx.Exec(ctx, insertProgress, p.ID, p.EnrollmentID, p.SectionID, p.ChapterID); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) ListEnrollmentsWithProgress(ctx context.Context, userID int64) (_ []entity.EnrollmentWithProgress, err error) {
	ctx, span := s.startSpan(ctx, "ListEnrollmentsWithProgress")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT e.id, e.user_id, e.course_id, e.status, e.enrolled_at, e.completed_at,
			c.title, c.slug,
			COUNT(cp.id) AS total_chapters,
			COUNT(cp.id) FILTER (WHERE cp.completed) AS completed_chapters
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		LEFT JOIN chapter_progress cp ON cp.enrollment_id = e.id
		WHERE e.user_id = $1
		GROUP BY e.id, c.title, c.slug
		ORDER BY e.enrolled_at DESC`

	rows, err := s.conn.Query(ctx, query, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var result []entity.EnrollmentWithProgress
	for rows.Next() {
		var ewp entity.EnrollmentWithProgress
		if err = rows.Scan(
			&ewp.ID, &ewp.UserID, &ewp.CourseID, &ewp.Status, &ewp.EnrolledAt, &ewp.CompletedAt,
			&ewp.CourseTitle, &ewp.CourseSlug,
			&ewp.Progress.TotalChapters, &ewp.Progress.CompletedChapters,
		); err != nil {
			return nil, s.mapError(err)
		}
		result = append(result, ewp)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return result, nil
}

// MarkChapterCompleted flips the progress row to completed. Returns
// false when the row was already completed.
func (s *DB) MarkChapterCompleted(ctx context.Context, enrollmentID, chapterID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkChapterCompleted")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE chapter_progress
		SET completed = TRUE, completed_at = NOW()
		WHERE enrollment_id = $1 AND chapter_id = $2 AND NOT completed`

	tag, err := s.conn.Exec(ctx, query, enrollmentID, chapterID)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) GetProgressSummary(ctx context.Context, enrollmentID int64) (_ *entity.ProgressSummary, err error) {
	ctx, span := s.startSpan(ctx, "GetProgressSummary")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM chapter_progress
		WHERE enrollment_id = $1`

	var summary entity.ProgressSummary
	err = s.conn.QueryRow(ctx, query, enrollmentID).Scan(&summary.TotalChapters, &summary.CompletedChapters)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &summary, nil
}

func (s *DB) SetEnrollmentCompleted(ctx context.Context, enrollmentID int64) (err error) {
	ctx, span := s.startSpan(ctx, "SetEnrollmentCompleted")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE enrollments
		SET status = $2, completed_at = NOW()
		WHERE id = $1`

	_, err = s.conn.Exec(ctx, query, enrollmentID, entity.EnrollmentStatusCompleted)

	return s.mapError(err)
}

// GetEnrollmentForChapter resolves the caller's enrollment that owns a
// progress row for the chapter.
func (s *DB) GetEnrollmentForChapter(ctx context.Context, userID, chapterID int64) (_ *entity.Enrollment, err error) {
	ctx, span := s.startSpan(ctx, "GetEnrollmentForChapter")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT e.id, e.user_id, e.course_id, e.status, e.enrolled_at, e.completed_at
		FROM enrollments e
		JOIN chapter_progress cp ON cp.enrollment_id = e.id
		WHERE e.user_id = $1 AND cp.chapter_id = $2`

	var e entity.Enrollment
	err = s.conn.QueryRow(ctx, query, userID, chapterID).Scan(
		&e.ID, &e.UserID, &e.CourseID, &e.Status, &e.EnrolledAt, &e.CompletedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &e, nil
}
