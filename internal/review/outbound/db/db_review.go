package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/learnbite/internal/review/entity"
)

func (s *DB) CourseExists(ctx context.Context, courseID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "CourseExists")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT EXISTS (SELECT 1 FROM courses WHERE id = $1 AND deleted_at IS NULL)`

	var exists bool
	if err = s.conn.QueryRow(ctx, query, courseID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) IsEnrolled(ctx context.Context, userID, courseID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsEnrolled")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`

	var exists bool
	if err = s.conn.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

// CreateReview inserts the review and recomputes the course's rating
// aggregate from the review rows inside one transaction, so the
// denormalized columns never drift.
func (s *DB) CreateReview(ctx context.Context, review entity.Review) (err error) {
	ctx, span := s.startSpan(ctx, "CreateReview")
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

	const insertReview = `
		INSERT INTO reviews (id, course_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err = tx.Exec(ctx, insertReview,
		review.ID, review.CourseID, review.UserID, review.Rating, review.Comment, review.CreatedAt,
	); err != nil {
		return s.mapError(err)
	}

	const refreshAggregate = `
		UPDATE courses
		SET rating_avg = agg.avg, rating_count = agg.count, updated_at = NOW()
		FROM (
			SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count
			FROM reviews
			WHERE course_id = $1
		) agg
		WHERE id = $1`

	if _, err = tx.Exec(ctx, refreshAggregate, review.CourseID); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) ListReviews(ctx context.Context, courseID int64, size, offset int32) (_ []entity.ReviewWithAuthor, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "ListReviews")
	defer func() { s.endSpan(span, err) }()

	const countQuery = `SELECT COUNT(*) FROM reviews WHERE course_id = $1`

	var total int64
	if err = s.conn.QueryRow(ctx, countQuery, courseID).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	const query = `
		SELECT r.id, r.course_id, r.user_id, r.rating, r.comment, r.created_at, r.updated_at, u.full_name
		FROM reviews r
		JOIN users u ON u.id = r.user_id
		WHERE r.course_id = $1
		ORDER BY r.created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, query, courseID, size, offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	var reviews []entity.ReviewWithAuthor
	for rows.Next() {
		var r entity.ReviewWithAuthor
		if err = rows.Scan(
			&r.ID, &r.CourseID, &r.UserID, &r.Rating, &r.Comment, &r.CreatedAt, &r.UpdatedAt, &r.AuthorName,
		); err != nil {
			return nil, 0, s.mapError(err)
		}
		reviews = append(reviews, r)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return reviews, total, nil
}
