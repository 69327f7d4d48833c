package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/learnbite/internal/payment/entity"
	"github.com/shandysiswandi/learnbite/internal/payment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

func (s *DB) GetCourseInfo(ctx context.Context, courseID int64) (_ *usecase.CourseInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetCourseInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, educator_id, title, price_minor, (status = 2 AND approved) AS published
		FROM courses
		WHERE id = $1 AND deleted_at IS NULL`

	var info usecase.CourseInfo
	err = s.conn.QueryRow(ctx, query, courseID).Scan(
		&info.ID, &info.EducatorID, &info.Title, &info.PriceMinor, &info.Published,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) GetUserEmail(ctx context.Context, userID int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetUserEmail")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT email FROM users WHERE id = $1 AND deleted_at IS NULL`

	var email string
	if err = s.conn.QueryRow(ctx, query, userID).Scan(&email); err != nil {
		return "", s.mapError(err)
	}

	return email, nil
}

func (s *DB) CreatePayment(ctx context.Context, payment entity.Payment) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePayment")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO payments (id, reference, user_id, course_id, amount_minor, currency, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = s.conn.Exec(ctx, query,
		payment.ID, payment.Reference, payment.UserID, payment.CourseID,
		payment.AmountMinor, payment.Currency, payment.Status, payment.CreatedAt,
	)

	return s.mapError(err)
}

func (s *DB) GetPaymentByReference(ctx context.Context, reference string) (_ *entity.Payment, err error) {
	ctx, span := s.startSpan(ctx, "GetPaymentByReference")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, reference, user_id, course_id, amount_minor, currency, status,
			platform_fee_minor, educator_share_minor, channel, paid_at, created_at, updated_at
		FROM payments
		WHERE reference = $1`

	var p entity.Payment
	err = s.conn.QueryRow(ctx, query, reference).Scan(
		&p.ID, &p.Reference, &p.UserID, &p.CourseID, &p.AmountMinor, &p.Currency, &p.Status,
		&p.PlatformFeeMinor, &p.EducatorShareMinor, &p.Channel, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &p, nil
}

func (s *DB) MarkPaymentSucceeded(ctx context.Context, reference string, fee, share int64, channel string, paidAt time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "MarkPaymentSucceeded")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE payments
		SET status = $2, platform_fee_minor = $3, educator_share_minor = $4,
			channel = $5, paid_at = $6, updated_at = NOW()
		WHERE reference = $1 AND status = $7`

	tag, err := s.conn.Exec(ctx, query, reference,
		entity.PaymentStatusSuccess, fee, share, channel, paidAt, entity.PaymentStatusPending,
	)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) MarkPaymentFailed(ctx context.Context, reference string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkPaymentFailed")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE payments
		SET status = $2, updated_at = NOW()
		WHERE reference = $1 AND status = $3`

	tag, err := s.conn.Exec(ctx, query, reference, entity.PaymentStatusFailed, entity.PaymentStatusPending)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
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

// EnrollWithProgress creates the enrollment for a settled payment and
// seeds one progress row per chapter in the same transaction.
func (s *DB) EnrollWithProgress(ctx context.Context, enrollmentID, userID, courseID int64, progressID func() int64) (err error) {
	ctx, span := s.startSpan(ctx, "EnrollWithProgress")
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

	// status 1 = active
	const insertEnrollment = `
		INSERT INTO enrollments (id, user_id, course_id, status, enrolled_at)
		VALUES ($1, $2, $3, 1, NOW())`

	if _, err = tx.Exec(ctx, insertEnrollment, enrollmentID, userID, courseID); err != nil {
		return s.mapError(err)
	}

	const selectChapters = `
		SELECT cs.id, ch.id
		FROM course_sections cs
		JOIN course_chapters ch ON ch.section_id = cs.id
		WHERE cs.course_id = $1
		ORDER BY cs.position, ch.position`

	rows, err := tx.Query(ctx, selectChapters, courseID)
	if err != nil {
		return s.mapError(err)
	}

	type chapterRef struct{ sectionID, chapterID int64 }
	var refs []chapterRef
	for rows.Next() {
		var ref chapterRef
		if err = rows.Scan(&ref.sectionID, &ref.chapterID); err != nil {
			rows.Close()
			return s.mapError(err)
		}
		refs = append(refs, ref)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return s.mapError(err)
	}

	const insertProgress = `
		INSERT INTO chapter_progress (id, enrollment_id, section_id, chapter_id, completed)
		VALUES ($1, $2, $3, $4, FALSE)`

	for _, ref := range refs {
		if _, err = tx.Exec(ctx, insertProgress, progressID(), enrollmentID, ref.sectionID, ref.chapterID); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
