package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/learnbite/internal/payment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/idempotency"
)

// settle finalizes a successful charge exactly once per reference:
// mark the payment, enroll idempotently with seeded progress, and
// publish the settled event. Double deliveries short-circuit on the
// idempotency state.
func (s *Usecase) settle(ctx context.Context, reference, channel string, paidAt time.Time) error {
	return s.idempotent.Exec(ctx, "payment_settle:"+reference, func(ctx context.Context) error {
		payment, err := s.repoDB.GetPaymentByReference(ctx, reference)
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "settle for unknown payment reference", "reference", reference)
			return nil
		}
		if err != nil {
			return err
		}

		if payment.Status == entity.PaymentStatusSuccess {
			return nil
		}

		fee := payment.AmountMinor * platformFeePercent / 100
		share := payment.AmountMinor - fee

		if err := s.repoDB.MarkPaymentSucceeded(ctx, reference, fee, share, channel, paidAt); err != nil {
			return err
		}

		if err := s.repoDB.EnrollWithProgress(ctx, s.uid.Generate(), payment.UserID, payment.CourseID, s.uid.Generate); err != nil {
			if !errors.Is(err, goerror.ErrConflict) {
				return err
			}
			// Already enrolled, nothing to seed.
		}

		course, err := s.repoDB.GetCourseInfo(ctx, payment.CourseID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load course for settled payment", "reference", reference, "error", err)
			return nil
		}
		email, err := s.repoDB.GetUserEmail(ctx, payment.UserID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to load payer email", "reference", reference, "error", err)
			return nil
		}

		if err := s.repoMessaging.PublishPaymentSucceeded(ctx, PaymentSucceededEvent{
			PaymentID:   payment.ID,
			Reference:   payment.Reference,
			UserID:      payment.UserID,
			Email:       email,
			CourseID:    payment.CourseID,
			CourseTitle: course.Title,
			AmountMinor: payment.AmountMinor,
			Currency:    payment.Currency,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to publish payment succeeded event", "reference", reference, "error", err)
		}

		return nil
	}, idempotency.WithStateTTL(settleStateTTL))
}
