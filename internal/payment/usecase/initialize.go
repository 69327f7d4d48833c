package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/payment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/paygate"
)

type InitializeInput struct {
	CourseID int64 `validate:"required"`
}

type InitializeOutput struct {
	Reference        string
	AuthorizationURL string
	AmountMinor      int64
	Currency         string
}

// Initialize opens a checkout session for a paid course and records a
// pending payment under a fresh reference.
func (s *Usecase) Initialize(ctx context.Context, in InitializeInput) (*InitializeOutput, error) {
	ctx, span := s.startSpan(ctx, "Initialize")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	course, err := s.repoDB.GetCourseInfo(ctx, in.CourseID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course info", "course_id", in.CourseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !course.Published {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if course.PriceMinor == 0 {
		return nil, goerror.NewBusiness("This course is free, enroll directly", goerror.CodeInvalidInput)
	}

	enrolled, err := s.repoDB.IsEnrolled(ctx, clm.UserID, course.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check enrollment", "course_id", course.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if enrolled {
		return nil, goerror.NewBusiness("You are already enrolled in this course", goerror.CodeConflict)
	}

	rand6, err := s.refgen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate reference suffix", "error", err)
		return nil, goerror.NewServer(err)
	}
	reference := fmt.Sprintf("COURSE-%d-%s", s.clock.Now().UnixMilli(), rand6)

	currency := s.cfg.GetString("modules.payment.currency")

	result, err := s.gateway.Initialize(ctx, paygate.InitializeInput{
		Reference:   reference,
		Email:       clm.UserEmail,
		AmountMinor: course.PriceMinor,
		Currency:    currency,
		CallbackURL: s.cfg.GetString("modules.payment.callback_url"),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize payment", "reference", reference, "error", err)
		return nil, goerror.NewServer(err)
	}

	payment := entity.Payment{
		ID:          s.uid.Generate(),
		Reference:   reference,
		UserID:      clm.UserID,
		CourseID:    course.ID,
		AmountMinor: course.PriceMinor,
		Currency:    currency,
		Status:      entity.PaymentStatusPending,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.repoDB.CreatePayment(ctx, payment); err != nil {
		slog.ErrorContext(ctx, "failed to create payment", "reference", reference, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &InitializeOutput{
		Reference:        reference,
		AuthorizationURL: result.AuthorizationURL,
		AmountMinor:      course.PriceMinor,
		Currency:         currency,
	}, nil
}
