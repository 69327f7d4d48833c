package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type VerifyInput struct {
	Reference string `validate:"required"`
}

type VerifyOutput struct {
	Reference   string
	Status      string
	AmountMinor int64
	Currency    string
}

// Verify confirms a transaction directly with the gateway and settles
// it when the charge succeeded. It is the fallback path for payers
// whose webhook never arrived.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	payment, err := s.repoDB.GetPaymentByReference(ctx, in.Reference)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Payment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get payment", "reference", in.Reference, "error", err)
		return nil, goerror.NewServer(err)
	}

	if payment.UserID != clm.UserID {
		return nil, goerror.NewBusiness("Payment not found", goerror.CodeNotFound)
	}

	result, err := s.gateway.Verify(ctx, in.Reference)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify payment with gateway", "reference", in.Reference, "error", err)
		return nil, goerror.NewServer(err)
	}

	switch result.Status {
	case "success":
		if err := s.settle(ctx, in.Reference, result.Channel, result.PaidAt); err != nil {
			slog.ErrorContext(ctx, "failed to settle verified payment", "reference", in.Reference, "error", err)
			return nil, goerror.NewServer(err)
		}
	case "failed", "abandoned":
		if err := s.repoDB.MarkPaymentFailed(ctx, in.Reference); err != nil && !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to mark payment failed", "reference", in.Reference, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	return &VerifyOutput{
		Reference:   in.Reference,
		Status:      result.Status,
		AmountMinor: result.AmountMinor,
		Currency:    result.Currency,
	}, nil
}
