package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type RegisterResendInput struct {
	Email string `validate:"required,email"`
}

// RegisterResend re-issues the registration code for a still-pending
// candidate. The new code overwrites the old payload, so at most one
// pending code exists per email.
func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) error {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	payload, err := s.repoCache.GetRegistrationOtp(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("No pending registration for this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get registration otp payload", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.checkSendAllowed(ctx, in.Email); err != nil {
		return err
	}

	if err := s.recordSendAttempt(ctx, in.Email); err != nil {
		return err
	}

	code, err := s.codegen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoEmail.SendRegistrationCode(ctx, payload.Email, payload.FullName, code); err != nil {
		slog.ErrorContext(ctx, "failed to send registration otp email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	payload.Code = code
	if err := s.repoCache.StoreRegistrationOtp(ctx, *payload, registrationOtpTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store registration otp payload", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.SetCooldown(ctx, in.Email, cooldownTTL); err != nil {
		slog.ErrorContext(ctx, "failed to set otp cooldown", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
