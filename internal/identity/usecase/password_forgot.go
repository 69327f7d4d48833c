package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot issues a reset code. The user lookup happens before
// any OTP key is touched: an unknown email fails without creating
// state.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unavailable user", "email", in.Email)
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return err
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

	if err := s.repoEmail.SendPasswordResetCode(ctx, user.Email, user.FullName, code); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset otp email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.StoreResetOtp(ctx, in.Email, code, resetOtpTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store password reset otp", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.SetCooldown(ctx, in.Email, cooldownTTL); err != nil {
		slog.ErrorContext(ctx, "failed to set otp cooldown", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishPasswordResetRequested(ctx, PasswordResetRequestedEvent{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish password reset requested", "user_id", user.ID, "error", err)
	}

	return nil
}
