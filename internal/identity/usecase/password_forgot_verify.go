package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/otp"
)

type PasswordForgotVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

type PasswordForgotVerifyOutput struct {
	ResetToken string
}

// PasswordForgotVerify checks the reset code under the same attempt
// counting as registration. Success consumes the code and the counter
// and hands back a one-shot token for the actual password change.
func (s *Usecase) PasswordForgotVerify(ctx context.Context, in PasswordForgotVerifyInput) (*PasswordForgotVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgotVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	locked, err := s.repoCache.IsOtpLocked(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp lock", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if locked {
		return nil, goerror.NewBusiness(
			"Account locked due to multiple failed attempts, Try again after 30 minutes",
			goerror.CodeTooManyRequest)
	}

	code, err := s.repoCache.GetResetOtp(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get password reset otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !otp.Match(in.Code, code) {
		return nil, s.countOtpFailure(ctx, in.Email, s.repoCache.DeleteResetOtp)
	}

	// Both deletes are independent; order does not matter.
	if err := s.repoCache.DeleteResetOtp(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete password reset otp", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if err := s.repoCache.DeleteOtpAttempts(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete otp attempts", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	resetToken := s.oid.Generate()
	tokenHash, err := s.hmac.Hash(resetToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash reset token", "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoCache.StoreResetToken(ctx, in.Email, string(tokenHash), resetTokenTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store reset token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordForgotVerifyOutput{ResetToken: resetToken}, nil
}
