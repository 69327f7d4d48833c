package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email      string `validate:"required,email"`
	ResetToken string `validate:"required"`
	Password   string `validate:"required,password"`
}

// PasswordReset sets the new password after a verified reset code. The
// one-shot token from the verify step authorizes it; success also
// clears any login lockout so the user can sign in immediately.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	storedHash, err := s.repoCache.GetResetToken(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Invalid or expired reset token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get reset token", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if !s.hmac.Verify(storedHash, in.ResetToken) {
		return goerror.NewBusiness("Invalid or expired reset token", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserLoginInfo(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user login info", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if s.password.Verify(user.Password, in.Password) {
		return goerror.NewBusiness("New password cannot be same as old password", goerror.CodeInvalidInput)
	}

	newHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserCredential(ctx, user.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user credential", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.DeleteResetToken(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete reset token", "email", in.Email, "error", err)
	}
	if err := s.repoCache.DeleteLoginAttempts(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete login attempts", "email", in.Email, "error", err)
	}

	return nil
}
