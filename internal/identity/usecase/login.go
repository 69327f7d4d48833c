package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
	Role        string
}

// Login verifies credentials behind its own lockout counter. The
// counter and lock keys are deliberately separate from the OTP ones:
// different threshold (5 vs 3) and window (30 min vs 5 min).
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	locked, err := s.repoCache.IsLoginLocked(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check login lock", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if locked {
		return nil, goerror.NewBusiness(
			"Too many failed attempts, your account is locked for 30 minutes",
			goerror.CodeTooManyRequest)
	}

	user, err := s.repoDB.GetUserLoginInfo(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user login info", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return nil, err
	}

	if !s.password.Verify(user.Password, in.Password) {
		return nil, s.countLoginFailure(ctx, in.Email, user.ID)
	}

	if err := s.repoCache.DeleteLoginAttempts(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete login attempts", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	acToken, err := s.jwt.Generate(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginOutput{AccessToken: acToken, Role: user.Role.String()}, nil
}

func (s *Usecase) countLoginFailure(ctx context.Context, email string, userID int64) error {
	slog.WarnContext(ctx, "password user account not match", "user_id", userID)

	n, err := s.repoCache.IncrementLoginAttempts(ctx, email, loginAttemptsWindow)
	if err != nil {
		slog.ErrorContext(ctx, "failed to increment login attempts", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if n >= maxLoginFails {
		if err := s.repoCache.SetLoginLock(ctx, email, loginLockTTL); err != nil {
			slog.ErrorContext(ctx, "failed to set login lock", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		return goerror.NewBusiness(
			"Too many failed attempts, your account is locked for 30 minutes",
			goerror.CodeTooManyRequest)
	}

	return goerror.NewBusiness(
		fmt.Sprintf("Invalid details. %d attempts left.", maxLoginFails-1-n),
		goerror.CodeUnauthorized)
}
