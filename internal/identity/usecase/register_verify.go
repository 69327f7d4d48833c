package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/otp"
)

type RegisterVerifyInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,len=6,numeric"`
}

// RegisterVerify consumes the pending OTP and creates the account. The
// stored code is matched as a string, never parsed, so leading zeros
// survive. Success deletes the payload and the failure counter; there
// is no replay.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) error {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	locked, err := s.repoCache.IsOtpLocked(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp lock", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if locked {
		return goerror.NewBusiness(
			"Account locked due to multiple failed attempts, Try again after 30 minutes",
			goerror.CodeTooManyRequest)
	}

	payload, err := s.repoCache.GetRegistrationOtp(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Invalid or expired OTP", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get registration otp payload", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if !otp.Match(in.Code, payload.Code) {
		return s.countOtpFailure(ctx, in.Email, s.repoCache.DeleteRegistrationOtp)
	}

	if err := s.repoCache.DeleteRegistrationOtp(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete registration otp payload", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}
	if err := s.repoCache.DeleteOtpAttempts(ctx, in.Email); err != nil {
		slog.ErrorContext(ctx, "failed to delete otp attempts", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	newUserID := s.uid.Generate()
	newUser := entity.NewUser{
		ID:        newUserID,
		CreatedBy: newUserID,
		UpdatedBy: newUserID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Role:      entity.ParseUserRole(payload.Role),
		AvatarURL: "https://ui-avatars.com/api/?name=" + url.QueryEscape(payload.FullName),
		Status:    entity.UserStatusActive,
	}

	if err := s.repoDB.CreateUser(ctx, newUser, payload.HashedPassword); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", payload.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   newUser.ID,
		Email:    newUser.Email,
		FullName: newUser.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	return nil
}
