package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=5,max=100,alphaspace"`
	Role     string `validate:"omitempty,oneof=LEARNER EDUCATOR"`
}

// Register stages a new account behind an email OTP. No user row is
// written here; the candidate lives in the cache until verified.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	if in.Role == "" {
		in.Role = entity.UserRoleLearner.String()
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.checkSendAllowed(ctx, in.Email); err != nil {
		return err
	}

	if err := s.recordSendAttempt(ctx, in.Email); err != nil {
		return err
	}

	return s.issueRegistrationOtp(ctx, in)
}

// issueRegistrationOtp hashes the password, emails the code, then
// stashes the payload and cooldown. Email failure aborts issuance, so
// the cooldown never outlives an undelivered code.
func (s *Usecase) issueRegistrationOtp(ctx context.Context, in RegisterInput) error {
	hashedPassword, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	code, err := s.codegen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoEmail.SendRegistrationCode(ctx, in.Email, in.FullName, code); err != nil {
		slog.ErrorContext(ctx, "failed to send registration otp email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	payload := entity.RegistrationOtpPayload{
		Email:          in.Email,
		FullName:       in.FullName,
		Role:           in.Role,
		HashedPassword: string(hashedPassword),
		Code:           code,
	}
	if err := s.repoCache.StoreRegistrationOtp(ctx, payload, registrationOtpTTL); err != nil {
		slog.ErrorContext(ctx, "failed to store registration otp payload", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.SetCooldown(ctx, in.Email, cooldownTTL); err != nil {
		slog.ErrorContext(ctx, "failed to set otp cooldown", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
