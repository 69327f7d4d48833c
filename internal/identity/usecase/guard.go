package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

// Abuse-control windows. The lockout durations are part of the
// user-facing message text, so they are fixed here rather than
// configurable.
const (
	otpLockTTL      = 30 * time.Minute
	spamLockTTL     = time.Hour
	sendCountWindow = time.Hour // sliding, refreshed on every send
	cooldownTTL     = time.Minute

	registrationOtpTTL = 5 * time.Minute
	resetOtpTTL        = 15 * time.Minute
	otpAttemptsWindow  = 5 * time.Minute
	resetTokenTTL      = 15 * time.Minute

	loginAttemptsWindow = 30 * time.Minute
	loginLockTTL        = 30 * time.Minute
)

// Thresholds count post-increment values: the Nth increment that
// reaches the threshold is the one that locks.
const (
	maxOtpSends    = 4 // 3 sends pass, the 4th spam-locks
	maxOtpFailures = 3 // 2 wrong codes pass, the 3rd locks
	maxLoginFails  = 5 // 4 wrong passwords pass, the 5th locks
)

// checkSendAllowed gates every OTP send. Read-only; the three keys are
// checked in fixed priority order and the first hit wins.
func (s *Usecase) checkSendAllowed(ctx context.Context, email string) error {
	locked, err := s.repoCache.IsOtpLocked(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp lock", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if locked {
		return goerror.NewBusiness(
			"Account locked due to multiple failed attempts, Try again after 30 minutes",
			goerror.CodeTooManyRequest)
	}

	spamLocked, err := s.repoCache.IsSpamLocked(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp spam lock", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if spamLocked {
		return goerror.NewBusiness(
			"Too many requests!, Please wait 1 hour before requesting again",
			goerror.CodeTooManyRequest)
	}

	cooling, err := s.repoCache.IsCooldownActive(ctx, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check otp cooldown", "email", email, "error", err)
		return goerror.NewServer(err)
	}
	if cooling {
		return goerror.NewBusiness(
			"Please wait 1 minute before requesting again",
			goerror.CodeTooManyRequest)
	}

	return nil
}

// recordSendAttempt counts a send inside the sliding one-hour window.
// The increment is atomic, so concurrent sends for one email cannot
// both observe a pre-threshold count.
func (s *Usecase) recordSendAttempt(ctx context.Context, email string) error {
	n, err := s.repoCache.IncrementSendCount(ctx, email, sendCountWindow)
	if err != nil {
		slog.ErrorContext(ctx, "failed to increment otp send count", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if n >= maxOtpSends {
		if err := s.repoCache.SetSpamLock(ctx, email, spamLockTTL); err != nil {
			slog.ErrorContext(ctx, "failed to set otp spam lock", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		return goerror.NewBusiness(
			"Too many requests!, Please wait 1 hour before requesting again",
			goerror.CodeTooManyRequest)
	}

	return nil
}

// countOtpFailure counts a wrong code and locks on the third one.
// Locking also deletes the pending payload so an attacker cannot keep
// guessing against a code that outlives the lock.
func (s *Usecase) countOtpFailure(ctx context.Context, email string, deletePending func(context.Context, string) error) error {
	n, err := s.repoCache.IncrementOtpAttempts(ctx, email, otpAttemptsWindow)
	if err != nil {
		slog.ErrorContext(ctx, "failed to increment otp attempts", "email", email, "error", err)
		return goerror.NewServer(err)
	}

	if n >= maxOtpFailures {
		if err := s.repoCache.SetOtpLock(ctx, email, otpLockTTL); err != nil {
			slog.ErrorContext(ctx, "failed to set otp lock", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		if err := deletePending(ctx, email); err != nil {
			slog.ErrorContext(ctx, "failed to delete pending otp on lockout", "email", email, "error", err)
			return goerror.NewServer(err)
		}

		return goerror.NewBusiness(
			"Too many failed attempts, your account is locked for 30 minutes",
			goerror.CodeTooManyRequest)
	}

	return goerror.NewBusiness(
		fmt.Sprintf("Invalid OTP. %d attempts left.", maxOtpFailures-1-n),
		goerror.CodeUnauthorized)
}
