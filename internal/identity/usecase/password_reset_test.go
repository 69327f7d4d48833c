package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(f *fixture, email string) {
	f.db.users[email] = &entity.User{
		ID:       42,
		Email:    email,
		FullName: "Jane Learner",
		Role:     entity.UserRoleLearner,
		Status:   entity.UserStatusActive,
	}
}

func TestPasswordForgotIssuesResetCode(t *testing.T) {
	f := newFixture(t)
	seedUser(f, "jane@example.com")

	err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "jane@example.com"})
	require.NoError(t, err)

	require.Len(t, f.email.reset, 1)
	assert.Equal(t, "123456", f.email.reset[0].Code)
	assert.Equal(t, "123456", f.cache.resetOtp["jane@example.com"])
	assert.True(t, f.cache.cooldown["jane@example.com"])

	require.Len(t, f.messaging.resets, 1)
	assert.EqualValues(t, 42, f.messaging.resets[0].UserID)
}

func TestPasswordForgotUnknownEmailTouchesNoState(t *testing.T) {
	f := newFixture(t)

	err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "ghost@example.com"})

	assertBusiness(t, err, "User not found", goerror.CodeNotFound)

	// The lookup failed before any OTP key was written.
	assert.Empty(t, f.cache.sendCount)
	assert.Empty(t, f.cache.cooldown)
	assert.Empty(t, f.cache.resetOtp)
	assert.Empty(t, f.email.reset)
}

func TestPasswordForgotSharesSendBudgetWithRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedUser(f, email)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email}))
		delete(f.cache.cooldown, email)
	}

	err := f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email})
	assertBusiness(t, err,
		"Too many requests!, Please wait 1 hour before requesting again",
		goerror.CodeTooManyRequest)
}

func TestPasswordForgotVerifyReturnsToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedUser(f, email)
	require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email}))

	out, err := f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{Email: email, Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "reset-token-1", out.ResetToken)

	// Only the HMAC of the token is stored.
	stored := f.cache.resetToken[email]
	assert.NotEmpty(t, stored)
	assert.NotEqual(t, out.ResetToken, stored)

	// The code is one-shot.
	_, err = f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{Email: email, Code: "123456"})
	assertBusiness(t, err, "Invalid or expired OTP", goerror.CodeUnauthorized)
}

func TestPasswordForgotVerifyThirdFailureLocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedUser(f, email)
	require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email}))

	wrong := PasswordForgotVerifyInput{Email: email, Code: "999999"}

	_, err := f.uc.PasswordForgotVerify(ctx, wrong)
	assertBusiness(t, err, "Invalid OTP. 1 attempts left.", goerror.CodeUnauthorized)

	_, err = f.uc.PasswordForgotVerify(ctx, wrong)
	assertBusiness(t, err, "Invalid OTP. 0 attempts left.", goerror.CodeUnauthorized)

	_, err = f.uc.PasswordForgotVerify(ctx, wrong)
	assertBusiness(t, err,
		"Too many failed attempts, your account is locked for 30 minutes",
		goerror.CodeTooManyRequest)

	_, ok := f.cache.resetOtp[email]
	assert.False(t, ok)
}

func TestPasswordResetFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedUser(f, email)
	seedLoginUser(t, f, email, "oldPassword1", entity.UserStatusActive)
	f.cache.loginAttempts[email] = 3

	require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email}))
	out, err := f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{Email: email, Code: "123456"})
	require.NoError(t, err)

	err = f.uc.PasswordReset(ctx, PasswordResetInput{
		Email:      email,
		ResetToken: out.ResetToken,
		Password:   "newPassword1",
	})
	require.NoError(t, err)

	newHash, ok := f.db.credentials[42]
	require.True(t, ok)
	assert.True(t, f.uc.password.Verify(newHash, "newPassword1"))

	// Token is one-shot and the login lockout counter is cleared.
	_, ok = f.cache.resetToken[email]
	assert.False(t, ok)
	_, ok = f.cache.loginAttempts[email]
	assert.False(t, ok)
}

func TestPasswordResetRejectsSamePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedUser(f, email)
	seedLoginUser(t, f, email, "oldPassword1", entity.UserStatusActive)

	require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email}))
	out, err := f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{Email: email, Code: "123456"})
	require.NoError(t, err)

	err = f.uc.PasswordReset(ctx, PasswordResetInput{
		Email:      email,
		ResetToken: out.ResetToken,
		Password:   "oldPassword1",
	})

	assertBusiness(t, err, "New password cannot be same as old password", goerror.CodeInvalidInput)
}

func TestPasswordResetRejectsBadToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedUser(f, email)
	seedLoginUser(t, f, email, "oldPassword1", entity.UserStatusActive)

	require.NoError(t, f.uc.PasswordForgot(ctx, PasswordForgotInput{Email: email}))
	_, err := f.uc.PasswordForgotVerify(ctx, PasswordForgotVerifyInput{Email: email, Code: "123456"})
	require.NoError(t, err)

	err = f.uc.PasswordReset(ctx, PasswordResetInput{
		Email:      email,
		ResetToken: "forged-token",
		Password:   "newPassword1",
	})

	assertBusiness(t, err, "Invalid or expired reset token", goerror.CodeUnauthorized)
}
