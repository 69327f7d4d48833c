package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stageRegistration(t *testing.T, f *fixture, email, code string) {
	t.Helper()

	f.code.code = code
	require.NoError(t, f.uc.Register(context.Background(), registerInput(email)))
	delete(f.cache.cooldown, email)
}

func TestRegisterVerifyCreatesUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stageRegistration(t, f, "jane@example.com", "123456")

	err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "123456"})
	require.NoError(t, err)

	require.Len(t, f.db.created, 1)
	user := f.db.created[0]
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, entity.UserRoleLearner, user.Role)
	assert.Equal(t, entity.UserStatusActive, user.Status)
	assert.Equal(t, user.ID, user.CreatedBy)

	require.Len(t, f.messaging.registered, 1)
	assert.Equal(t, user.ID, f.messaging.registered[0].UserID)

	// The code is consumed; a replay reads no payload.
	err = f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: "jane@example.com", Code: "123456"})
	assertBusiness(t, err, "Invalid or expired OTP", goerror.CodeUnauthorized)
}

func TestRegisterVerifyMatchesLeadingZeroCode(t *testing.T) {
	f := newFixture(t)
	stageRegistration(t, f, "jane@example.com", "012345")

	err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		Email: "jane@example.com",
		Code:  "012345",
	})

	require.NoError(t, err)
}

func TestRegisterVerifyCountsFailuresAndLocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	stageRegistration(t, f, email, "123456")

	wrong := RegisterVerifyInput{Email: email, Code: "999999"}

	err := f.uc.RegisterVerify(ctx, wrong)
	assertBusiness(t, err, "Invalid OTP. 1 attempts left.", goerror.CodeUnauthorized)

	err = f.uc.RegisterVerify(ctx, wrong)
	assertBusiness(t, err, "Invalid OTP. 0 attempts left.", goerror.CodeUnauthorized)

	err = f.uc.RegisterVerify(ctx, wrong)
	assertBusiness(t, err,
		"Too many failed attempts, your account is locked for 30 minutes",
		goerror.CodeTooManyRequest)

	// The lock also wiped the pending payload.
	_, ok := f.cache.regOtp[email]
	assert.False(t, ok)

	// Even the right code is refused while locked.
	err = f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: email, Code: "123456"})
	assertBusiness(t, err,
		"Account locked due to multiple failed attempts, Try again after 30 minutes",
		goerror.CodeTooManyRequest)
}

func TestRegisterVerifySuccessResetsFailureCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	stageRegistration(t, f, email, "123456")

	err := f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: email, Code: "999999"})
	assertBusiness(t, err, "Invalid OTP. 1 attempts left.", goerror.CodeUnauthorized)

	err = f.uc.RegisterVerify(ctx, RegisterVerifyInput{Email: email, Code: "123456"})
	require.NoError(t, err)

	_, ok := f.cache.otpAttempts[email]
	assert.False(t, ok)
}

func TestRegisterVerifyConflictOnConcurrentCreate(t *testing.T) {
	f := newFixture(t)
	stageRegistration(t, f, "jane@example.com", "123456")
	f.db.createErr = goerror.ErrConflict

	err := f.uc.RegisterVerify(context.Background(), RegisterVerifyInput{
		Email: "jane@example.com",
		Code:  "123456",
	})

	assertBusiness(t, err, "Email already registered", goerror.CodeConflict)
}
