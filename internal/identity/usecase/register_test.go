package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Email:    email,
		Password: "s3cr3tPass!",
		FullName: "Jane Learner",
	}
}

func TestRegisterIssuesOtp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.uc.Register(ctx, registerInput("jane@example.com"))
	require.NoError(t, err)

	require.Len(t, f.email.registration, 1)
	assert.Equal(t, "jane@example.com", f.email.registration[0].To)
	assert.Equal(t, "123456", f.email.registration[0].Code)

	payload, ok := f.cache.regOtp["jane@example.com"]
	require.True(t, ok)
	assert.Equal(t, "LEARNER", payload.Role)
	assert.NotEqual(t, "s3cr3tPass!", payload.HashedPassword)
	assert.True(t, f.cache.cooldown["jane@example.com"])

	// No user row exists until the code is confirmed.
	assert.Empty(t, f.db.created)
}

func TestRegisterNormalizesEmail(t *testing.T) {
	f := newFixture(t)

	in := registerInput("  Jane@Example.COM ")
	err := f.uc.Register(context.Background(), in)
	require.NoError(t, err)

	_, ok := f.cache.regOtp["jane@example.com"]
	assert.True(t, ok)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.db.users["jane@example.com"] = &entity.User{ID: 7, Email: "jane@example.com"}

	err := f.uc.Register(context.Background(), registerInput("jane@example.com"))

	assertBusiness(t, err, "Email already registered", goerror.CodeConflict)
	assert.Empty(t, f.email.registration)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Password: "short",
		FullName: "J4ne",
	})

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
}

func TestRegisterCooldownBlocksImmediateResend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.uc.Register(ctx, registerInput("jane@example.com")))

	err := f.uc.Register(ctx, registerInput("jane@example.com"))
	assertBusiness(t, err, "Please wait 1 minute before requesting again", goerror.CodeTooManyRequest)
}

func TestRegisterFourthSendSpamLocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"

	for i := 0; i < 3; i++ {
		require.NoError(t, f.uc.Register(ctx, registerInput(email)))
		delete(f.cache.cooldown, email) // cooldown expires between sends
	}

	err := f.uc.Register(ctx, registerInput(email))
	assertBusiness(t, err,
		"Too many requests!, Please wait 1 hour before requesting again",
		goerror.CodeTooManyRequest)

	// The fourth send counted and locked; only three mails went out.
	assert.Len(t, f.email.registration, 3)
	assert.True(t, f.cache.spamLocked[email])

	// While spam-locked every further send is refused up front.
	err = f.uc.Register(ctx, registerInput(email))
	assertBusiness(t, err,
		"Too many requests!, Please wait 1 hour before requesting again",
		goerror.CodeTooManyRequest)
	assert.EqualValues(t, 4, f.cache.sendCount[email])
}

func TestRegisterEmailFailureLeavesNoCooldown(t *testing.T) {
	f := newFixture(t)
	f.email.err = errors.New("smtp unavailable")

	err := f.uc.Register(context.Background(), registerInput("jane@example.com"))

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, goerror.CodeInternal, ge.Code())

	// Undelivered code must not start the cooldown or stash a payload.
	assert.False(t, f.cache.cooldown["jane@example.com"])
	_, ok := f.cache.regOtp["jane@example.com"]
	assert.False(t, ok)
}

func TestRegisterResendReusesPendingCandidate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"

	require.NoError(t, f.uc.Register(ctx, registerInput(email)))
	delete(f.cache.cooldown, email)

	f.code.code = "654321"
	err := f.uc.RegisterResend(ctx, RegisterResendInput{Email: email})
	require.NoError(t, err)

	payload := f.cache.regOtp[email]
	assert.Equal(t, "654321", payload.Code)
	assert.Equal(t, "Jane Learner", payload.FullName)
	assert.Len(t, f.email.registration, 2)
}

func TestRegisterResendWithoutPendingRegistration(t *testing.T) {
	f := newFixture(t)

	err := f.uc.RegisterResend(context.Background(), RegisterResendInput{Email: "ghost@example.com"})

	assertBusiness(t, err, "No pending registration for this email", goerror.CodeNotFound)
}
