package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLoginUser(t *testing.T, f *fixture, email, password string, status entity.UserStatus) {
	t.Helper()

	hashed, err := f.uc.password.Hash(password)
	require.NoError(t, err)

	f.db.loginInfo[email] = &entity.UserLoginInfo{
		ID:       42,
		Email:    email,
		Role:     entity.UserRoleLearner,
		Status:   status,
		Password: string(hashed),
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)
	seedLoginUser(t, f, "jane@example.com", "s3cr3tPass!", entity.UserStatusActive)

	out, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "s3cr3tPass!",
	})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.AccessToken)
	assert.Equal(t, "LEARNER", out.Role)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	assertBusiness(t, err, "invalid email or password", goerror.CodeUnauthorized)
}

func TestLoginBannedAccount(t *testing.T) {
	f := newFixture(t)
	seedLoginUser(t, f, "jane@example.com", "s3cr3tPass!", entity.UserStatusBanned)

	_, err := f.uc.Login(context.Background(), LoginInput{
		Email:    "jane@example.com",
		Password: "s3cr3tPass!",
	})

	assertBusiness(t, err, "account is banned", goerror.CodeForbidden)
}

func TestLoginFifthFailureLocks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedLoginUser(t, f, email, "s3cr3tPass!", entity.UserStatusActive)

	wrong := LoginInput{Email: email, Password: "wrongpass1"}

	for i := 1; i <= 4; i++ {
		_, err := f.uc.Login(ctx, wrong)
		assertBusiness(t, err,
			fmt.Sprintf("Invalid details. %d attempts left.", 4-i),
			goerror.CodeUnauthorized)
	}

	_, err := f.uc.Login(ctx, wrong)
	assertBusiness(t, err,
		"Too many failed attempts, your account is locked for 30 minutes",
		goerror.CodeTooManyRequest)
	assert.True(t, f.cache.loginLocked[email])

	// Correct credentials are also refused for the lock window.
	_, err = f.uc.Login(ctx, LoginInput{Email: email, Password: "s3cr3tPass!"})
	assertBusiness(t, err,
		"Too many failed attempts, your account is locked for 30 minutes",
		goerror.CodeTooManyRequest)
}

func TestLoginSuccessClearsFailureCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	email := "jane@example.com"
	seedLoginUser(t, f, email, "s3cr3tPass!", entity.UserStatusActive)

	_, err := f.uc.Login(ctx, LoginInput{Email: email, Password: "wrongpass1"})
	assertBusiness(t, err, "Invalid details. 3 attempts left.", goerror.CodeUnauthorized)

	_, err = f.uc.Login(ctx, LoginInput{Email: email, Password: "s3cr3tPass!"})
	require.NoError(t, err)

	_, ok := f.cache.loginAttempts[email]
	assert.False(t, ok)
}
