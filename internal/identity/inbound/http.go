package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/identity/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) error
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) error

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordForgotVerify(ctx context.Context, in usecase.PasswordForgotVerifyInput) (*usecase.PasswordForgotVerifyOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) error
	ProfileUpdateAvatar(ctx context.Context, in usecase.ProfileUpdateAvatarInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Registration
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/register/verify", end.RegisterVerify)
	r.POST("/api/v1/auth/register/resend", end.RegisterResend)

	// Authentication
	r.POST("/api/v1/auth/login", end.Login)

	// Password Recovery
	r.POST("/api/v1/auth/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/auth/password/forgot/verify", end.PasswordForgotVerify)
	r.POST("/api/v1/auth/password/reset", end.PasswordReset)

	// Profile (need authenticated)
	r.GET("/api/v1/auth/profile", end.Profile)
	r.PATCH("/api/v1/auth/profile", end.ProfileUpdate)
	r.PUT("/api/v1/auth/profile/avatar", end.ProfileUpdateAvatar)
}
