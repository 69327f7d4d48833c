package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/payment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

type uc interface {
	Initialize(ctx context.Context, in usecase.InitializeInput) (*usecase.InitializeOutput, error)
	Verify(ctx context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error)
	Webhook(ctx context.Context, in usecase.WebhookInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Checkout (need authenticated)
	r.POST("/api/v1/payments/initialize", end.Initialize)
	r.GET("/api/v1/payments/verify/:reference", end.Verify)

	// Gateway callback (public, signature checked)
	r.POST("/api/v1/payments/webhook", end.Webhook)
}
