package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/pkg/router"
	"github.com/shandysiswandi/learnbite/internal/review/usecase"
)

type uc interface {
	ReviewCreate(ctx context.Context, in usecase.ReviewCreateInput) (*usecase.ReviewCreateOutput, error)
	ReviewList(ctx context.Context, in usecase.ReviewListInput) (*usecase.ReviewListOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Review listing (public)
	r.GET("/api/v1/reviews", end.List)

	// Review submission (need authenticated)
	r.POST("/api/v1/reviews", end.Create)
}
