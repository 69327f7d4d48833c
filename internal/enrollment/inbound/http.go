package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/enrollment/usecase"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
)

type uc interface {
	Enroll(ctx context.Context, in usecase.EnrollInput) (*usecase.EnrollOutput, error)
	MyEnrollments(ctx context.Context) (*usecase.MyEnrollmentsOutput, error)
	CompleteChapter(ctx context.Context, in usecase.CompleteChapterInput) (*usecase.CompleteChapterOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Enrollment (need authenticated)
	r.POST("/api/v1/enrollments", end.Enroll)
	r.GET("/api/v1/enrollments", end.MyEnrollments)
	r.POST("/api/v1/chapters/:id/complete", end.CompleteChapter)
}
