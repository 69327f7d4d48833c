package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
)

type MyEnrollmentsOutput struct {
	Enrollments []entity.EnrollmentWithProgress
}

// MyEnrollments lists the caller's enrollments with their progress
// rollup, newest first.
func (s *Usecase) MyEnrollments(ctx context.Context) (*MyEnrollmentsOutput, error) {
	ctx, span := s.startSpan(ctx, "MyEnrollments")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.repoDB.ListEnrollmentsWithProgress(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list enrollments", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MyEnrollmentsOutput{Enrollments: enrollments}, nil
}
