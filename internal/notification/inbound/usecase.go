package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumePasswordResetRequested(ctx context.Context, in usecase.ConsumePasswordResetRequestedInput) error
	ConsumePaymentSucceeded(ctx context.Context, in usecase.ConsumePaymentSucceededInput) error
	ConsumeCourseEnrolled(ctx context.Context, in usecase.ConsumeCourseEnrolledInput) error
}
