package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/learnbite/internal/payment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/idempotency"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/otp"
	"github.com/shandysiswandi/learnbite/internal/pkg/paygate"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// Platform fee split applied when a payment settles.
const (
	platformFeePercent = 5
	settleStateTTL     = 24 * time.Hour
)

type PaymentSucceededEvent struct {
	PaymentID   int64
	Reference   string
	UserID      int64
	Email       string
	CourseID    int64
	CourseTitle string
	AmountMinor int64
	Currency    string
}

type repoMessaging interface {
	PublishPaymentSucceeded(ctx context.Context, msg PaymentSucceededEvent) error
}

// CourseInfo is the catalog projection needed for checkout.
type CourseInfo struct {
	ID         int64
	EducatorID int64
	Title      string
	PriceMinor int64
	Published  bool
}

type repoDB interface {
	GetCourseInfo(ctx context.Context, courseID int64) (*CourseInfo, error)
	GetUserEmail(ctx context.Context, userID int64) (string, error)

	CreatePayment(ctx context.Context, payment entity.Payment) error
	GetPaymentByReference(ctx context.Context, reference string) (*entity.Payment, error)
	MarkPaymentSucceeded(ctx context.Context, reference string, fee, share int64, channel string, paidAt time.Time) error
	MarkPaymentFailed(ctx context.Context, reference string) error

	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
	// EnrollWithProgress inserts the enrollment and seeds progress rows
	// for every chapter in one transaction. Duplicate enrollments are
	// conflicts.
	EnrollWithProgress(ctx context.Context, enrollmentID, userID, courseID int64, progressID func() int64) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	gateway       paygate.Gateway
	idempotent    idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	refgen        otp.Generator
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Gateway       paygate.Gateway
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	RefCode       otp.Generator
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		gateway:       dep.Gateway,
		idempotent:    dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		refgen:        dep.RefCode,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("payment.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
