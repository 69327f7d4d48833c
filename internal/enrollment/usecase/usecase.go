package usecase

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type CourseEnrolledEvent struct {
	UserID      int64
	Email       string
	CourseID    int64
	CourseTitle string
}

type repoMessaging interface {
	PublishCourseEnrolled(ctx context.Context, msg CourseEnrolledEvent) error
}

type repoDB interface {
	GetCourseInfo(ctx context.Context, courseID int64) (*CourseInfo, error)
	ListCourseChapterRefs(ctx context.Context, courseID int64) ([]ChapterRef, error)

	GetEnrollment(ctx context.Context, userID, courseID int64) (*entity.Enrollment, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*entity.Enrollment, error)
	CreateEnrollmentWithProgress(ctx context.Context, enrollment entity.Enrollment, progress []entity.ChapterProgress) error
	ListEnrollmentsWithProgress(ctx context.Context, userID int64) ([]entity.EnrollmentWithProgress, error)

	MarkChapterCompleted(ctx context.Context, enrollmentID, chapterID int64) (bool, error)
	GetProgressSummary(ctx context.Context, enrollmentID int64) (*entity.ProgressSummary, error)
	SetEnrollmentCompleted(ctx context.Context, enrollmentID int64) error
	GetEnrollmentForChapter(ctx context.Context, userID, chapterID int64) (*entity.Enrollment, error)
}

// CourseInfo is the course projection read from the catalog tables.
type CourseInfo struct {
	ID         int64
	Title      string
	PriceMinor int64
	Published  bool
}

// ChapterRef locates a chapter inside its section, used to seed
// progress rows.
type ChapterRef struct {
	SectionID int64
	ChapterID int64
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	uid           uid.NumberID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	UID           uid.NumberID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		uid:           dep.UID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("enrollment.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}
