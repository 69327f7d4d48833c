package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/learnbite/internal/course/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/config"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/storage"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreateCourse(ctx context.Context, course entity.Course) error
	GetCourseByID(ctx context.Context, id int64) (*entity.Course, error)
	GetCourseBySlug(ctx context.Context, slug string) (*entity.Course, error)
	UpdateCourse(ctx context.Context, course entity.Course) error
	SetCourseStatus(ctx context.Context, id int64, status entity.CourseStatus) error
	SetCourseApproved(ctx context.Context, id int64, approved bool) error
	SetCourseFeatured(ctx context.Context, id int64, featured bool) error

	CreateSection(ctx context.Context, section entity.Section) error
	GetSectionByID(ctx context.Context, id int64) (*entity.Section, error)
	CreateChapter(ctx context.Context, chapter entity.Chapter) error
	GetChapterByID(ctx context.Context, id int64) (*entity.Chapter, error)
	GetSectionsWithChapters(ctx context.Context, courseID int64) ([]entity.SectionWithChapters, error)

	ListPublishedCourses(ctx context.Context, filter entity.CourseListFilter) ([]entity.Course, int64, error)
	ListCoursesByEducator(ctx context.Context, educatorID int64) ([]entity.Course, error)

	IsEnrolled(ctx context.Context, userID, courseID int64) (bool, error)
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	cfg       config.Config
	storage   storage.Storage
	enforcer  *casbin.Enforcer
	uid       uid.NumberID
	uuid      uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	Config     config.Config
	Storage    storage.Storage
	Enforcer   *casbin.Enforcer
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		cfg:       dep.Config,
		storage:   dep.Storage,
		enforcer:  dep.Enforcer,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("course.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

// authenticatedAndAuthorized checks the caller's role against the
// static policy table. Subjects are role names, not user IDs.
func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	ok, err := s.enforcer.Enforce(clm.UserRole, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// ownedCourse loads a course and verifies the caller owns it. Admins
// pass the ownership check.
func (s *Usecase) ownedCourse(ctx context.Context, clm *jwt.Claims, courseID int64) (*entity.Course, error) {
	course, err := s.repoDB.GetCourseByID(ctx, courseID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course", "course_id", courseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if course.EducatorID != clm.UserID && clm.UserRole != constant.RoleAdmin {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return course, nil
}
