package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/learnbite/internal/pkg/clock"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/uid"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetCourseEducator(ctx context.Context, courseID int64) (int64, error)
	IsActivelyEnrolled(ctx context.Context, userID, courseID int64) (bool, error)

	CreateQuiz(ctx context.Context, quiz entity.Quiz) error
	GetQuizByID(ctx context.Context, id int64) (*entity.Quiz, error)
	GetQuizByCourse(ctx context.Context, courseID int64) (*entity.Quiz, error)

	CreateQuestion(ctx context.Context, question entity.Question) error
	ListQuestions(ctx context.Context, quizID int64) ([]entity.Question, error)

	CreateAttempt(ctx context.Context, attempt entity.Attempt, answers []entity.AttemptAnswer) error
	ListAttemptsByUser(ctx context.Context, quizID, userID int64) ([]entity.Attempt, error)
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	enforcer  *casbin.Enforcer
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	Enforcer   *casbin.Enforcer
	UID        uid.NumberID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		enforcer:  dep.Enforcer,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("quiz.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

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

// courseOwnedBy verifies the caller owns the course the quiz hangs off.
func (s *Usecase) courseOwnedBy(ctx context.Context, clm *jwt.Claims, courseID int64) error {
	educatorID, err := s.repoDB.GetCourseEducator(ctx, courseID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Course not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get course educator", "course_id", courseID, "error", err)
		return goerror.NewServer(err)
	}

	if educatorID != clm.UserID && clm.UserRole != constant.RoleAdmin {
		return goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return nil
}
