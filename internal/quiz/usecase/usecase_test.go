package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
	"github.com/stretchr/testify/require"
)

type memDB struct {
	educators  map[int64]int64 // courseID -> educatorID
	enrolled   map[[2]int64]bool
	quizzes    map[int64]*entity.Quiz
	questions  map[int64][]entity.Question
	attempts   []entity.Attempt
	answers    []entity.AttemptAnswer
	createErr  error
	attemptErr error
}

func newMemDB() *memDB {
	return &memDB{
		educators: map[int64]int64{},
		enrolled:  map[[2]int64]bool{},
		quizzes:   map[int64]*entity.Quiz{},
		questions: map[int64][]entity.Question{},
	}
}

func (d *memDB) GetCourseEducator(_ context.Context, courseID int64) (int64, error) {
	id, ok := d.educators[courseID]
	if !ok {
		return 0, goerror.ErrNotFound
	}
	return id, nil
}

func (d *memDB) IsActivelyEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	return d.enrolled[[2]int64{userID, courseID}], nil
}

func (d *memDB) CreateQuiz(_ context.Context, quiz entity.Quiz) error {
	if d.createErr != nil {
		return d.createErr
	}
	d.quizzes[quiz.ID] = &quiz
	return nil
}

func (d *memDB) GetQuizByID(_ context.Context, id int64) (*entity.Quiz, error) {
	q, ok := d.quizzes[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return q, nil
}

func (d *memDB) GetQuizByCourse(_ context.Context, courseID int64) (*entity.Quiz, error) {
	for _, q := range d.quizzes {
		if q.CourseID == courseID {
			return q, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) CreateQuestion(_ context.Context, question entity.Question) error {
	d.questions[question.QuizID] = append(d.questions[question.QuizID], question)
	return nil
}

func (d *memDB) ListQuestions(_ context.Context, quizID int64) ([]entity.Question, error) {
	return d.questions[quizID], nil
}

func (d *memDB) CreateAttempt(_ context.Context, attempt entity.Attempt, answers []entity.AttemptAnswer) error {
	if d.attemptErr != nil {
		return d.attemptErr
	}
	d.attempts = append(d.attempts, attempt)
	d.answers = append(d.answers, answers...)
	return nil
}

func (d *memDB) ListAttemptsByUser(_ context.Context, quizID, userID int64) ([]entity.Attempt, error) {
	var out []entity.Attempt
	for _, a := range d.attempts {
		if a.QuizID == quizID && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`
	m, err := model.NewModelFromString(rbacModel)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicies([][]string{
		{constant.RoleAdmin, "*", "*"},
		{constant.RoleEducator, constant.PermQuizzes, constant.PermActCreate},
		{constant.RoleEducator, constant.PermQuizzes, constant.PermActUpdate},
	})
	require.NoError(t, err)

	return e
}

type fixture struct {
	uc *Usecase
	db *memDB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	db := newMemDB()
	uc := New(Dependency{
		RepoDB:     db,
		Validator:  v,
		Enforcer:   newTestEnforcer(t),
		UID:        &seqNumberID{next: 1000},
		Clock:      fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: db}
}

func authCtx(userID int64, role string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		UserID:    userID,
		UserEmail: "user@example.com",
		UserRole:  role,
	})
}

func assertBusiness(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, msg, ge.Msg())
	require.Equal(t, code, ge.Code())
}
