package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/enrollment/entity"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type memDB struct {
	courses     map[int64]*CourseInfo
	chapterRefs map[int64][]ChapterRef
	enrollments []entity.Enrollment
	progress    map[int64]map[int64]bool // enrollmentID -> chapterID -> completed
	chapterOf   map[int64]int64          // chapterID -> courseID
	createErr   error
}

func newMemDB() *memDB {
	return &memDB{
		courses:     map[int64]*CourseInfo{},
		chapterRefs: map[int64][]ChapterRef{},
		progress:    map[int64]map[int64]bool{},
		chapterOf:   map[int64]int64{},
	}
}

func (d *memDB) GetCourseInfo(_ context.Context, courseID int64) (*CourseInfo, error) {
	c, ok := d.courses[courseID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return c, nil
}

func (d *memDB) ListCourseChapterRefs(_ context.Context, courseID int64) ([]ChapterRef, error) {
	return d.chapterRefs[courseID], nil
}

func (d *memDB) GetEnrollment(_ context.Context, userID, courseID int64) (*entity.Enrollment, error) {
	for i := range d.enrollments {
		e := d.enrollments[i]
		if e.UserID == userID && e.CourseID == courseID {
			return &e, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) GetEnrollmentByID(_ context.Context, id int64) (*entity.Enrollment, error) {
	for i := range d.enrollments {
		if d.enrollments[i].ID == id {
			e := d.enrollments[i]
			return &e, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (d *memDB) CreateEnrollmentWithProgress(_ context.Context, enrollment entity.Enrollment, progress []entity.ChapterProgress) error {
	if d.createErr != nil {
		return d.createErr
	}
	for _, e := range d.enrollments {
		if e.UserID == enrollment.UserID && e.CourseID == enrollment.CourseID {
			return goerror.ErrConflict
		}
	}
	d.enrollments = append(d.enrollments, enrollment)
	rows := map[int64]bool{}
	for _, p := range progress {
		rows[p.ChapterID] = false
	}
	d.progress[enrollment.ID] = rows
	return nil
}

func (d *memDB) ListEnrollmentsWithProgress(_ context.Context, userID int64) ([]entity.EnrollmentWithProgress, error) {
	var out []entity.EnrollmentWithProgress
	for _, e := range d.enrollments {
		if e.UserID != userID {
			continue
		}
		var summary entity.ProgressSummary
		for _, done := range d.progress[e.ID] {
			summary.TotalChapters++
			if done {
				summary.CompletedChapters++
			}
		}
		out = append(out, entity.EnrollmentWithProgress{Enrollment: e, Progress: summary})
	}
	return out, nil
}

func (d *memDB) MarkChapterCompleted(_ context.Context, enrollmentID, chapterID int64) (bool, error) {
	rows, ok := d.progress[enrollmentID]
	if !ok {
		return false, goerror.ErrNotFound
	}
	if rows[chapterID] {
		return false, nil
	}
	rows[chapterID] = true
	return true, nil
}

func (d *memDB) GetProgressSummary(_ context.Context, enrollmentID int64) (*entity.ProgressSummary, error) {
	var summary entity.ProgressSummary
	for _, done := range d.progress[enrollmentID] {
		summary.TotalChapters++
		if done {
			summary.CompletedChapters++
		}
	}
	return &summary, nil
}

func (d *memDB) SetEnrollmentCompleted(_ context.Context, enrollmentID int64) error {
	for i := range d.enrollments {
		if d.enrollments[i].ID == enrollmentID {
			d.enrollments[i].Status = entity.EnrollmentStatusCompleted
			return nil
		}
	}
	return goerror.ErrNotFound
}

func (d *memDB) GetEnrollmentForChapter(_ context.Context, userID, chapterID int64) (*entity.Enrollment, error) {
	courseID, ok := d.chapterOf[chapterID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return d.GetEnrollment(context.Background(), userID, courseID)
}

type memMessaging struct {
	enrolled []CourseEnrolledEvent
}

func (m *memMessaging) PublishCourseEnrolled(_ context.Context, msg CourseEnrolledEvent) error {
	m.enrolled = append(m.enrolled, msg)
	return nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixture struct {
	uc        *Usecase
	db        *memDB
	messaging *memMessaging
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{db: newMemDB(), messaging: &memMessaging{}}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.messaging,
		Validator:     v,
		UID:           &seqNumberID{next: 500},
		Clock:         fixedClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func authCtx(userID int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{
		UserID:    userID,
		UserEmail: "learner@example.com",
		UserRole:  "LEARNER",
	})
}

func assertBusiness(t *testing.T, err error, msg string, code goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	require.ErrorAs(t, err, &ge)
	require.Equal(t, msg, ge.Msg())
	require.Equal(t, code, ge.Code())
}
