package usecase

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/instrument"
	"github.com/shandysiswandi/learnbite/internal/pkg/jwt"
	"github.com/shandysiswandi/learnbite/internal/pkg/validator"
	"github.com/shandysiswandi/learnbite/internal/review/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDB struct {
	courses  map[int64]bool
	enrolled map[[2]int64]bool
	reviews  []entity.ReviewWithAuthor
}

func newMemDB() *memDB {
	return &memDB{courses: map[int64]bool{}, enrolled: map[[2]int64]bool{}}
}

func (d *memDB) CourseExists(_ context.Context, courseID int64) (bool, error) {
	return d.courses[courseID], nil
}

func (d *memDB) IsEnrolled(_ context.Context, userID, courseID int64) (bool, error) {
	return d.enrolled[[2]int64{userID, courseID}], nil
}

func (d *memDB) CreateReview(_ context.Context, review entity.Review) error {
	for _, r := range d.reviews {
		if r.CourseID == review.CourseID && r.UserID == review.UserID {
			return goerror.ErrConflict
		}
	}
	d.reviews = append(d.reviews, entity.ReviewWithAuthor{Review: review, AuthorName: "Jane Learner"})
	return nil
}

func (d *memDB) ListReviews(_ context.Context, courseID int64, size, offset int32) ([]entity.ReviewWithAuthor, int64, error) {
	var all []entity.ReviewWithAuthor
	for _, r := range d.reviews {
		if r.CourseID == courseID {
			all = append(all, r)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if int(offset) >= len(all) {
		return nil, total, nil
	}
	end := int(offset + size)
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type tickingClock struct{ now time.Time }

func (c *tickingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

type fixture struct {
	uc *Usecase
	db *memDB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	f := &fixture{db: newMemDB()}
	f.uc = New(Dependency{
		RepoDB:     f.db,
		Validator:  v,
		UID:        &seqNumberID{next: 300},
		Clock:      &tickingClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
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

func TestReviewCreate(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = true
	f.db.enrolled[[2]int64{42, 20}] = true

	out, err := f.uc.ReviewCreate(authCtx(42), ReviewCreateInput{
		CourseID: 20,
		Rating:   5,
		Comment:  "Great course",
	})

	require.NoError(t, err)
	assert.NotZero(t, out.ReviewID)
	require.Len(t, f.db.reviews, 1)
	assert.EqualValues(t, 5, f.db.reviews[0].Rating)
}

func TestReviewCreateSecondReviewConflicts(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = true
	f.db.enrolled[[2]int64{42, 20}] = true

	_, err := f.uc.ReviewCreate(authCtx(42), ReviewCreateInput{CourseID: 20, Rating: 5})
	require.NoError(t, err)

	_, err = f.uc.ReviewCreate(authCtx(42), ReviewCreateInput{CourseID: 20, Rating: 3})
	assertBusiness(t, err, "You have already reviewed this course", goerror.CodeConflict)
	assert.Len(t, f.db.reviews, 1)
}

func TestReviewCreateRequiresEnrollment(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = true

	_, err := f.uc.ReviewCreate(authCtx(42), ReviewCreateInput{CourseID: 20, Rating: 4})

	assertBusiness(t, err, "You must be enrolled to review this course", goerror.CodeForbidden)
}

func TestReviewCreateUnknownCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.ReviewCreate(authCtx(42), ReviewCreateInput{CourseID: 999, Rating: 4})

	assertBusiness(t, err, "Course not found", goerror.CodeNotFound)
}

func TestReviewCreateRejectsOutOfRangeRating(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = true
	f.db.enrolled[[2]int64{42, 20}] = true

	for _, rating := range []int32{-1, 6} {
		_, err := f.uc.ReviewCreate(authCtx(42), ReviewCreateInput{CourseID: 20, Rating: rating})

		var ge *goerror.Error
		require.ErrorAs(t, err, &ge)
		assert.Equal(t, goerror.CodeInvalidInput, ge.Code())
	}
}

func TestReviewListPaginatesNewestFirst(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = true

	for userID := int64(1); userID <= 12; userID++ {
		f.db.enrolled[[2]int64{userID, 20}] = true
		_, err := f.uc.ReviewCreate(authCtx(userID), ReviewCreateInput{CourseID: 20, Rating: 4})
		require.NoError(t, err)
	}

	out, err := f.uc.ReviewList(context.Background(), ReviewListInput{CourseID: 20, Page: 1, Size: 10})
	require.NoError(t, err)
	assert.Len(t, out.Reviews, 10)
	assert.EqualValues(t, 12, out.Total)
	// Newest review first: the last enrolled user wrote it.
	assert.EqualValues(t, 12, out.Reviews[0].UserID)

	out, err = f.uc.ReviewList(context.Background(), ReviewListInput{CourseID: 20, Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Len(t, out.Reviews, 2)
}

func TestReviewListDefaultsAndCaps(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.ReviewList(context.Background(), ReviewListInput{CourseID: 20, Page: 0, Size: 0})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Page)
	assert.EqualValues(t, 10, out.Size)

	out, err = f.uc.ReviewList(context.Background(), ReviewListInput{CourseID: 20, Size: 500})
	require.NoError(t, err)
	assert.EqualValues(t, 100, out.Size)
}
