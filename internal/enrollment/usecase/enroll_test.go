package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFreeCourse(f *fixture, courseID int64, chapters ...int64) {
	f.db.courses[courseID] = &CourseInfo{
		ID:        courseID,
		Title:     "Intro to Baking",
		Published: true,
	}
	for i, ch := range chapters {
		f.db.chapterRefs[courseID] = append(f.db.chapterRefs[courseID], ChapterRef{
			SectionID: int64(100 + i),
			ChapterID: ch,
		})
		f.db.chapterOf[ch] = courseID
	}
}

func TestEnrollFreeCourse(t *testing.T) {
	f := newFixture(t)
	seedFreeCourse(f, 20, 1, 2, 3)

	out, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)
	assert.NotZero(t, out.EnrollmentID)

	// One progress row per chapter was seeded.
	assert.Len(t, f.db.progress[out.EnrollmentID], 3)

	require.Len(t, f.messaging.enrolled, 1)
	assert.Equal(t, "learner@example.com", f.messaging.enrolled[0].Email)
	assert.Equal(t, "Intro to Baking", f.messaging.enrolled[0].CourseTitle)
}

func TestEnrollIsIdempotent(t *testing.T) {
	f := newFixture(t)
	seedFreeCourse(f, 20, 1, 2)

	first, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})
	require.NoError(t, err)

	second, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})
	require.NoError(t, err)

	assert.Equal(t, first.EnrollmentID, second.EnrollmentID)
	assert.Len(t, f.db.enrollments, 1)
	assert.Len(t, f.messaging.enrolled, 1)
}

func TestEnrollPaidCourseRequiresPayment(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Pro Baking", PriceMinor: 4999, Published: true}

	_, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})

	assertBusiness(t, err, "This course requires payment", goerror.CodeForbidden)
	assert.Empty(t, f.db.enrollments)
}

func TestEnrollUnpublishedCourseLooksMissing(t *testing.T) {
	f := newFixture(t)
	f.db.courses[20] = &CourseInfo{ID: 20, Title: "Draft", Published: false}

	_, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})

	assertBusiness(t, err, "Course not found", goerror.CodeNotFound)
}

func TestEnrollUnknownCourse(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 999})

	assertBusiness(t, err, "Course not found", goerror.CodeNotFound)
}

func TestEnrollRequiresAuth(t *testing.T) {
	f := newFixture(t)
	seedFreeCourse(f, 20, 1)

	_, err := f.uc.Enroll(context.Background(), EnrollInput{CourseID: 20})

	assertBusiness(t, err, "Authentication required", goerror.CodeUnauthorized)
}

func TestCompleteChapterProgressAndCompletion(t *testing.T) {
	f := newFixture(t)
	seedFreeCourse(f, 20, 1, 2, 3)

	out, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})
	require.NoError(t, err)

	res, err := f.uc.CompleteChapter(authCtx(42), CompleteChapterInput{ChapterID: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 33, res.PercentComplete)
	assert.False(t, res.CourseCompleted)

	// Completing the same chapter again changes nothing.
	res, err = f.uc.CompleteChapter(authCtx(42), CompleteChapterInput{ChapterID: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 33, res.PercentComplete)

	_, err = f.uc.CompleteChapter(authCtx(42), CompleteChapterInput{ChapterID: 2})
	require.NoError(t, err)

	res, err = f.uc.CompleteChapter(authCtx(42), CompleteChapterInput{ChapterID: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 100, res.PercentComplete)
	assert.True(t, res.CourseCompleted)

	enrollment, err := f.db.GetEnrollmentByID(context.Background(), out.EnrollmentID)
	require.NoError(t, err)
	assert.Equal(t, "completed", enrollment.Status.String())
}

func TestCompleteChapterWithoutEnrollment(t *testing.T) {
	f := newFixture(t)
	seedFreeCourse(f, 20, 1)

	_, err := f.uc.CompleteChapter(authCtx(42), CompleteChapterInput{ChapterID: 1})

	assertBusiness(t, err, "You are not enrolled in this course", goerror.CodeForbidden)
}

func TestMyEnrollmentsListsOnlyCaller(t *testing.T) {
	f := newFixture(t)
	seedFreeCourse(f, 20, 1, 2)
	seedFreeCourse(f, 21, 4)

	_, err := f.uc.Enroll(authCtx(42), EnrollInput{CourseID: 20})
	require.NoError(t, err)
	_, err = f.uc.Enroll(authCtx(7), EnrollInput{CourseID: 21})
	require.NoError(t, err)

	out, err := f.uc.MyEnrollments(authCtx(42))
	require.NoError(t, err)
	require.Len(t, out.Enrollments, 1)
	assert.EqualValues(t, 20, out.Enrollments[0].CourseID)
	assert.EqualValues(t, 2, out.Enrollments[0].Progress.TotalChapters)
}
