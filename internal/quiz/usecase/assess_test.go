package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
	"github.com/shandysiswandi/learnbite/internal/shared/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedQuiz wires a quiz with n four-option questions whose correct
// answer is always option 0. Question IDs start at 1.
func seedQuiz(f *fixture, quizID, courseID int64, passing int32, n int) {
	f.db.quizzes[quizID] = &entity.Quiz{
		ID:           quizID,
		CourseID:     courseID,
		Title:        "Checkpoint",
		PassingScore: passing,
	}
	for i := 1; i <= n; i++ {
		f.db.questions[quizID] = append(f.db.questions[quizID], entity.Question{
			ID:           int64(i),
			QuizID:       quizID,
			Prompt:       "pick the first option",
			Options:      []string{"a", "b", "c", "d"},
			CorrectIndex: 0,
			Position:     int32(i),
		})
	}
}

func TestAssessAllCorrect(t *testing.T) {
	f := newFixture(t)
	seedQuiz(f, 10, 20, 70, 4)
	f.db.enrolled[[2]int64{42, 20}] = true

	out, err := f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0, 2: 0, 3: 0, 4: 0},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 4, out.Score)
	assert.EqualValues(t, 4, out.TotalQuestions)
	assert.EqualValues(t, 100, out.PercentageScore)
	assert.True(t, out.Passed)

	require.Len(t, f.db.attempts, 1)
	assert.Len(t, f.db.answers, 4)
}

func TestAssessUnansweredCountsAsWrong(t *testing.T) {
	f := newFixture(t)
	seedQuiz(f, 10, 20, 70, 4)
	f.db.enrolled[[2]int64{42, 20}] = true

	out, err := f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0, 2: 0, 3: 0}, // question 4 missing
	})

	require.NoError(t, err)
	assert.EqualValues(t, 3, out.Score)
	assert.EqualValues(t, 75, out.PercentageScore)

	// The unanswered question is persisted with selection -1.
	var missing entity.AttemptAnswer
	for _, a := range f.db.answers {
		if a.QuestionID == 4 {
			missing = a
		}
	}
	assert.EqualValues(t, -1, missing.SelectedIndex)
	assert.False(t, missing.Correct)
}

func TestAssessRoundsPercentageToNearest(t *testing.T) {
	f := newFixture(t)
	seedQuiz(f, 10, 20, 67, 3)
	f.db.enrolled[[2]int64{42, 20}] = true

	out, err := f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0, 2: 0, 3: 1},
	})

	require.NoError(t, err)
	// 2/3 is 66.67, rounded to 67, which meets the passing score.
	assert.EqualValues(t, 67, out.PercentageScore)
	assert.True(t, out.Passed)
}

func TestAssessExactPassingBoundary(t *testing.T) {
	f := newFixture(t)
	seedQuiz(f, 10, 20, 75, 4)
	f.db.enrolled[[2]int64{42, 20}] = true

	out, err := f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0, 2: 0, 3: 0, 4: 1},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 75, out.PercentageScore)
	assert.True(t, out.Passed)

	out, err = f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0, 2: 0, 3: 1, 4: 1},
	})

	require.NoError(t, err)
	assert.EqualValues(t, 50, out.PercentageScore)
	assert.False(t, out.Passed)
}

func TestAssessRequiresEnrollment(t *testing.T) {
	f := newFixture(t)
	seedQuiz(f, 10, 20, 70, 2)

	_, err := f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0},
	})

	assertBusiness(t, err, "Enroll in the course to take its quiz", goerror.CodeForbidden)
	assert.Empty(t, f.db.attempts)
}

func TestAssessRequiresAuth(t *testing.T) {
	f := newFixture(t)
	seedQuiz(f, 10, 20, 70, 2)

	_, err := f.uc.Assess(context.Background(), AssessInput{
		QuizID:  10,
		Answers: map[int64]int32{1: 0},
	})

	assertBusiness(t, err, "Authentication required", goerror.CodeUnauthorized)
}

func TestAssessUnknownQuiz(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Assess(authCtx(42, constant.RoleLearner), AssessInput{
		QuizID:  999,
		Answers: map[int64]int32{1: 0},
	})

	assertBusiness(t, err, "Quiz not found", goerror.CodeNotFound)
}

func TestQuizCreateOwnershipAndAuthorization(t *testing.T) {
	f := newFixture(t)
	f.db.educators[20] = 7

	in := QuizCreateInput{CourseID: 20, Title: "Checkpoint", PassingScore: 70}

	// Learners are not allowed at all.
	_, err := f.uc.QuizCreate(authCtx(42, constant.RoleLearner), in)
	assertBusiness(t, err, "Account not allowed", goerror.CodeForbidden)

	// An educator who does not own the course is refused.
	_, err = f.uc.QuizCreate(authCtx(8, constant.RoleEducator), in)
	assertBusiness(t, err, "Account not allowed", goerror.CodeForbidden)

	// The owning educator succeeds.
	out, err := f.uc.QuizCreate(authCtx(7, constant.RoleEducator), in)
	require.NoError(t, err)
	assert.NotZero(t, out.ID)

	// Admins bypass ownership.
	f.db.educators[21] = 7
	_, err = f.uc.QuizCreate(authCtx(1, constant.RoleAdmin), QuizCreateInput{
		CourseID: 21, Title: "Checkpoint", PassingScore: 70,
	})
	require.NoError(t, err)
}

func TestQuizCreateConflictWhenCourseHasQuiz(t *testing.T) {
	f := newFixture(t)
	f.db.educators[20] = 7
	f.db.createErr = goerror.ErrConflict

	_, err := f.uc.QuizCreate(authCtx(7, constant.RoleEducator), QuizCreateInput{
		CourseID: 20, Title: "Checkpoint", PassingScore: 70,
	})

	assertBusiness(t, err, "Course already has a quiz", goerror.CodeConflict)
}
