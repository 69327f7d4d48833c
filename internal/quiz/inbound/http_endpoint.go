package inbound

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/shandysiswandi/learnbite/internal/pkg/goerror"
	"github.com/shandysiswandi/learnbite/internal/pkg/router"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
	"github.com/shandysiswandi/learnbite/internal/quiz/usecase"
)

// HTTPEndpoint exposes HTTP handlers for quiz authoring and taking.
type HTTPEndpoint struct {
	uc uc
}

// QuizCreate attaches a quiz to an owned course.
// @Summary Create quiz
// @Description Creates the quiz for an owned course. One quiz per course.
// @Tags Quiz, Authoring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CreateQuizRequest true "Quiz payload"
// @Success 200 {object} router.successResponse{data=CreateQuizResponse} "Created quiz"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Course not found"
// @Failure 409 {object} router.errorResponse "Course already has a quiz"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/quizzes [post]
func (h *HTTPEndpoint) QuizCreate(r *router.Request) (any, error) {
	var req CreateQuizRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.QuizCreate(r.Context(), usecase.QuizCreateInput{
		CourseID:     req.CourseID,
		Title:        req.Title,
		PassingScore: req.PassingScore,
	})
	if err != nil {
		return nil, err
	}

	return CreateQuizResponse{ID: resp.ID}, nil
}

// QuestionAdd adds a question to an owned quiz.
// @Summary Add question
// @Description Adds a multiple-choice question with one correct option index.
// @Tags Quiz, Authoring
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body AddQuestionRequest true "Question payload"
// @Success 200 {object} router.successResponse{data=AddQuestionResponse} "Created question"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Quiz not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/quizzes/{id}/questions [post]
func (h *HTTPEndpoint) QuestionAdd(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req AddQuestionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.QuestionAdd(r.Context(), usecase.QuestionAddInput{
		QuizID:       id,
		Prompt:       req.Prompt,
		Options:      req.Options,
		CorrectIndex: req.CorrectIndex,
		Position:     req.Position,
	})
	if err != nil {
		return nil, err
	}

	return AddQuestionResponse{ID: resp.ID}, nil
}

// QuizGet returns the quiz of a course for enrolled learners.
// @Summary Get course quiz
// @Description Returns the quiz with questions. Correct answers are hidden from learners.
// @Tags Quiz
// @Security BearerAuth
// @Produce json
// @Param course_id query string true "Course ID"
// @Success 200 {object} router.successResponse{data=QuizResponse} "Quiz"
// @Failure 403 {object} router.errorResponse "Not enrolled"
// @Failure 404 {object} router.errorResponse "Quiz not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/quizzes [get]
func (h *HTTPEndpoint) QuizGet(r *router.Request) (any, error) {
	courseID, err := strconv.ParseInt(r.GetQuery("course_id"), 10, 64)
	if err != nil {
		return nil, goerror.NewInvalidFormat("course_id must be a number")
	}

	resp, err := h.uc.QuizGet(r.Context(), usecase.QuizGetInput{CourseID: courseID})
	if err != nil {
		return nil, err
	}

	questions := lo.Map(resp.Questions, func(q entity.Question, _ int) QuestionItem {
		item := QuestionItem{
			ID:       q.ID,
			Prompt:   q.Prompt,
			Options:  q.Options,
			Position: q.Position,
		}
		if q.CorrectIndex >= 0 {
			item.CorrectIndex = &q.CorrectIndex
		}
		return item
	})

	return QuizResponse{
		ID:           resp.Quiz.ID,
		CourseID:     resp.Quiz.CourseID,
		Title:        resp.Quiz.Title,
		PassingScore: resp.Quiz.PassingScore,
		Questions:    questions,
	}, nil
}

// Assess grades a quiz submission.
// @Summary Assess quiz
// @Description Grades the submitted answers, stores the attempt, and returns the result.
// @Tags Quiz
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body AssessRequest true "Answers keyed by question ID"
// @Success 200 {object} router.successResponse{data=AssessResponse} "Result"
// @Failure 403 {object} router.errorResponse "Not enrolled"
// @Failure 404 {object} router.errorResponse "Quiz not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/quizzes/{id}/assess [post]
func (h *HTTPEndpoint) Assess(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req AssessRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	answers := make(map[int64]int32, len(req.Answers))
	for k, v := range req.Answers {
		qID, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, goerror.NewInvalidFormat("answer keys must be question IDs")
		}
		answers[qID] = v
	}

	resp, err := h.uc.Assess(r.Context(), usecase.AssessInput{QuizID: id, Answers: answers})
	if err != nil {
		return nil, err
	}

	return AssessResponse{
		Score:           resp.Score,
		TotalQuestions:  resp.TotalQuestions,
		PercentageScore: resp.PercentageScore,
		Passed:          resp.Passed,
	}, nil
}

// MyAttempts lists the caller's attempts on a quiz.
// @Summary My attempts
// @Description Lists the authenticated user's attempts, newest first.
// @Tags Quiz
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} router.successResponse{data=MyAttemptsResponse} "Attempts"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/quizzes/{id}/attempts [get]
func (h *HTTPEndpoint) MyAttempts(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.MyAttempts(r.Context(), usecase.MyAttemptsInput{QuizID: id})
	if err != nil {
		return nil, err
	}

	attempts := lo.Map(resp.Attempts, func(a entity.Attempt, _ int) AttemptItem {
		return AttemptItem{
			ID:              a.ID,
			Score:           a.Score,
			PercentageScore: a.PercentageScore,
			Passed:          a.Passed,
			CreatedAt:       a.CreatedAt,
		}
	})

	return MyAttemptsResponse{Attempts: attempts}, nil
}
