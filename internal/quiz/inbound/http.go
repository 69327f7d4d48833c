package inbound

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/pkg/router"
	"github.com/shandysiswandi/learnbite/internal/quiz/usecase"
)

type uc interface {
	QuizCreate(ctx context.Context, in usecase.QuizCreateInput) (*usecase.QuizCreateOutput, error)
	QuestionAdd(ctx context.Context, in usecase.QuestionAddInput) (*usecase.QuestionAddOutput, error)
	QuizGet(ctx context.Context, in usecase.QuizGetInput) (*usecase.QuizGetOutput, error)
	Assess(ctx context.Context, in usecase.AssessInput) (*usecase.AssessOutput, error)
	MyAttempts(ctx context.Context, in usecase.MyAttemptsInput) (*usecase.MyAttemptsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authoring (need authenticated educator)
	r.POST("/api/v1/quizzes", end.QuizCreate)
	r.POST("/api/v1/quizzes/:id/questions", end.QuestionAdd)

	// Taking (need authenticated enrolled learner)
	r.GET("/api/v1/quizzes", end.QuizGet)
	r.POST("/api/v1/quizzes/:id/assess", end.Assess)
	r.GET("/api/v1/quizzes/:id/attempts", end.MyAttempts)
}
