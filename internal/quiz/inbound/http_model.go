package inbound

import "time"

type CreateQuizRequest struct {
	CourseID     int64  `json:"course_id,string"`
	Title        string `json:"title"`
	PassingScore int32  `json:"passing_score"`
}

type CreateQuizResponse struct {
	ID int64 `json:"id,string"`
}

type AddQuestionRequest struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int32    `json:"correct_index"`
	Position     int32    `json:"position"`
}

type AddQuestionResponse struct {
	ID int64 `json:"id,string"`
}

type QuestionItem struct {
	ID           int64    `json:"id,string"`
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex *int32   `json:"correct_index,omitempty"`
	Position     int32    `json:"position"`
}

type QuizResponse struct {
	ID           int64          `json:"id,string"`
	CourseID     int64          `json:"course_id,string"`
	Title        string         `json:"title"`
	PassingScore int32          `json:"passing_score"`
	Questions    []QuestionItem `json:"questions"`
}

type AssessRequest struct {
	// Answers maps question ID to the selected option index.
	Answers map[string]int32 `json:"answers"`
}

type AssessResponse struct {
	Score           int32 `json:"score"`
	TotalQuestions  int32 `json:"total_questions"`
	PercentageScore int32 `json:"percentage_score"`
	Passed          bool  `json:"passed"`
}

type AttemptItem struct {
	ID              int64     `json:"id,string"`
	Score           int32     `json:"score"`
	PercentageScore int32     `json:"percentage_score"`
	Passed          bool      `json:"passed"`
	CreatedAt       time.Time `json:"created_at"`
}

type MyAttemptsResponse struct {
	Attempts []AttemptItem `json:"attempts"`
}
