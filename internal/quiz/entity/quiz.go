package entity

import "time"

type Quiz struct {
	ID           int64
	CourseID     int64
	Title        string
	PassingScore int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Question struct {
	ID           int64
	QuizID       int64
	Prompt       string
	Options      []string
	CorrectIndex int32
	Position     int32
}

type Attempt struct {
	ID              int64
	QuizID          int64
	UserID          int64
	Score           int32
	PercentageScore int32
	Passed          bool
	CreatedAt       time.Time
}

type AttemptAnswer struct {
	ID            int64
	AttemptID     int64
	QuestionID    int64
	SelectedIndex int32
	Correct       bool
}
