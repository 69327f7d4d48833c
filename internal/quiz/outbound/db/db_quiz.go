package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/learnbite/internal/quiz/entity"
)

func (s *DB) GetCourseEducator(ctx context.Context, courseID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetCourseEducator")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT educator_id FROM courses WHERE id = $1 AND deleted_at IS NULL`

	var educatorID int64
	if err = s.conn.QueryRow(ctx, query, courseID).Scan(&educatorID); err != nil {
		return 0, s.mapError(err)
	}

	return educatorID, nil
}

func (s *DB) IsActivelyEnrolled(ctx context.Context, userID, courseID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsActivelyEnrolled")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT EXISTS(SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`

	var exists bool
	if err = s.conn.QueryRow(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) CreateQuiz(ctx context.Context, quiz entity.Quiz) (err error) {
	ctx, span := s.startSpan(ctx, "CreateQuiz")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO quizzes (id, course_id, title, passing_score)
		VALUES ($1, $2, $3, $4)`

	_, err = s.conn.Exec(ctx, query, quiz.ID, quiz.CourseID, quiz.Title, quiz.PassingScore)

	return s.mapError(err)
}

func (s *DB) GetQuizByID(ctx context.Context, id int64) (_ *entity.Quiz, err error) {
	ctx, span := s.startSpan(ctx, "GetQuizByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, course_id, title, passing_score, created_at, updated_at
		FROM quizzes
		WHERE id = $1`

	var q entity.Quiz
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.CourseID, &q.Title, &q.PassingScore, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &q, nil
}

func (s *DB) GetQuizByCourse(ctx context.Context, courseID int64) (_ *entity.Quiz, err error) {
	ctx, span := s.startSpan(ctx, "GetQuizByCourse")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, course_id, title, passing_score, created_at, updated_at
		FROM quizzes
		WHERE course_id = $1`

	var q entity.Quiz
	err = s.conn.QueryRow(ctx, query, courseID).Scan(
		&q.ID, &q.CourseID, &q.Title, &q.PassingScore, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &q, nil
}

func (s *DB) CreateQuestion(ctx context.Context, question entity.Question) (err error) {
	ctx, span := s.startSpan(ctx, "CreateQuestion")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO quiz_questions (id, quiz_id, prompt, options, correct_index, position)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.conn.Exec(ctx, query,
		question.ID, question.QuizID, question.Prompt, question.Options,
		question.CorrectIndex, question.Position,
	)

	return s.mapError(err)
}

func (s *DB) ListQuestions(ctx context.Context, quizID int64) (_ []entity.Question, err error) {
	ctx, span := s.startSpan(ctx, "ListQuestions")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, quiz_id, prompt, options, correct_index, position
		FROM quiz_questions
		WHERE quiz_id = $1
		ORDER BY position, id`

	rows, err := s.conn.Query(ctx, query, quizID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var questions []entity.Question
	for rows.Next() {
		var q entity.Question
		if err = rows.Scan(&q.ID, &q.QuizID, &q.Prompt, &q.Options, &q.CorrectIndex, &q.Position); err != nil {
			return nil, s.mapError(err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return questions, nil
}

// CreateAttempt stores the attempt and its per-question records
// atomically.
func (s *DB) CreateAttempt(ctx context.Context, attempt entity.Attempt, answers []entity.AttemptAnswer) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAttempt")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	const insertAttempt = `
		INSERT INTO quiz_attempts (id, quiz_id, user_id, score, percentage_score, passed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err = tx.Exec(ctx, insertAttempt,
		attempt.ID, attempt.QuizID, attempt.UserID, attempt.Score,
		attempt.PercentageScore, attempt.Passed, attempt.CreatedAt,
	); err != nil {
		return s.mapError(err)
	}

	const insertAnswer = `
		INSERT INTO quiz_attempt_answers (id, attempt_id, question_id, selected_index, correct)
		VALUES ($1, $2, $3, $4, $5)`

	for _, a := range answers {
		if _, err = tx.Exec(ctx, insertAnswer, a.ID, a.AttemptID, a.QuestionID, a.SelectedIndex, a.Correct); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) ListAttemptsByUser(ctx context.Context, quizID, userID int64) (_ []entity.Attempt, err error) {
	ctx, span := s.startSpan(ctx, "ListAttemptsByUser")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, quiz_id, user_id, score, percentage_score, passed, created_at
		FROM quiz_attempts
		WHERE quiz_id = $1 AND user_id = $2
		ORDER BY created_at DESC`

	rows, err := s.conn.Query(ctx, query, quizID, userID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	var attempts []entity.Attempt
	for rows.Next() {
		var a entity.Attempt
		if err = rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Score, &a.PercentageScore, &a.Passed, &a.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		attempts = append(attempts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return attempts, nil
}
