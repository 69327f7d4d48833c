package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shandysiswandi/learnbite/internal/identity/entity"
)

// CreateUser inserts the user row and its credential atomically. The
// password hash never lives on the users table.
func (s *DB) CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
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

	const insertUser = `
		INSERT INTO users (id, email, full_name, role, avatar_url, status, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err = tx.Exec(ctx, insertUser,
		user.ID, user.Email, user.FullName, user.Role, user.AvatarURL, user.Status,
		user.CreatedBy, user.UpdatedBy,
	); err != nil {
		return s.mapError(err)
	}

	const insertCredential = `
		INSERT INTO user_credentials (user_id, password)
		VALUES ($1, $2)`

	if _, err = tx.Exec(ctx, insertCredential, user.ID, passwordHash); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
