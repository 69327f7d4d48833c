package db

import (
	"context"

	"github.com/shandysiswandi/learnbite/internal/identity/entity"
)

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, email, full_name, role, avatar_url, status, created_at, updated_at
		FROM users
		WHERE email = $1 AND deleted_at IS NULL`

	var u entity.User
	err = s.conn.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.AvatarURL, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, email, full_name, role, avatar_url, status, created_at, updated_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var u entity.User
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FullName, &u.Role, &u.AvatarURL, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT u.id, u.email, u.role, u.status, c.password
		FROM users u
		JOIN user_credentials c ON c.user_id = u.id
		WHERE u.email = $1 AND u.deleted_at IS NULL`

	var info entity.UserLoginInfo
	err = s.conn.QueryRow(ctx, query, email).Scan(
		&info.ID, &info.Email, &info.Role, &info.Status, &info.Password,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}
