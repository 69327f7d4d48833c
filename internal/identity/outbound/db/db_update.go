package db

import "context"

func (s *DB) UpdateUserProfile(ctx context.Context, id int64, fullName string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE users
		SET full_name = $2, updated_by = $1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	_, err = s.conn.Exec(ctx, query, id, fullName)
	return s.mapError(err)
}

func (s *DB) UpdateUserAvatar(ctx context.Context, id int64, avatarURL string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserAvatar")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE users
		SET avatar_url = $2, updated_by = $1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	_, err = s.conn.Exec(ctx, query, id, avatarURL)
	return s.mapError(err)
}

func (s *DB) UpdateUserCredential(ctx context.Context, userID int64, passwordHash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserCredential")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE user_credentials
		SET password = $2, updated_at = now()
		WHERE user_id = $1`

	_, err = s.conn.Exec(ctx, query, userID, passwordHash)
	return s.mapError(err)
}
