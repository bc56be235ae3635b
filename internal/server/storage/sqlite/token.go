package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/board-admin/internal/models"
	"github.com/iudanet/board-admin/internal/server/storage"
)

// SaveRefreshToken stores a refresh token, replacing any existing row
// for the same member. The primary key on member_no keeps the store at
// one live token per member even under concurrent logins.
func (s *Storage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) (int64, error) {
	query := `
		INSERT INTO refresh_tokens (member_no, member_email, token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(member_no) DO UPDATE SET
			member_email = excluded.member_email,
			token = excluded.token,
			expires_at = excluded.expires_at,
			created_at = excluded.created_at
	`

	result, err := s.db.ExecContext(ctx, query,
		token.MemberNo,
		token.MemberEmail,
		token.Token,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save refresh token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// MatchRefreshToken finds the member email owning this exact token value.
// Expiry is checked here, not left to the sweeper cadence: an expired row
// that has not been swept yet is never matched.
func (s *Storage) MatchRefreshToken(ctx context.Context, token string, now time.Time) (string, error) {
	query := `
		SELECT member_email
		FROM refresh_tokens
		WHERE token = ? AND expires_at > ?
	`

	var memberEmail string

	err := s.db.QueryRowContext(ctx, query, token, now).Scan(&memberEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to match refresh token: %w", err)
	}

	return memberEmail, nil
}

// DeleteMemberToken deletes the refresh token of a member by email.
// Deleting a non-existent token is not an error.
func (s *Storage) DeleteMemberToken(ctx context.Context, memberEmail string) error {
	query := `DELETE FROM refresh_tokens WHERE member_email = ?`

	if _, err := s.db.ExecContext(ctx, query, memberEmail); err != nil {
		return fmt.Errorf("failed to delete member token: %w", err)
	}

	return nil
}

// CountExpiredTokens returns the number of tokens expired as of now
func (s *Storage) CountExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM refresh_tokens WHERE expires_at <= ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expired tokens: %w", err)
	}

	return count, nil
}

// DeleteExpiredTokens removes all tokens expired as of now
func (s *Storage) DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at <= ?`

	result, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rows), nil
}
