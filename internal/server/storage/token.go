package storage

import (
	"context"
	"time"

	"github.com/iudanet/board-admin/internal/models"
)

// TokenStorage defines interface for refresh token persistence
type TokenStorage interface {
	// SaveRefreshToken stores a refresh token for a member.
	// At most one live row per member: an existing row for the same
	// member_no is replaced, not duplicated.
	// Returns the number of affected rows.
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) (int64, error)

	// MatchRefreshToken finds the member email owning this exact token value.
	// A token whose expires_at has passed is never matched, even if the
	// sweeper has not deleted it yet.
	// Returns ErrTokenNotFound if no live token matches.
	MatchRefreshToken(ctx context.Context, token string, now time.Time) (string, error)

	// DeleteMemberToken deletes the refresh token of a member by email.
	// Idempotent: deleting a non-existent token is not an error.
	DeleteMemberToken(ctx context.Context, memberEmail string) error

	// CountExpiredTokens returns the number of tokens expired as of now
	CountExpiredTokens(ctx context.Context, now time.Time) (int, error)

	// DeleteExpiredTokens removes all tokens expired as of now.
	// Returns the number of deleted tokens.
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int, error)
}
