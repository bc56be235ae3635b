package storage

import (
	"context"

	"github.com/iudanet/board-admin/internal/models"
)

// BoardStorage defines interface for board posts in admin queries
type BoardStorage interface {
	// GetDeletedBoards returns posts flagged as deleted
	GetDeletedBoards(ctx context.Context) ([]*models.Board, error)

	// RestoreBoard clears the deletion flag of a post.
	// Returns the number of updated rows: 0 means the post does not
	// exist or is not deleted.
	RestoreBoard(ctx context.Context, boardNo int64) (int64, error)

	// GetMaxReadCountBoard returns the live post with the most views.
	// Returns ErrBoardNotFound if there are no live posts.
	GetMaxReadCountBoard(ctx context.Context) (*models.Board, error)

	// GetMaxLikeCountBoard returns the live post with the most likes
	GetMaxLikeCountBoard(ctx context.Context) (*models.Board, error)

	// GetMaxCommentCountBoard returns the live post with the most comments
	GetMaxCommentCountBoard(ctx context.Context) (*models.Board, error)
}
