package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/board-admin/internal/models"
	"github.com/iudanet/board-admin/internal/server/storage"
)

const boardColumns = `board_no, board_name, board_title, member_nickname, read_count, like_count, comment_count, board_del_fl`

// GetDeletedBoards returns posts flagged as deleted
func (s *Storage) GetDeletedBoards(ctx context.Context) ([]*models.Board, error) {
	query := `
		SELECT ` + boardColumns + `
		FROM boards
		WHERE board_del_fl = 'Y'
		ORDER BY board_no
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted boards: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var boards []*models.Board

	for rows.Next() {
		board, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, board)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return boards, nil
}

// RestoreBoard clears the deletion flag of a post.
// Returns 0 updated rows when the post does not exist or is not deleted.
func (s *Storage) RestoreBoard(ctx context.Context, boardNo int64) (int64, error) {
	query := `UPDATE boards SET board_del_fl = 'N' WHERE board_no = ? AND board_del_fl = 'Y'`

	result, err := s.db.ExecContext(ctx, query, boardNo)
	if err != nil {
		return 0, fmt.Errorf("failed to restore board: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// GetMaxReadCountBoard returns the live post with the most views
func (s *Storage) GetMaxReadCountBoard(ctx context.Context) (*models.Board, error) {
	return s.maxBoard(ctx, "read_count")
}

// GetMaxLikeCountBoard returns the live post with the most likes
func (s *Storage) GetMaxLikeCountBoard(ctx context.Context) (*models.Board, error) {
	return s.maxBoard(ctx, "like_count")
}

// GetMaxCommentCountBoard returns the live post with the most comments
func (s *Storage) GetMaxCommentCountBoard(ctx context.Context) (*models.Board, error) {
	return s.maxBoard(ctx, "comment_count")
}

// maxBoard returns the live post with the highest value of column.
// column is always one of the fixed count columns above, never user input.
func (s *Storage) maxBoard(ctx context.Context, column string) (*models.Board, error) {
	query := `
		SELECT ` + boardColumns + `
		FROM boards
		WHERE board_del_fl = 'N'
		ORDER BY ` + column + ` DESC, board_no
		LIMIT 1
	`

	board, err := scanBoard(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBoardNotFound
		}
		return nil, fmt.Errorf("failed to get max %s board: %w", column, err)
	}

	return board, nil
}

func scanBoard(row scanner) (*models.Board, error) {
	board := &models.Board{}
	err := row.Scan(
		&board.BoardNo,
		&board.BoardName,
		&board.BoardTitle,
		&board.MemberNickname,
		&board.ReadCount,
		&board.LikeCount,
		&board.CommentCount,
		&board.BoardDelFl,
	)
	if err != nil {
		return nil, err
	}
	return board, nil
}
