package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/board-admin/internal/models"
	"github.com/iudanet/board-admin/internal/server/storage"
)

const memberColumns = `member_no, member_email, member_nickname, member_tel, member_pw, authority, member_del_fl, enroll_date`

// Login verifies email/password against the stored bcrypt hash.
// Unknown email, wrong password and withdrawn account all collapse into
// ErrMemberNotFound so the caller cannot distinguish them.
func (s *Storage) Login(ctx context.Context, memberEmail, memberPw string) (*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE member_email = ? AND member_del_fl = 'N'
	`

	member, err := s.scanMember(s.db.QueryRowContext(ctx, query, memberEmail))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.MemberPw), []byte(memberPw)); err != nil {
		return nil, storage.ErrMemberNotFound
	}

	return member, nil
}

// CreateMember stores a new member. MemberPw must already be bcrypt-hashed.
func (s *Storage) CreateMember(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (member_email, member_nickname, member_tel, member_pw, authority, member_del_fl, enroll_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		member.MemberEmail,
		member.MemberNickname,
		member.MemberTel,
		member.MemberPw,
		member.Authority,
		member.MemberDelFl,
		member.EnrollDate,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return storage.ErrMemberAlreadyExists
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	memberNo, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	member.MemberNo = memberNo

	return nil
}

// GetWithdrawnMembers returns members flagged as withdrawn
func (s *Storage) GetWithdrawnMembers(ctx context.Context) ([]*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE member_del_fl = 'Y'
		ORDER BY member_no
	`

	return s.queryMembers(ctx, query)
}

// RestoreMember clears the withdrawal flag of a member.
// Returns 0 updated rows when the member does not exist or is not withdrawn.
func (s *Storage) RestoreMember(ctx context.Context, memberNo int64) (int64, error) {
	query := `UPDATE members SET member_del_fl = 'N' WHERE member_no = ? AND member_del_fl = 'Y'`

	result, err := s.db.ExecContext(ctx, query, memberNo)
	if err != nil {
		return 0, fmt.Errorf("failed to restore member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

// GetNewMembers returns live members enrolled within the last days
func (s *Storage) GetNewMembers(ctx context.Context, days int) ([]*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE member_del_fl = 'N' AND enroll_date >= ?
		ORDER BY enroll_date DESC
	`

	since := time.Now().AddDate(0, 0, -days)

	return s.queryMembers(ctx, query, since)
}

// GetAdminAccounts returns all members with admin authority
func (s *Storage) GetAdminAccounts(ctx context.Context) ([]*models.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE authority = ? AND member_del_fl = 'N'
		ORDER BY member_no
	`

	return s.queryMembers(ctx, query, models.AuthorityAdmin)
}

// scanner abstracts *sql.Row and *sql.Rows for member scanning
type scanner interface {
	Scan(dest ...any) error
}

func (s *Storage) scanMember(row scanner) (*models.Member, error) {
	member := &models.Member{}
	err := row.Scan(
		&member.MemberNo,
		&member.MemberEmail,
		&member.MemberNickname,
		&member.MemberTel,
		&member.MemberPw,
		&member.Authority,
		&member.MemberDelFl,
		&member.EnrollDate,
	)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (s *Storage) queryMembers(ctx context.Context, query string, args ...any) ([]*models.Member, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var members []*models.Member

	for rows.Next() {
		member, err := s.scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}
