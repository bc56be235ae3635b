package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/board-admin/internal/models"
	"github.com/iudanet/board-admin/internal/server/storage"
)

func TestMemberStorage_Login(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	member := createTestMember(t, ctx, s, "correct-password")

	tests := []struct {
		wantError error
		name      string
		email     string
		password  string
	}{
		{
			name:     "valid credentials",
			email:    member.MemberEmail,
			password: "correct-password",
		},
		{
			name:      "wrong password",
			email:     member.MemberEmail,
			password:  "wrong-password",
			wantError: storage.ErrMemberNotFound,
		},
		{
			name:      "unknown email",
			email:     "nobody@board.com",
			password:  "correct-password",
			wantError: storage.ErrMemberNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Login(ctx, tt.email, tt.password)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, member.MemberNo, got.MemberNo)
				assert.Equal(t, member.MemberEmail, got.MemberEmail)
			}
		})
	}
}

func TestMemberStorage_Login_WithdrawnMember(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	member := createTestMember(t, ctx, s, "password123")

	_, err := s.DB().ExecContext(ctx,
		`UPDATE members SET member_del_fl = 'Y' WHERE member_no = ?`, member.MemberNo)
	require.NoError(t, err)

	// Удаленный аккаунт не может войти даже с верным паролем
	_, err = s.Login(ctx, member.MemberEmail, "password123")
	assert.ErrorIs(t, err, storage.ErrMemberNotFound)
}

func TestMemberStorage_CreateMember_Duplicate(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	member := createTestMember(t, ctx, s, "password123")

	dup := &models.Member{
		MemberEmail:    member.MemberEmail,
		MemberNickname: "other",
		MemberPw:       "hash",
		Authority:      models.AuthorityAdmin,
		MemberDelFl:    "N",
		EnrollDate:     time.Now(),
	}

	err := s.CreateMember(ctx, dup)
	assert.ErrorIs(t, err, storage.ErrMemberAlreadyExists)
}

func TestMemberStorage_WithdrawnAndRestore(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	active := createTestMember(t, ctx, s, "password123")
	withdrawn := createTestMember(t, ctx, s, "password123")

	_, err := s.DB().ExecContext(ctx,
		`UPDATE members SET member_del_fl = 'Y' WHERE member_no = ?`, withdrawn.MemberNo)
	require.NoError(t, err)

	list, err := s.GetWithdrawnMembers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, withdrawn.MemberNo, list[0].MemberNo)

	// Восстановление удаленного аккаунта
	rows, err := s.RestoreMember(ctx, withdrawn.MemberNo)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	list, err = s.GetWithdrawnMembers(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Невалидные номера дают 0 обновленных строк, не ошибку
	rows, err = s.RestoreMember(ctx, active.MemberNo)
	require.NoError(t, err)
	assert.Zero(t, rows, "not-withdrawn member")

	rows, err = s.RestoreMember(ctx, 99999)
	require.NoError(t, err)
	assert.Zero(t, rows, "unknown member")
}

func TestMemberStorage_GetNewMembers(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	recent := createTestMember(t, ctx, s, "password123")

	old := createTestMember(t, ctx, s, "password123")
	_, err := s.DB().ExecContext(ctx,
		`UPDATE members SET enroll_date = ? WHERE member_no = ?`,
		time.Now().AddDate(0, 0, -60), old.MemberNo)
	require.NoError(t, err)

	list, err := s.GetNewMembers(ctx, 30)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, recent.MemberNo, list[0].MemberNo)
}

func TestMemberStorage_GetAdminAccounts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	admin := createTestMember(t, ctx, s, "password123")

	regular := createTestMember(t, ctx, s, "password123")
	_, err := s.DB().ExecContext(ctx,
		`UPDATE members SET authority = ? WHERE member_no = ?`,
		models.AuthorityMember, regular.MemberNo)
	require.NoError(t, err)

	list, err := s.GetAdminAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, admin.MemberNo, list[0].MemberNo)
}
