package storage

import (
	"context"

	"github.com/iudanet/board-admin/internal/models"
)

// MemberStorage defines interface for member accounts.
// Credential verification for login lives here: the auth layer only
// sees the resulting member or ErrMemberNotFound.
type MemberStorage interface {
	// Login verifies email/password and returns the matching member.
	// Returns ErrMemberNotFound when the email is unknown, the password
	// does not match or the account is withdrawn.
	Login(ctx context.Context, memberEmail, memberPw string) (*models.Member, error)

	// CreateMember stores a new member with an already bcrypt-hashed password.
	// Returns ErrMemberAlreadyExists if the email is taken.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetWithdrawnMembers returns members flagged as withdrawn
	GetWithdrawnMembers(ctx context.Context) ([]*models.Member, error)

	// RestoreMember clears the withdrawal flag of a member.
	// Returns the number of updated rows: 0 means the member does not
	// exist or is not withdrawn.
	RestoreMember(ctx context.Context, memberNo int64) (int64, error)

	// GetNewMembers returns members enrolled within the last days
	GetNewMembers(ctx context.Context, days int) ([]*models.Member, error)

	// GetAdminAccounts returns all members with admin authority
	GetAdminAccounts(ctx context.Context) ([]*models.Member, error)
}
