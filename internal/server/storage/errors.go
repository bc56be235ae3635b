package storage

import "errors"

// Common storage errors
var (
	// ErrMemberNotFound indicates that member was not found or credentials do not match
	ErrMemberNotFound = errors.New("member not found")

	// ErrMemberAlreadyExists indicates that a member with this email already exists
	ErrMemberAlreadyExists = errors.New("member already exists")

	// ErrTokenNotFound indicates that no live refresh token matches
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrBoardNotFound indicates that no board post matches the query
	ErrBoardNotFound = errors.New("board not found")
)
