package services

import "errors"

var (
	// ErrDuplicateIdentity is returned when a username or email is taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so a caller cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned for username or post lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrEmptyPost is returned when a post has no content after trimming.
	ErrEmptyPost = errors.New("post content is empty")
)
