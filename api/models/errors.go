package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateReview    = errors.New("you have already reviewed this ticket")
	ErrSelfFollow         = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("already following this user")
	ErrUnknownUser        = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// notFound maps gorm's missing-row error onto ErrNotFound and passes every
// other error through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// IsUniqueViolation reports whether err came from a unique index. Drivers
// that do not translate their errors are matched on the message.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
