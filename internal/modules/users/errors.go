package users

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrAlreadySubscribed = errors.New("subscription already exists")
	ErrNotSubscribed     = errors.New("subscription not found")
	ErrEmptyAvatar       = errors.New("avatar must not be empty")
)
