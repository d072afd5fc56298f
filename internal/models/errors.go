package models

import "errors"

// Ошибки уровня домена; хендлеры мапят их на HTTP статусы.
var (
	ErrConflict         = errors.New("username or email already taken")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrNotFound         = errors.New("not found")
	ErrInvalidOrExpired = errors.New("invalid or expired token")
)
