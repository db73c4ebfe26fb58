package repository

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrRuleLimitReached  = errors.New("rule limit reached")
	ErrEmailAlreadyTaken = errors.New("email already registered")
)
