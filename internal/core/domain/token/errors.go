package token

import (
	"errors"
	e "fullauth/internal/core/domain/errors"
)

var (
	ErrTokenDoesNotExist  = e.New(e.ErrNotFound, "token not found")
	ErrTokenExpired       = e.New(e.ErrExpired, "token expired")
	ErrTokenAlreadyExists = errors.New("token already exists")
)
