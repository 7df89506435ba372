package user

import (
	e "fullauth/internal/core/domain/errors"
)

var (
	ErrUserDoesNotExist = e.New(e.ErrNotFound, "user not found")
)
