package settings

import (
	"fmt"
	e "fullauth/internal/core/domain/errors"
)

type Key string

const (
	// AllowedOrigin is the base URL of the web client, used to build links in emails.
	AllowedOrigin Key = "ALLOWED_ORIGIN"
)

// Source gives access to configuration values by key.
// A key that is not set yields *MissingKeyError.
type Source interface {
	Get(key Key) (string, error)
}

type MissingKeyError struct {
	Key Key
}

func (err *MissingKeyError) Error() string {
	return fmt.Sprintf("config key %s is not set", string(err.Key))
}

func (err *MissingKeyError) Unwrap() error {
	return e.ErrConfigMissing
}
