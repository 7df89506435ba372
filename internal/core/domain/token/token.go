package token

import (
	"fmt"
	c "fullauth/internal/core/domain/common"
	e "fullauth/internal/core/domain/errors"
	"time"

	"github.com/golang-module/carbon/v2"
)

const PasswordResetTTL = time.Hour

type ID int64

type Value string

// Purpose tells apart token kinds that share one store.
type Purpose string

const (
	PurposeVerification  Purpose = "VERIFICATION"
	PurposeTwoFactor     Purpose = "TWO_FACTOR"
	PurposePasswordReset Purpose = "PASSWORD_RESET"
)

func (p Purpose) Validate() error {
	switch p {
	case PurposeVerification, PurposeTwoFactor, PurposePasswordReset:
		return nil
	}
	return e.NewInvalidStateError(fmt.Sprintf("unknown token purpose %q", string(p)))
}

type Token struct {
	ID        ID
	Value     Value
	Email     c.Email
	Purpose   Purpose
	ExpiresAt time.Time
}

// IsExpired reports whether the token can no longer be used at now.
// A token is valid strictly before ExpiresAt.
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *Token) Validate() error {
	if t.Value == "" {
		return e.NewInvalidStateError(fmt.Sprintf("value is not set for token %d", t.ID))
	}
	if t.Email == "" {
		return e.NewInvalidStateError(fmt.Sprintf("email is not set for token %d", t.ID))
	}
	return t.Purpose.Validate()
}

// ExpiresAt returns the expiration moment of a token issued at issuedAt, in UTC.
func ExpiresAt(issuedAt time.Time, ttl time.Duration) time.Time {
	return carbon.Time2Carbon(issuedAt).AddSeconds(int(ttl / time.Second)).Carbon2Time().UTC()
}
