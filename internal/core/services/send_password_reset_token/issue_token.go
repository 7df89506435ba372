package sendpasswordresettoken

import (
	"context"
	"errors"
	c "fullauth/internal/core/domain/common"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/core/domain/token"
)

// issueToken replaces any password reset token stored for email with a new one.
// Delete and create are separate calls, so concurrent requests for the same
// email may both succeed and leave two live tokens.
func (s *service) issueToken(ctx context.Context, email c.Email) (t token.Token, err error) {
	value := s.tokenGenerator.GenerateToken()
	expiresAt := token.ExpiresAt(s.now(), token.PasswordResetTTL)

	existing, err := s.tokenRepository.GetByEmail(ctx, email, token.PurposePasswordReset)
	switch {
	case err == nil:
		err = s.tokenRepository.Delete(ctx, existing.ID)
		if err != nil && !errors.Is(err, token.ErrTokenDoesNotExist) {
			return t, err
		}
		s.log.Debug(ctx, "Previous password reset token deleted.", logging.Entry("tokenID", existing.ID))
	case errors.Is(err, token.ErrTokenDoesNotExist):
	default:
		return t, err
	}

	return s.tokenRepository.Create(ctx, token.CreateInput{
		Email:     email,
		Value:     value,
		Purpose:   token.PurposePasswordReset,
		ExpiresAt: expiresAt,
	})
}
