package sendpasswordresettoken

import (
	"context"
	"errors"
	"fmt"
	c "fullauth/internal/core/domain/common"
	e "fullauth/internal/core/domain/errors"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/core/domain/mail"
	"fullauth/internal/core/domain/settings"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	"fullauth/internal/core/services"
	"html"
	"net/url"
	"strings"
	"time"
)

const (
	RESET_PASSWORD_PATH = "/reset-password"
	EMAIL_SUBJECT       = "Password reset"
)

type Input struct {
	Email c.Email
}

func (i Input) GetRateLimitKey() string {
	return fmt.Sprintf("send-password-reset-token::%s", i.Email)
}

type Result struct {
	Token token.Value
}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository token.Repository
	tokenGenerator  token.Generator
	sender          mail.Sender
	settings        settings.Source
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository token.Repository,
	tokenGenerator token.Generator,
	sender mail.Sender,
	settings settings.Source,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenRepository == nil {
		panic(e.NewNilArgumentError("tokenRepository"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	if settings == nil {
		panic(e.NewNilArgumentError("settings"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		tokenGenerator:  tokenGenerator,
		sender:          sender,
		settings:        settings,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("email", input.Email))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}

	t, err := s.issueToken(ctx, u.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	origin, err := s.settings.Get(settings.AllowedOrigin)
	if err != nil {
		s.log.Error(ctx, "Could not build password reset link.", logging.Entry("err", err))
		return result, err
	}
	link := buildResetLink(origin, t.Value)

	err = s.sender.Send(ctx, mail.Message{
		To:       u.Email,
		Subject:  EMAIL_SUBJECT,
		HTMLBody: buildEmailBody(link),
	})
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, fmt.Errorf("%w: %w", mail.ErrDeliveryFailed, err)
	}

	s.log.Info(
		ctx,
		"Password reset token has been sent to the user.",
		logging.Entry("userID", u.ID),
		logging.Entry("expiresAt", t.ExpiresAt),
	)
	return Result{Token: t.Value}, nil
}

func buildResetLink(origin string, value token.Value) string {
	return strings.TrimRight(origin, "/") + RESET_PASSWORD_PATH + "?token=" + url.QueryEscape(string(value))
}

func buildEmailBody(link string) string {
	escaped := html.EscapeString(link)
	return fmt.Sprintf(`<p>To reset your password, follow the link: <a href="%s">%s</a></p>`, escaped, escaped)
}
