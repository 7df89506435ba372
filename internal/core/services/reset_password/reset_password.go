package resetpassword

import (
	"context"
	"errors"
	e "fullauth/internal/core/domain/errors"
	"fullauth/internal/core/domain/events"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	"fullauth/internal/core/services"
	"time"
)

type Input struct {
	Token       token.Value
	NewPassword user.RawPassword
}

type Result struct{}

type service struct {
	log             logging.Logger
	userRepository  user.UserRepository
	tokenRepository token.Repository
	passwordHasher  user.PasswordHasher
	publisher       events.Publisher
	now             func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenRepository token.Repository,
	passwordHasher user.PasswordHasher,
	publisher events.Publisher,
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
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:             log,
		userRepository:  userRepository,
		tokenRepository: tokenRepository,
		passwordHasher:  passwordHasher,
		publisher:       publisher,
		now:             now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	t, err := s.tokenRepository.GetByValue(ctx, input.Token, token.PurposePasswordReset)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, token.ErrTokenDoesNotExist) {
		s.log.Info(ctx, "Password reset token not found.")
		return result, err
	}
	if err != nil {
		s.log.Error(ctx, "Could not get password reset token.", logging.Entry("err", err))
		return result, err
	}

	// Expired tokens stay in the store until superseded by a new request.
	now := s.now()
	if t.IsExpired(now) {
		s.log.Info(
			ctx,
			"Password reset token expired.",
			logging.Entry("tokenID", t.ID),
			logging.Entry("expiresAt", t.ExpiresAt),
		)
		return result, token.ErrTokenExpired
	}

	u, err := s.userRepository.GetByEmail(ctx, t.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("tokenID", t.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("tokenID", t.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(ctx, "Could not hash new password.", logging.Entry("userID", u.ID), logging.Entry("err", err))
		return result, err
	}
	err = s.userRepository.SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user password, user does not exist.", logging.Entry("userID", u.ID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	// The password is already updated at this point and is not rolled back.
	if err := s.tokenRepository.Delete(ctx, t.ID); err != nil {
		s.log.Error(
			ctx,
			"Could not delete used password reset token.",
			logging.Entry("userID", u.ID),
			logging.Entry("tokenID", t.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", u.ID),
	)

	event := events.PasswordResetCompleted{UserID: u.ID, Email: u.Email, At: now}
	if err := s.publisher.PublishPasswordResetCompleted(ctx, event); err != nil {
		s.log.Warning(
			ctx,
			"Could not publish password reset event.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}
	return result, nil
}
