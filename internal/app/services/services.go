package services

import (
	"fullauth/internal/app/deps"
	drl "fullauth/internal/core/domain/rate_limiter"
	"fullauth/internal/core/services"
	ratelimiting "fullauth/internal/core/services/rate_limiting"
	resetpassword "fullauth/internal/core/services/reset_password"
	sendpasswordresettoken "fullauth/internal/core/services/send_password_reset_token"
	"fullauth/internal/implementations/metrics"
)

type Services struct {
	SendPasswordResetToken services.Service[sendpasswordresettoken.Input, sendpasswordresettoken.Result]
	ResetPassword          services.Service[resetpassword.Input, resetpassword.Result]
}

func InitServices(deps *deps.Deps) *Services {
	return &Services{
		SendPasswordResetToken: metrics.WithMetrics(
			deps.ServiceRuns,
			"send_password_reset_token",
			ratelimiting.WithRateLimiting(
				deps.Logger,
				deps.RateLimiter,
				drl.Limit{Interval: drl.Hour, Value: deps.Config.PasswordResetRequestsPerHour},
				sendpasswordresettoken.New(
					deps.Logger,
					deps.UserRepository,
					deps.TokenRepository,
					deps.TokenGenerator,
					deps.EmailSender,
					deps.Config,
					deps.Now,
				),
			),
		),
		ResetPassword: metrics.WithMetrics(
			deps.ServiceRuns,
			"reset_password",
			resetpassword.New(
				deps.Logger,
				deps.UserRepository,
				deps.TokenRepository,
				deps.PasswordHasher,
				deps.EventPublisher,
				deps.Now,
			),
		),
	}
}
