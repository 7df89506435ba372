package app

import (
	"fmt"
	"fullauth/internal/app/deps"
	"fullauth/internal/app/services"
	resetpassword "fullauth/internal/http/handlers/auth/reset_password"
	sendpasswordresettoken "fullauth/internal/http/handlers/auth/send_password_reset_token"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	router := newRouter(deps.Config.AllowedOrigin, deps.Config.IsTestMode, s)
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}

func newRouter(allowedOrigin string, isTestMode bool, s *services.Services) http.Handler {
	passwordRecoveryRouter := chi.NewRouter()
	passwordRecoveryRouter.Method(
		http.MethodPost,
		"/reset",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	passwordRecoveryRouter.Method(http.MethodPost, "/new/{token}", resetpassword.New(s.ResetPassword))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/auth/password-recovery", passwordRecoveryRouter)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return router
}
