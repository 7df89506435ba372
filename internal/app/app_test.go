package app

import (
	"context"
	"fullauth/internal/app/services"
	"fullauth/internal/core/domain/token"
	resetpassword "fullauth/internal/core/services/reset_password"
	sendpasswordresettoken "fullauth/internal/core/services/send_password_reset_token"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSendPasswordResetToken struct {
	calls int
}

func (s *stubSendPasswordResetToken) Run(
	ctx context.Context,
	input sendpasswordresettoken.Input,
) (sendpasswordresettoken.Result, error) {
	s.calls++
	return sendpasswordresettoken.Result{Token: "t"}, nil
}

type stubResetPassword struct {
	token token.Value
}

func (s *stubResetPassword) Run(ctx context.Context, input resetpassword.Input) (resetpassword.Result, error) {
	s.token = input.Token
	return resetpassword.Result{}, nil
}

func TestRoutes(t *testing.T) {
	send := &stubSendPasswordResetToken{}
	reset := &stubResetPassword{}
	router := newRouter("https://app.test", true, &services.Services{
		SendPasswordResetToken: send,
		ResetPassword:          reset,
	})

	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(
		http.MethodPost,
		"/auth/password-recovery/reset",
		strings.NewReader(`{"email": "a@x.com"}`),
	))
	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, 1, send.calls)
	assert.Equal(t, "t", rw.Header().Get("x-test-password-reset-token"))

	rw = httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(
		http.MethodPost,
		"/auth/password-recovery/new/abc",
		strings.NewReader(`{"password": "new-password"}`),
	))
	assert.Equal(t, http.StatusOK, rw.Code)
	assert.Equal(t, token.Value("abc"), reset.token)

	rw = httptest.NewRecorder()
	router.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rw.Code)
}
