package resetpassword

import (
	"context"
	"errors"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	resetpassword "fullauth/internal/core/services/reset_password"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *resetpassword.Input
}

func (s *stubService) Run(ctx context.Context, input resetpassword.Input) (result resetpassword.Result, err error) {
	s.input = &input
	return result, s.err
}

func TestResetPasswordHandler(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *resetpassword.Input
	}{
		{
			id:             "success",
			url:            "/auth/password-recovery/new/abc",
			body:           `{"password": "new-password"}`,
			expectedStatus: http.StatusOK,
			expectedInput:  &resetpassword.Input{Token: "abc", NewPassword: "new-password"},
		},
		{
			id:             "invalid json",
			url:            "/auth/password-recovery/new/abc",
			body:           `[`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "short password",
			url:            "/auth/password-recovery/new/abc",
			body:           `{"password": "12345"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "too long token",
			url:            "/auth/password-recovery/new/" + strings.Repeat("a", TOKEN_MAX_LEN+1),
			body:           `{"password": "new-password"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "unknown token",
			url:            "/auth/password-recovery/new/abc",
			body:           `{"password": "new-password"}`,
			serviceErr:     token.ErrTokenDoesNotExist,
			expectedStatus: http.StatusNotFound,
			expectedInput:  &resetpassword.Input{Token: "abc", NewPassword: "new-password"},
		},
		{
			id:             "expired token",
			url:            "/auth/password-recovery/new/abc",
			body:           `{"password": "new-password"}`,
			serviceErr:     token.ErrTokenExpired,
			expectedStatus: http.StatusGone,
			expectedInput:  &resetpassword.Input{Token: "abc", NewPassword: "new-password"},
		},
		{
			id:             "user deleted",
			url:            "/auth/password-recovery/new/abc",
			body:           `{"password": "new-password"}`,
			serviceErr:     user.ErrUserDoesNotExist,
			expectedStatus: http.StatusNotFound,
			expectedInput:  &resetpassword.Input{Token: "abc", NewPassword: "new-password"},
		},
		{
			id:             "internal error",
			url:            "/auth/password-recovery/new/abc",
			body:           `{"password": "new-password"}`,
			serviceErr:     errors.New("db is down"),
			expectedStatus: http.StatusInternalServerError,
			expectedInput:  &resetpassword.Input{Token: "abc", NewPassword: "new-password"},
		},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			stub := &stubService{err: testcase.serviceErr}
			router := chi.NewRouter()
			router.Post("/auth/password-recovery/new/{token}", New(stub).ServeHTTP)
			req := httptest.NewRequest(http.MethodPost, testcase.url, strings.NewReader(testcase.body))
			rw := httptest.NewRecorder()

			router.ServeHTTP(rw, req)

			assert.Equal(t, testcase.expectedStatus, rw.Code)
			assert.Equal(t, testcase.expectedInput, stub.input)
		})
	}
}
