package resetpassword

import (
	"encoding/json"
	e "fullauth/internal/core/domain/errors"
	"fullauth/internal/core/domain/token"
	"fullauth/internal/core/domain/user"
	"fullauth/internal/core/services"
	resetpassword "fullauth/internal/core/services/reset_password"
	"fullauth/internal/http/handlers/response"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

const TOKEN_MAX_LEN = 256

type Handler struct {
	service services.Service[resetpassword.Input, resetpassword.Result]
}

func New(
	service services.Service[resetpassword.Input, resetpassword.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Token    string `json:"-"`
	Password string `json:"password"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Token, validation.Required, validation.Length(0, TOKEN_MAX_LEN)),
		validation.Field(&i.Password, validation.Required, validation.Length(6, 256)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input.Token = chi.URLParam(r, "token")
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	_, err := h.service.Run(
		r.Context(),
		resetpassword.Input{
			Token:       token.Value(input.Token),
			NewPassword: user.RawPassword(input.Password),
		},
	)
	if err != nil {
		response.RenderServiceError(rw, err)
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
