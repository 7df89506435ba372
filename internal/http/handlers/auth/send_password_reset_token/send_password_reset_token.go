package sendpasswordresettoken

import (
	"encoding/json"
	c "fullauth/internal/core/domain/common"
	e "fullauth/internal/core/domain/errors"
	"fullauth/internal/core/services"
	service "fullauth/internal/core/services/send_password_reset_token"
	"fullauth/internal/http/handlers/response"
	"io"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const TEST_TOKEN_HEADER = "x-test-password-reset-token"

type Handler struct {
	service    services.Service[service.Input, service.Result]
	isTestMode bool
}

func New(
	service services.Service[service.Input, service.Result],
	isTestMode bool,
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service, isTestMode: isTestMode}
}

type Input struct {
	Email string `json:"email"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, is.Email, validation.Length(0, 512)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	input.Email = string(c.NewEmail(input.Email))
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{Email: c.Email(input.Email)},
	)
	if err != nil {
		response.RenderServiceError(rw, err)
		return
	}

	if h.isTestMode {
		rw.Header().Set(TEST_TOKEN_HEADER, string(result.Token))
	}
	response.Render(rw, struct{}{}, http.StatusOK)
}
