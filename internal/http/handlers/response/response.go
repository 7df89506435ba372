package response

import (
	"context"
	"encoding/json"
	"errors"
	e "fullauth/internal/core/domain/errors"
	ratelimiter "fullauth/internal/core/domain/rate_limiter"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

// RenderServiceError maps an error returned by a service to a response by its kind.
func RenderServiceError(rw http.ResponseWriter, err error) {
	if errors.Is(err, ratelimiter.ErrRateLimitExceeded) {
		RenderRateLimitExceeded(rw)
		return
	}
	if errors.Is(err, context.Canceled) {
		RenderError(rw, "request canceled", http.StatusRequestTimeout)
		return
	}
	switch e.KindOf(err) {
	case e.ErrNotFound:
		RenderError(rw, err.Error(), http.StatusNotFound)
	case e.ErrExpired:
		RenderError(rw, err.Error(), http.StatusGone)
	case e.ErrDeliveryFailed:
		RenderError(rw, "could not send email", http.StatusBadGateway)
	default:
		RenderInternalError(rw)
	}
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", "application/json")

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
