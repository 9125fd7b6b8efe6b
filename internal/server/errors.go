package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stratum-mining/sv2-wizard/internal/wizard/engine"
	"github.com/stratum-mining/sv2-wizard/internal/wizard/flows"
)

// ErrNotFinished is returned for plan requests on sessions that have not
// reached a result step.
var ErrNotFinished = errors.New("session has not reached a result step")

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message       string   `json:"message"`
	CurrentStepID string   `json:"currentStepId,omitempty"`
	Fields        []string `json:"fields,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, flows.ErrUnknownWizard):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, engine.ErrMissingFields), errors.Is(err, engine.ErrInvalidFields):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrUnknownOption):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNotCurrentStep), errors.Is(err, engine.ErrWrongStepType), errors.Is(err, ErrNotFinished):
		return http.StatusConflict
	case errors.As(err, &he):
		return he.Code
	}
	return http.StatusInternalServerError
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := statusFor(err)
	resp := ErrorResponse{Message: err.Error()}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			resp.Message = msg
		}
	}
	var nc *engine.NotCurrentStepError
	if errors.As(err, &nc) {
		resp.CurrentStepID = nc.Current
	}
	var mf *engine.MissingFieldsError
	if errors.As(err, &mf) {
		resp.Fields = mf.Fields
	}
	var inv *engine.InvalidFieldsError
	if errors.As(err, &inv) {
		resp.Fields = inv.Keys()
	}

	if code >= http.StatusInternalServerError {
		s.log.Error(err, "request failed", "method", c.Request().Method, "path", c.Path())
	} else {
		s.log.V(1).Info("request rejected", "method", c.Request().Method, "path", c.Path(), "status", code, "error", err.Error())
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, resp)
}
