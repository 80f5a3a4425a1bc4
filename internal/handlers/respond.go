package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tallyledger/tally_ledger_app/internal/apperrors"
)

// successEnvelope is the uniform success response body.
type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorBody is the machine-readable error inside a failure envelope.
type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// errorEnvelope is the uniform failure response body.
type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

// respondSuccess writes the success envelope with the given status.
func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, successEnvelope{Success: true, Data: data})
}

// respondError maps an error to its HTTP status and writes the failure
// envelope. Unknown errors become an opaque INTERNAL_ERROR so internals
// never leak to clients.
func respondError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	body := errorBody{
		Code:    string(kind),
		Message: err.Error(),
		Details: apperrors.DetailsOf(err),
	}
	if kind == apperrors.KindInternal {
		body.Message = "internal server error"
		body.Details = nil
	}
	c.JSON(apperrors.HTTPStatus(err), errorEnvelope{Success: false, Error: body})
}

// respondBindingError reports a request that failed schema binding. Field
// validation failures are broken out per field so clients do not have to
// parse the message.
func respondBindingError(c *gin.Context, err error) {
	body := errorBody{
		Code:    string(apperrors.KindValidation),
		Message: "invalid request format: " + err.Error(),
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]any, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Namespace()] = "failed " + fe.Tag() + " validation"
		}
		body.Message = "request validation failed"
		body.Details = map[string]any{"fields": fields}
	} else if strings.Contains(err.Error(), "EOF") {
		body.Message = "invalid or empty request body"
	}

	c.JSON(http.StatusBadRequest, errorEnvelope{Success: false, Error: body})
}
