package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/muliwe/go-package-sorter/internal/classifier"
)

// Error codes
const (
	CodeDimensionError  = "DIMENSION_ERROR"
	CodeMassError       = "MASS_ERROR"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
)

// APIError is the body of every non-2xx response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
	status    int
}

// request fields by Go name, for validation details
var requestFields = map[string]string{
	"WidthCm":  "width_cm",
	"HeightCm": "height_cm",
	"LengthCm": "length_cm",
	"MassKg":   "mass_kg",
}

// bindError converts a gin binding failure into a validation error
func bindError(err error) *APIError {
	apiErr := &APIError{
		Code:    CodeValidationError,
		Message: "malformed request",
		status:  http.StatusBadRequest,
	}

	var (
		verrs     validator.ValidationErrors
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		numErr    *strconv.NumError
	)
	switch {
	case errors.As(err, &verrs):
		apiErr.Message = "missing or invalid fields"
		apiErr.Details = make(map[string]string, len(verrs))
		for _, fe := range verrs {
			name, ok := requestFields[fe.Field()]
			if !ok {
				name = fe.Field()
			}
			apiErr.Details[name] = fe.Tag()
		}
	case errors.As(err, &syntaxErr):
		apiErr.Message = "request body is not valid JSON"
	case errors.As(err, &typeErr):
		apiErr.Message = "fields must be numbers"
		apiErr.Details = map[string]string{typeErr.Field: "number"}
	case errors.As(err, &numErr):
		apiErr.Message = "fields must be numbers"
	}

	return apiErr
}

// inputError converts a classifier validation error
func inputError(err error) *APIError {
	var (
		dimErr  *classifier.DimensionError
		massErr *classifier.MassError
	)
	switch {
	case errors.As(err, &dimErr):
		return &APIError{
			Code:    CodeDimensionError,
			Message: "dimensions must be positive non-zero values",
			Details: map[string]string{
				"width_cm":  formatFloat(dimErr.Width),
				"height_cm": formatFloat(dimErr.Height),
				"length_cm": formatFloat(dimErr.Length),
			},
			status: http.StatusUnprocessableEntity,
		}
	case errors.As(err, &massErr):
		return &APIError{
			Code:    CodeMassError,
			Message: "mass must be a positive non-zero value",
			Details: map[string]string{"mass_kg": formatFloat(massErr.Mass)},
			status:  http.StatusUnprocessableEntity,
		}
	}
	return &APIError{
		Code:    CodeValidationError,
		Message: err.Error(),
		status:  http.StatusBadRequest,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// respondError writes err as JSON and aborts the chain
func respondError(c *gin.Context, err *APIError) {
	err.RequestID = RequestIDFromContext(c)
	err.Timestamp = time.Now().UTC().Format(time.RFC3339)
	err.Path = c.Request.URL.Path
	c.AbortWithStatusJSON(err.status, err)
}
