package httpapi

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/dkoloskov/wellspring/internal/shared"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// fieldViolation is one entry of the validation-error envelope.
type fieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func errorEnvelope(msg string) gin.H {
	return gin.H{"success": false, "error": msg}
}

// bindJSON binds the request body into dst. On failure it writes the
// {"errors": [...]} envelope and reports false; the handler must return.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		violations := make([]fieldViolation, 0, len(verrs))
		for _, fe := range verrs {
			violations = append(violations, fieldViolation{
				Field:   fe.Field(),
				Message: violationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": violations})
		return false
	}

	// Malformed JSON or a type mismatch the binder could not attribute
	// to a field.
	c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldViolation{
		{Field: "body", Message: "invalid request body"},
	}})
	return false
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "please provide a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at least " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fe.Field() + " must be at most " + fe.Param() + " characters"
		}
		return fe.Field() + " must be at most " + fe.Param()
	case "url":
		return "please provide a valid URL for " + fe.Field()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

// respondError maps a service error to a status code and a
// {"success": false, "error": ...} body. notFound is the domain-specific
// message for shared.ErrorNotFound; unexpected errors are logged and come
// back as a plain server error.
func (s *Server) respondError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, shared.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorEnvelope(notFound))
	case errors.Is(err, shared.ErrorAlreadyExists):
		c.JSON(http.StatusBadRequest, errorEnvelope("User already exists"))
	case errors.Is(err, shared.ErrorUnauthorized):
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid credentials"))
	case errors.Is(err, shared.ErrorValidation):
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request"))
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, errorEnvelope("Server error"))
	}
}
