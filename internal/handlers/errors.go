package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"fotoproof-backend/internal/middleware"
	"fotoproof-backend/internal/models"
	"fotoproof-backend/internal/proofing"
	"fotoproof-backend/internal/services"
	"fotoproof-backend/internal/supabase"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// respondError maps domain errors to a status code and an ErrorResponse.
// Anything unrecognised is a 500 and is attached to the context for the
// request logger.
func respondError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, proofing.ErrGalleryNotFound):
		status, msg = http.StatusNotFound, "gallery not found"
	case errors.Is(err, supabase.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, proofing.ErrGalleryExpired):
		status, msg = http.StatusGone, "gallery has expired"
	case errors.Is(err, proofing.ErrPasswordRequired):
		status, msg = http.StatusBadRequest, "password is required"
	case errors.Is(err, proofing.ErrWrongPassword):
		status, msg = http.StatusUnauthorized, "incorrect password"
	case errors.Is(err, services.ErrNoPhotosSelected),
		errors.Is(err, services.ErrPhotoNotInGallery),
		errors.Is(err, services.ErrNoFiles),
		errors.Is(err, services.ErrClientNameRequired):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidAccessToken):
		status, msg = http.StatusUnauthorized, err.Error()
	}

	if status >= http.StatusInternalServerError {
		c.Error(err)
	}
	c.JSON(status, models.ErrorResponse{Error: msg})
}

// respondBindError reports a request body that failed to bind or validate.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: strings.Join(msgs, "; "),
		})
		return
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid request",
		Message: err.Error(),
	})
}

func fieldMessage(fe validator.FieldError) string {
	field := toSnake(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "uuid":
		return field + " must be a valid UUID"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// currentUser reads the authenticated photographer. It writes the error
// response itself and reports false when there is none.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return userID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + strings.ReplaceAll(name, "_", " ")})
		return uuid.Nil, false
	}
	return id, true
}
