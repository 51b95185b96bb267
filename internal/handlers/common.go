package handlers

import (
	"errors"
	"net/http"

	"github.com/omkar-107/opine-bot-sub000/internal/models"
	"github.com/omkar-107/opine-bot-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Quiz = models.Quiz
type Course = models.Course
type Student = models.Student
type Faculty = models.Faculty
type FeedbackTask = models.FeedbackTask

// respondError maps service errors onto the HTTP status taxonomy. Anything
// that is not a classified service error is an internal failure.
func respondError(c *gin.Context, err error) {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Kind {
		case services.KindValidation:
			status = http.StatusBadRequest
		case services.KindUnauthorized:
			status = http.StatusUnauthorized
		case services.KindForbidden:
			status = http.StatusForbidden
		case services.KindNotFound:
			status = http.StatusNotFound
		case services.KindConflict:
			status = http.StatusConflict
		}
		c.JSON(status, ErrorResponse{Error: svcErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
