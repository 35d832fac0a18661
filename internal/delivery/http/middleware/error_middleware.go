package middleware

import (
	"errors"
	"net/http"

	"yaake-backend/internal/delivery/http/response"
	"yaake-backend/internal/domain"
	"yaake-backend/pkg/apperror"
	"yaake-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, errorDetail(appErr))
			} else {
				// SECURITY: Never expose internal error details to clients.
				// Log the actual error server-side for debugging, but send a
				// generic message to the user to prevent information disclosure.
				logger.Log.Error("internal server error", "error", err, "path", c.FullPath())
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}

// errorDetail extracts a client-safe detail payload from an AppError.
// Slot conflicts carry the conflicting intervals so the frontend can
// highlight which proposed slots are unavailable.
func errorDetail(appErr *apperror.AppError) interface{} {
	var slotErr *domain.SlotConflictError
	if errors.As(appErr, &slotErr) && len(slotErr.Conflicts) > 0 {
		return gin.H{"conflicts": slotErr.Conflicts}
	}
	return nil
}
