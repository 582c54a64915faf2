// Package handlers maps HTTP requests onto the movie and summary services
// and converts service errors into status codes at this single boundary.
package handlers

import (
	"net/http"

	"themefinder-backend/pkg/api"
	appErrors "themefinder-backend/pkg/errors"

	"go.uber.org/zap"
)

// handleServiceError converts service errors to appropriate HTTP responses.
// Upstream detail stays in the message; this is an internal tool.
func handleServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case appErrors.IsValidation(err):
		logger.Warn("validation error", zap.Error(err))
		api.Error(w, http.StatusBadRequest, appErrors.Message(err))
	case appErrors.IsNotFound(err):
		logger.Info("not found", zap.Error(err))
		api.Error(w, http.StatusNotFound, appErrors.Message(err))
	case appErrors.IsGeneration(err), appErrors.IsUpstream(err):
		logger.Error("upstream service error", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, appErrors.Message(err))
	default:
		logger.Error("internal error", zap.Error(err))
		api.Error(w, http.StatusInternalServerError, "An internal error occurred")
	}
}
