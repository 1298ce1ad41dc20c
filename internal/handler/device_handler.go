package handler

import (
	"net/http"
	"strings"

	"infinium/internal/model"
	"infinium/internal/service"

	"github.com/rs/zerolog"
)

// DeviceHandler accepts meal photos pushed by camera devices.
type DeviceHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewDeviceHandler creates a new device handler.
func NewDeviceHandler(service service.FoodService, logger zerolog.Logger) *DeviceHandler {
	return &DeviceHandler{
		service: service,
		logger:  logger.With().Str("handler", "device").Logger(),
	}
}

// Upload handles POST /api/esp32/upload requests. The user is named in the body.
func (h *DeviceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.DeviceUploadRequest
	if !decodeJSON(w, r, &req, false, h.logger) {
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		writeServiceError(w, model.ErrUserIDRequired, "", h.logger)
		return
	}

	result, err := h.service.Analyze(r.Context(), userID, &req.AnalyzeRequest)
	if err != nil {
		writeServiceError(w, err, "Failed to process device upload", h.logger)
		return
	}

	h.logger.Info().Str("user_id", userID).Str("analysis_id", result.AnalysisID.String()).Msg("device upload analysed")

	writeData(w, http.StatusOK, result)
}
