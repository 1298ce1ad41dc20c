package handler

import (
	"net/http"

	"infinium/internal/model"
	"infinium/internal/service"

	"github.com/rs/zerolog"
)

// UserHandler handles profile and family HTTP requests.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("handler", "user").Logger(),
	}
}

// SaveProfile handles POST /api/users/profile requests.
func (h *UserHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.UserProfileRequest
	if !decodeJSON(w, r, &req, false, h.logger) {
		return
	}

	profile, err := h.service.SaveProfile(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to save profile", h.logger)
		return
	}

	writeData(w, http.StatusOK, profile)
}

// GetProfile handles GET /api/users/{userId}/profile requests.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	profile, err := h.service.GetProfile(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to get profile", h.logger)
		return
	}

	writeData(w, http.StatusOK, profile)
}

// AddFamilyMember handles POST /api/users/{userId}/family requests.
func (h *UserHandler) AddFamilyMember(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.FamilyMemberRequest
	if !decodeJSON(w, r, &req, false, h.logger) {
		return
	}

	member, err := h.service.AddFamilyMember(r.Context(), r.PathValue("userId"), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add family member", h.logger)
		return
	}

	writeData(w, http.StatusCreated, member)
}

// FamilyMembers handles GET /api/users/{userId}/family requests.
func (h *UserHandler) FamilyMembers(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	members, err := h.service.FamilyMembers(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to get family members", h.logger)
		return
	}
	if members == nil {
		members = []model.FamilyMember{}
	}

	writeData(w, http.StatusOK, members)
}
