package handler

import (
	"net/http"

	"infinium/internal/model"
	"infinium/internal/service"

	"github.com/rs/zerolog"
)

// FoodHandler handles meal analysis and diet plan HTTP requests.
type FoodHandler struct {
	service service.FoodService
	logger  zerolog.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(service service.FoodService, logger zerolog.Logger) *FoodHandler {
	return &FoodHandler{
		service: service,
		logger:  logger.With().Str("handler", "food").Logger(),
	}
}

// Analyze handles POST /api/food/{userId}/analyze requests.
func (h *FoodHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.AnalyzeRequest
	if !decodeJSON(w, r, &req, false, h.logger) {
		return
	}

	result, err := h.service.Analyze(r.Context(), r.PathValue("userId"), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to analyze food image", h.logger)
		return
	}

	writeData(w, http.StatusOK, result)
}

// History handles GET /api/food/{userId}/history requests.
func (h *FoodHandler) History(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	limit, ok := queryInt(r, "limit", service.DefaultHistoryLimit)
	if !ok {
		writeServiceError(w, model.ErrInvalidLimit, "", h.logger)
		return
	}

	records, err := h.service.History(r.Context(), r.PathValue("userId"), limit)
	if err != nil {
		writeServiceError(w, err, "Failed to get food history", h.logger)
		return
	}
	if records == nil {
		records = []model.FoodAnalysisRecord{}
	}

	writeData(w, http.StatusOK, records)
}

// DailySummary handles GET /api/food/{userId}/daily-summary requests.
func (h *FoodHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	summary, err := h.service.DailySummary(r.Context(), r.PathValue("userId"), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, err, "Failed to get daily summary", h.logger)
		return
	}

	writeData(w, http.StatusOK, summary)
}

// GenerateDietPlan handles POST /api/food/{userId}/diet-plan/generate requests.
// A missing body or zero daysCount selects the default duration.
func (h *FoodHandler) GenerateDietPlan(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.GenerateDietPlanRequest
	if !decodeJSON(w, r, &req, true, h.logger) {
		return
	}
	if req.DaysCount == 0 {
		req.DaysCount = model.DefaultPlanDays
	}

	result, err := h.service.GenerateDietPlan(r.Context(), r.PathValue("userId"), req.DaysCount)
	if err != nil {
		writeServiceError(w, err, "Failed to generate diet plan", h.logger)
		return
	}

	writeData(w, http.StatusOK, result)
}

// ActiveDietPlan handles GET /api/food/{userId}/diet-plan requests.
func (h *FoodHandler) ActiveDietPlan(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	plan, err := h.service.ActiveDietPlan(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to get diet plan", h.logger)
		return
	}

	if plan == nil {
		writeJSON(w, http.StatusOK, model.Envelope{Success: true, Data: nil, Message: "No active diet plan"})
		return
	}

	writeData(w, http.StatusOK, plan)
}

// DietPlanHistory handles GET /api/food/{userId}/diet-plan/history requests.
func (h *FoodHandler) DietPlanHistory(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	limit, ok := queryInt(r, "limit", service.DefaultPlanHistoryLimit)
	if !ok {
		writeServiceError(w, model.ErrInvalidLimit, "", h.logger)
		return
	}

	plans, err := h.service.DietPlanHistory(r.Context(), r.PathValue("userId"), limit)
	if err != nil {
		writeServiceError(w, err, "Failed to get diet plan history", h.logger)
		return
	}
	if plans == nil {
		plans = []model.DietPlan{}
	}

	writeData(w, http.StatusOK, plans)
}

// Recommendations handles GET /api/food/{userId}/recommendations requests.
func (h *FoodHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !methodAllowed(w, r, http.MethodGet, h.logger) {
		return
	}

	recs, err := h.service.Recommendations(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeServiceError(w, err, "Failed to get recommendations", h.logger)
		return
	}

	writeData(w, http.StatusOK, recs)
}
