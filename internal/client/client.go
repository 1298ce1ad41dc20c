// Package client is the dashboard's HTTP client for the infinium backend.
// Identical concurrent calls are coalesced into a single request.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"infinium/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const maxResponseBytes = 32 << 20

// Operation names used in errors and logs.
const (
	OpUploadAndAnalyze   = "upload-and-analyze"
	OpFoodHistory        = "get-food-history"
	OpDailySummary       = "get-daily-summary"
	OpGenerateDietPlan   = "generate-diet-plan"
	OpActiveDietPlan     = "get-active-diet-plan"
	OpDietPlanHistory    = "get-diet-plan-history"
	OpRecommendations    = "get-nutrition-recommendations"
	OpSaveProfile        = "create-or-update-profile"
	OpGetProfile         = "get-profile"
	OpAddFamilyMember    = "add-family-member"
	OpGetFamilyMembers   = "get-family-members"
	OpHealthCheck        = "health-check"
	defaultClientTimeout = 30 * time.Second
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAPIKey sends key in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger.With().Str("component", "api_client").Logger() }
}

// Client calls the backend on behalf of one user. It is safe for concurrent use.
type Client struct {
	baseURL  string
	userID   string
	apiKey   string
	timeout  time.Duration
	http     *http.Client
	logger   zerolog.Logger
	inflight singleflight.Group
}

// New creates a client for baseURL acting as userID.
func New(baseURL, userID string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserID returns the user the client acts for.
func (c *Client) UserID() string { return c.userID }

// UploadAndAnalyze sends an image (URL or base64 buffer) for analysis.
func (c *Client) UploadAndAnalyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResult, error) {
	var out model.AnalyzeResult
	if err := c.call(ctx, OpUploadAndAnalyze, http.MethodPost, c.foodPath("analyze"), req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFoodHistory returns at most limit analyses, newest first.
func (c *Client) GetFoodHistory(ctx context.Context, limit int) ([]model.FoodAnalysisRecord, error) {
	var out []model.FoodAnalysisRecord
	path := c.foodPath("history") + "?limit=" + strconv.Itoa(limit)
	if err := c.call(ctx, OpFoodHistory, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDailySummary returns the totals of date (YYYY-MM-DD); empty means today.
func (c *Client) GetDailySummary(ctx context.Context, date string) (*model.DailySummary, error) {
	path := c.foodPath("daily-summary")
	if date != "" {
		path += "?date=" + url.QueryEscape(date)
	}
	var out model.DailySummary
	if err := c.call(ctx, OpDailySummary, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateDietPlan asks the backend for a new plan of days days.
func (c *Client) GenerateDietPlan(ctx context.Context, days int) (*model.GenerateDietPlanResult, error) {
	var out model.GenerateDietPlanResult
	body := model.GenerateDietPlanRequest{DaysCount: days}
	if err := c.call(ctx, OpGenerateDietPlan, http.MethodPost, c.foodPath("diet-plan/generate"), body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActiveDietPlan returns the active plan, or nil when there is none.
func (c *Client) GetActiveDietPlan(ctx context.Context) (*model.DietPlan, error) {
	var out *model.DietPlan
	if err := c.call(ctx, OpActiveDietPlan, http.MethodGet, c.foodPath("diet-plan"), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDietPlanHistory returns at most limit plans, newest first.
func (c *Client) GetDietPlanHistory(ctx context.Context, limit int) ([]model.DietPlan, error) {
	var out []model.DietPlan
	path := c.foodPath("diet-plan/history") + "?limit=" + strconv.Itoa(limit)
	if err := c.call(ctx, OpDietPlanHistory, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// GetNutritionRecommendations returns advice for the user's profile.
func (c *Client) GetNutritionRecommendations(ctx context.Context) (*model.NutritionRecommendations, error) {
	var out model.NutritionRecommendations
	if err := c.call(ctx, OpRecommendations, http.MethodGet, c.foodPath("recommendations"), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveProfile creates or updates a profile.
func (c *Client) SaveProfile(ctx context.Context, req model.UserProfileRequest) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := c.call(ctx, OpSaveProfile, http.MethodPost, "/api/users/profile", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile returns the profile of userID.
func (c *Client) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := c.call(ctx, OpGetProfile, http.MethodGet, userPath(userID, "profile"), nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddFamilyMember adds a family member to the client's user.
func (c *Client) AddFamilyMember(ctx context.Context, req model.FamilyMemberRequest) (*model.FamilyMember, error) {
	var out model.FamilyMember
	if err := c.call(ctx, OpAddFamilyMember, http.MethodPost, userPath(c.userID, "family"), req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFamilyMembers returns the family of userID.
func (c *Client) GetFamilyMembers(ctx context.Context, userID string) ([]model.FamilyMember, error) {
	var out []model.FamilyMember
	if err := c.call(ctx, OpGetFamilyMembers, http.MethodGet, userPath(userID, "family"), nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// HealthCheck reports backend liveness.
func (c *Client) HealthCheck(ctx context.Context) (*model.HealthStatus, error) {
	var out model.HealthStatus
	if err := c.call(ctx, OpHealthCheck, http.MethodGet, "/health", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// EncodeImage returns data as a base64 data URI suitable for imageBuffer.
func EncodeImage(data []byte) string {
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (c *Client) foodPath(suffix string) string {
	return "/api/food/" + url.PathEscape(c.userID) + "/" + suffix
}

func userPath(userID, suffix string) string {
	return "/api/users/" + url.PathEscape(userID) + "/" + suffix
}

// call issues a request and decodes the response data into out. Concurrent
// calls with the same operation, path and body share one request, which is
// detached from any single caller's cancellation and bounded by the client
// timeout. Each caller still stops waiting when its own ctx is done.
func (c *Client) call(ctx context.Context, op, method, path string, body, out any, enveloped bool) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("%s: failed to encode request: %w", op, err)
		}
	}

	key := op + " " + method + " " + path + " " + string(payload)
	ch := c.inflight.DoChan(key, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		return c.send(flightCtx, op, method, path, payload, enveloped)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return &NetworkError{Op: op, Err: ctx.Err()}
	}
	if res.Shared {
		c.logger.Debug().Str("op", op).Str("path", path).Msg("coalesced duplicate request")
	}
	if res.Err != nil {
		return res.Err
	}

	data, _ := res.Val.([]byte)
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestFailedError{Op: op, Status: http.StatusOK, Message: "invalid response body"}
	}
	return nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

func (c *Client) send(ctx context.Context, op, method, path string, payload []byte, enveloped bool) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("request failed")
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &RequestFailedError{Op: op, Status: resp.StatusCode, Message: serverMessage(raw)}
	}
	if !enveloped {
		return raw, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &RequestFailedError{Op: op, Status: resp.StatusCode, Message: "invalid response body"}
	}
	if !env.Success {
		return nil, &RequestFailedError{Op: op, Status: resp.StatusCode, Message: firstNonEmpty(env.Error, env.Message)}
	}

	return env.Data, nil
}

// serverMessage extracts the error message of an envelope body, if any.
func serverMessage(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return firstNonEmpty(env.Error, env.Message)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
