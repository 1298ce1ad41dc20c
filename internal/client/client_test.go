package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"infinium/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", "user-1", 2*time.Second, opts...)
}

func writeEnvelope(w http.ResponseWriter, status int, env model.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func TestClient_Routes(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *Client) error
		wantMethod string
		wantPath   string
		wantQuery  string
		wantBody   string
	}{
		{
			name: "upload and analyze",
			call: func(c *Client) error {
				_, err := c.UploadAndAnalyze(context.Background(), model.AnalyzeRequest{ImageURL: "http://img/1.jpg"})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/food/user-1/analyze",
			wantBody:   `{"imageUrl":"http://img/1.jpg"}`,
		},
		{
			name: "food history",
			call: func(c *Client) error {
				_, err := c.GetFoodHistory(context.Background(), 20)
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/food/user-1/history",
			wantQuery:  "limit=20",
		},
		{
			name: "daily summary with date",
			call: func(c *Client) error {
				_, err := c.GetDailySummary(context.Background(), "2025-01-02")
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/food/user-1/daily-summary",
			wantQuery:  "date=2025-01-02",
		},
		{
			name: "daily summary today",
			call: func(c *Client) error {
				_, err := c.GetDailySummary(context.Background(), "")
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/food/user-1/daily-summary",
		},
		{
			name: "generate diet plan",
			call: func(c *Client) error {
				_, err := c.GenerateDietPlan(context.Background(), 5)
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/food/user-1/diet-plan/generate",
			wantBody:   `{"daysCount":5}`,
		},
		{
			name: "active diet plan",
			call: func(c *Client) error {
				_, err := c.GetActiveDietPlan(context.Background())
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/food/user-1/diet-plan",
		},
		{
			name: "diet plan history",
			call: func(c *Client) error {
				_, err := c.GetDietPlanHistory(context.Background(), 3)
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/food/user-1/diet-plan/history",
			wantQuery:  "limit=3",
		},
		{
			name: "recommendations",
			call: func(c *Client) error {
				_, err := c.GetNutritionRecommendations(context.Background())
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/food/user-1/recommendations",
		},
		{
			name: "save profile",
			call: func(c *Client) error {
				_, err := c.SaveProfile(context.Background(), model.UserProfileRequest{Name: "Alex", Email: "alex@example.com", CalorieGoal: 2000})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/users/profile",
			wantBody:   `{"name":"Alex","email":"alex@example.com","allergies":null,"dietaryPreferences":null,"calorieGoal":2000}`,
		},
		{
			name: "get profile",
			call: func(c *Client) error {
				_, err := c.GetProfile(context.Background(), "user-2")
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/users/user-2/profile",
		},
		{
			name: "add family member",
			call: func(c *Client) error {
				_, err := c.AddFamilyMember(context.Background(), model.FamilyMemberRequest{Name: "Sam", Age: 40, Gender: "male", Relationship: "Spouse"})
				return err
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/users/user-1/family",
			wantBody:   `{"name":"Sam","age":40,"gender":"male","relationship":"Spouse","allergies":null,"dietaryRestrictions":null,"medicalConditions":null}`,
		},
		{
			name: "family members",
			call: func(c *Client) error {
				_, err := c.GetFamilyMembers(context.Background(), "user-1")
				return err
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/users/user-1/family",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMethod, gotPath, gotQuery, gotBody, gotKey string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotMethod = r.Method
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				gotKey = r.Header.Get("X-API-Key")
				body, _ := io.ReadAll(r.Body)
				gotBody = string(body)
				writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: nil})
			}, WithAPIKey("secret"))

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantPath, gotPath)
			assert.Equal(t, tt.wantQuery, gotQuery)
			assert.Equal(t, "secret", gotKey)
			if tt.wantBody == "" {
				assert.Empty(t, gotBody)
			} else {
				assert.JSONEq(t, tt.wantBody, gotBody)
			}
		})
	}
}

func TestClient_UploadAndAnalyze_DecodesData(t *testing.T) {
	id := uuid.New()
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: model.AnalyzeResult{
			AnalysisID: id,
			ImageURL:   "http://img/1.jpg",
			Analysis: model.FoodAnalysis{
				FoodItems:     []model.FoodItem{{Name: "Apple", Calories: 95}},
				TotalCalories: 95,
			},
		}})
	})

	res, err := c.UploadAndAnalyze(context.Background(), model.AnalyzeRequest{ImageURL: "http://img/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, id, res.AnalysisID)
	require.Len(t, res.Analysis.FoodItems, 1)
	assert.Equal(t, "Apple", res.Analysis.FoodItems[0].Name)
	assert.InDelta(t, 95, res.Analysis.TotalCalories, 0.001)
}

func TestClient_GetActiveDietPlan_None(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: nil, Message: "No active diet plan"})
	})

	plan, err := c.GetActiveDietPlan(context.Background())
	require.NoError(t, err)
	assert.Nil(t, plan)
}

func TestClient_HealthCheck_NotEnveloped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"2025-01-02T03:04:05Z","uptime":12.5,"backend":"go"}`))
	})

	status, err := c.HealthCheck(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "go", status.Backend)
	assert.InDelta(t, 12.5, status.Uptime, 0.001)
}

func TestClient_RequestFailed(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "not found with envelope",
			status:      http.StatusNotFound,
			body:        `{"success":false,"data":null,"error":"User not found"}`,
			wantStatus:  http.StatusNotFound,
			wantMessage: "User not found",
		},
		{
			name:        "bad gateway with message",
			status:      http.StatusBadGateway,
			body:        `{"success":false,"data":null,"error":"Failed to analyze image","message":"model timeout"}`,
			wantStatus:  http.StatusBadGateway,
			wantMessage: "Failed to analyze image",
		},
		{
			name:       "plain text error",
			status:     http.StatusInternalServerError,
			body:       "boom",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:        "success false with 200",
			status:      http.StatusOK,
			body:        `{"success":false,"data":null,"message":"rejected"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.GetProfile(context.Background(), "user-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRequestFailed)
			assert.NotErrorIs(t, err, ErrNetwork)

			var reqErr *RequestFailedError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, OpGetProfile, reqErr.Op)
			assert.Equal(t, tt.wantStatus, reqErr.Status)
			assert.Equal(t, tt.wantMessage, reqErr.Message)
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, "user-1", time.Second)
	_, err := c.GetFoodHistory(context.Background(), 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, OpFoodHistory, netErr.Op)
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)
	c.http.Timeout = 50 * time.Millisecond

	_, err := c.GetNutritionRecommendations(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_CoalescesIdenticalCalls(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)

	var hits atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		<-release
		writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: []model.FoodAnalysisRecord{{UserID: "user-1"}}})
	}))
	defer srv.Close()

	transport := &http.Transport{}
	defer transport.CloseIdleConnections()
	c := New(srv.URL, "user-1", 5*time.Second, WithHTTPClient(&http.Client{Transport: transport}))

	const callers = 5
	results := make([][]model.FoodAnalysisRecord, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	call := func(i int) {
		defer wg.Done()
		results[i], errs[i] = c.GetFoodHistory(context.Background(), 10)
	}

	wg.Add(1)
	go call(0)
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go call(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		require.Len(t, results[i], 1)
		assert.Equal(t, "user-1", results[i][0].UserID)
	}
}

func TestClient_CoalescedCallSurvivesLeaderCancel(t *testing.T) {
	var hits atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		<-release
		writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: []model.FoodAnalysisRecord{{UserID: "user-1"}}})
	})

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.GetFoodHistory(leaderCtx, 10)
		leaderErr <- err
	}()
	<-started

	type result struct {
		records []model.FoodAnalysisRecord
		err     error
	}
	joined := make(chan result, 1)
	go func() {
		records, err := c.GetFoodHistory(context.Background(), 10)
		joined <- result{records, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancelLeader()
	err := <-leaderErr
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	res := <-joined
	require.NoError(t, res.err)
	require.Len(t, res.records, 1)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_CoalescedCallHonoursOwnDeadline(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: []model.FoodAnalysisRecord{}})
	})

	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.GetFoodHistory(context.Background(), 10)
		leaderErr <- err
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.GetFoodHistory(ctx, 10)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	require.NoError(t, <-leaderErr)
}

func TestClient_DistinctCallsNotCoalesced(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		writeEnvelope(w, http.StatusOK, model.Envelope{Success: true, Data: []model.DietPlan{}})
	})

	_, err := c.GetDietPlanHistory(context.Background(), 5)
	require.NoError(t, err)
	_, err = c.GetDietPlanHistory(context.Background(), 10)
	require.NoError(t, err)

	assert.Equal(t, int32(2), hits.Load())
}

func TestEncodeImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	uri := EncodeImage(png)

	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, png, decoded)
}
