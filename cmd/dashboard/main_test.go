package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"infinium/internal/dashboard"
	"infinium/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("DASHBOARD_PREFS_FILE", filepath.Join(t.TempDir(), "prefs.yaml"))
	t.Setenv("DASHBOARD_USER_ID", "user-1")
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func offlineURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	return srv.URL
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(model.Envelope{Success: true, Data: data})
}

func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.HealthStatus{Status: "healthy", Backend: "go", Uptime: 3})
	})
	mux.HandleFunc("POST /api/food/{userId}/analyze", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, model.AnalyzeResult{
			AnalysisID: uuid.New(),
			Analysis: model.FoodAnalysis{
				FoodItems:     []model.FoodItem{{Name: "Apple", Calories: 95}},
				TotalCalories: 95,
			},
		})
	})
	mux.HandleFunc("GET /api/food/{userId}/history", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, []model.FoodAnalysisRecord{})
	})
	mux.HandleFunc("GET /api/food/{userId}/diet-plan", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, nil)
	})
	mux.HandleFunc("GET /api/users/{userId}/family", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-1", r.PathValue("userId"))
		writeEnvelope(w, nil)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestView_Text(t *testing.T) {
	res := run(t, "", "--api-url", offlineURL(t), "view", "recipes")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Recipe Engine")
	assert.Contains(t, res.stdout, "Spinach & Tomato Scramble")
}

func TestView_JSON(t *testing.T) {
	res := run(t, "", "--api-url", offlineURL(t), "-o", "json", "view")
	require.NoError(t, res.err)

	var p dashboard.Projection
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &p))
	assert.Equal(t, dashboard.ViewDashboard, p.View)
	require.NotNil(t, p.Dashboard)
	assert.Equal(t, 2, p.Dashboard.HighSeverityAlertCount)
}

func TestView_Unknown(t *testing.T) {
	res := run(t, "", "--api-url", offlineURL(t), "view", "nope")
	assert.ErrorIs(t, res.err, dashboard.ErrUnknownView)

	res = run(t, "", "--api-url", offlineURL(t), "view", "foodanalysis")
	assert.ErrorIs(t, res.err, dashboard.ErrUnknownView)
}

func TestView_InvalidOutput(t *testing.T) {
	res := run(t, "", "--api-url", offlineURL(t), "-o", "xml", "view")
	assert.Error(t, res.err)
}

func TestHealth(t *testing.T) {
	srv := fakeBackend(t)
	res := run(t, "", "--api-url", srv.URL, "health")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "healthy (go backend")
}

func TestAPI_Commands(t *testing.T) {
	srv := fakeBackend(t)

	res := run(t, "", "--api-url", srv.URL, "api", "family")
	require.NoError(t, res.err)
	assert.JSONEq(t, "[]", res.stdout)

	res = run(t, "", "--api-url", srv.URL, "api", "active-plan")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No active diet plan")

	res = run(t, "", "--api-url", srv.URL, "api", "recommendations")
	assert.Error(t, res.err)
}

func TestAnalyze_URL(t *testing.T) {
	srv := fakeBackend(t)
	res := run(t, "", "--api-url", srv.URL, "analyze", "--url", "http://img/meal.jpg")

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Apple")
	assert.Contains(t, res.stderr, "[success]")
}

func TestAnalyze_Offline(t *testing.T) {
	res := run(t, "", "--api-url", offlineURL(t), "analyze", "--url", "http://img/meal.jpg")

	assert.ErrorIs(t, res.err, dashboard.ErrOffline)
	assert.Contains(t, res.stderr, "[warning]")
}

func TestAnalyzeRequest(t *testing.T) {
	_, err := analyzeRequest("http://img/1.jpg", []string{"meal.jpg"})
	assert.Error(t, err)
	_, err = analyzeRequest("", nil)
	assert.Error(t, err)
	_, err = analyzeRequest("", []string{filepath.Join(t.TempDir(), "missing.jpg")})
	assert.Error(t, err)

	req, err := analyzeRequest("http://img/1.jpg", nil)
	require.NoError(t, err)
	assert.Equal(t, "http://img/1.jpg", req.ImageURL)
}

func TestInteractive(t *testing.T) {
	script := strings.Join([]string{
		"go alerts",
		"dismiss 1",
		"dismiss 99",
		"goal 2500",
		"goal 99999",
		"add-member name=Sam;age=40;gender=Male;relationship=Friend",
		"go family",
		"delete-member 2",
		"n",
		"go nowhere",
		"plan 3",
		"quit",
	}, "\n")

	res := run(t, script, "--api-url", offlineURL(t))

	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Smart Alerts")
	assert.Contains(t, res.stdout, "alert 99 not found")
	assert.Contains(t, res.stdout, "Sam")
	assert.Contains(t, res.stdout, "Sarah Johnson")
	assert.Contains(t, res.stdout, "unknown view")
	assert.Contains(t, res.stderr, "[success] Calorie goal updated")
	assert.Contains(t, res.stderr, "[error] Calorie goal must be between 1200 and 4000")
	assert.Contains(t, res.stderr, "[success] Sam added to family")
	assert.Contains(t, res.stderr, "[warning] Diet plan generation needs the backend")
}

func TestInteractive_QuitDoesNotWaitForBackgroundCalls(t *testing.T) {
	release := make(chan struct{})
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(model.HealthStatus{Status: "healthy", Backend: "go"})
	})
	mux.HandleFunc("POST /api/food/{userId}/analyze", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	start := time.Now()
	res := run(t, "analyze http://img/meal.jpg\nquit\n", "--api-url", srv.URL)

	require.NoError(t, res.err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestParseFamilyForm(t *testing.T) {
	f := parseFamilyForm("name=Sam; age=40 ;gender=Male;relationship=Friend;allergies=Nuts, Dairy;calorieGoal=2100;junk")

	assert.Equal(t, dashboard.FamilyForm{
		Name:         "Sam",
		Age:          "40",
		Gender:       "Male",
		Relationship: "Friend",
		Allergies:    "Nuts, Dairy",
		CalorieGoal:  "2100",
	}, f)
}
