package dashboard

import (
	"context"
	"errors"
	"testing"

	"infinium/internal/client"
	"infinium/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) UploadAndAnalyze(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyzeResult), args.Error(1)
}

func (m *MockAPI) GetFoodHistory(ctx context.Context, limit int) ([]model.FoodAnalysisRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FoodAnalysisRecord), args.Error(1)
}

func (m *MockAPI) GenerateDietPlan(ctx context.Context, days int) (*model.GenerateDietPlanResult, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GenerateDietPlanResult), args.Error(1)
}

func (m *MockAPI) HealthCheck(ctx context.Context) (*model.HealthStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HealthStatus), args.Error(1)
}

func newTestSession(t *testing.T) (*Session, *MockAPI, *Store, *recordingPainter, *Inbox) {
	t.Helper()
	c, store, painter, inbox := newTestController(t, WithFoodAnalysis())
	api := new(MockAPI)
	return NewSession(api, c, store, inbox, zerolog.Nop()), api, store, painter, inbox
}

func levels(notes []Notification) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Level
	}
	return out
}

func TestSession_CheckConnection(t *testing.T) {
	s, api, _, _, inbox := newTestSession(t)
	api.On("HealthCheck", mock.Anything).Return(&model.HealthStatus{Status: "healthy", Backend: "go"}, nil).Once()

	assert.True(t, s.CheckConnection(context.Background()))
	assert.False(t, s.Offline())
	assert.Empty(t, inbox.Drain())

	_, hasDeadline := api.Calls[0].Arguments.Get(0).(context.Context).Deadline()
	assert.True(t, hasDeadline)
	api.AssertExpectations(t)
}

func TestSession_CheckConnection_Offline(t *testing.T) {
	s, api, _, _, inbox := newTestSession(t)
	api.On("HealthCheck", mock.Anything).Return(nil, &client.NetworkError{Op: client.OpHealthCheck, Err: errors.New("refused")})

	assert.False(t, s.CheckConnection(context.Background()))
	assert.True(t, s.Offline())
	assert.Equal(t, []string{LevelWarning}, levels(inbox.Drain()))

	_, err := s.AnalyzeImage(context.Background(), model.AnalyzeRequest{ImageURL: "http://img/1.jpg"})
	assert.ErrorIs(t, err, ErrOffline)
	_, err = s.GenerateDietPlan(context.Background(), 7)
	assert.ErrorIs(t, err, ErrOffline)
	assert.ErrorIs(t, s.RefreshHistory(context.Background()), ErrOffline)

	api.AssertNotCalled(t, "UploadAndAnalyze", mock.Anything, mock.Anything)
	api.AssertNotCalled(t, "GenerateDietPlan", mock.Anything, mock.Anything)
}

func TestSession_AnalyzeImage(t *testing.T) {
	s, api, store, painter, inbox := newTestSession(t)
	s.ctrl.Navigate(string(ViewFoodAnalysis))

	req := model.AnalyzeRequest{ImageBuffer: "data:image/png;base64,AAAA"}
	result := &model.AnalyzeResult{
		AnalysisID: uuid.New(),
		Analysis: model.FoodAnalysis{
			FoodItems:     []model.FoodItem{{Name: "Apple", Calories: 95}},
			TotalCalories: 95,
		},
	}
	history := []model.FoodAnalysisRecord{{UserID: "user-1", Analysis: result.Analysis}}

	api.On("UploadAndAnalyze", mock.Anything, req).Return(result, nil).Once()
	api.On("GetFoodHistory", mock.Anything, historyRefreshSize).Return(history, nil).Once()

	got, err := s.AnalyzeImage(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, result, got)

	snap := store.Snapshot()
	assert.Equal(t, history, snap.FoodHistory)
	assert.Equal(t, result, snap.LastAnalysis)
	assert.Equal(t, []View{ViewFoodAnalysis, ViewFoodAnalysis}, painter.views())
	assert.Equal(t, []string{LevelInfo, LevelSuccess}, levels(inbox.Drain()))
	api.AssertExpectations(t)
}

func TestSession_AnalyzeImage_Failures(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "request failed with message",
			err:         &client.RequestFailedError{Op: client.OpUploadAndAnalyze, Status: 502, Message: "Failed to analyze image"},
			wantMessage: "Image analysis failed: Failed to analyze image",
		},
		{
			name:        "request failed without message",
			err:         &client.RequestFailedError{Op: client.OpUploadAndAnalyze, Status: 500},
			wantMessage: "Image analysis failed (status 500)",
		},
		{
			name:        "network",
			err:         &client.NetworkError{Op: client.OpUploadAndAnalyze, Err: context.DeadlineExceeded},
			wantMessage: "Image analysis failed: backend unreachable",
		},
		{
			name:        "other",
			err:         errors.New("boom"),
			wantMessage: "Image analysis failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, api, store, _, inbox := newTestSession(t)
			api.On("UploadAndAnalyze", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := s.AnalyzeImage(context.Background(), model.AnalyzeRequest{ImageURL: "http://img/1.jpg"})
			assert.ErrorIs(t, err, tt.err)

			notes := inbox.Drain()
			require.Len(t, notes, 2)
			assert.Equal(t, LevelError, notes[1].Level)
			assert.Equal(t, tt.wantMessage, notes[1].Message)
			assert.Nil(t, store.Snapshot().LastAnalysis)
			api.AssertNotCalled(t, "GetFoodHistory", mock.Anything, mock.Anything)
		})
	}
}

func TestSession_GenerateDietPlan(t *testing.T) {
	s, api, store, _, inbox := newTestSession(t)

	plan := &model.GenerateDietPlanResult{
		PlanID: uuid.New(),
		Plan:   model.DietPlanContent{Plan: model.PlanSchedule{Duration: 5, TargetCalories: 2200}},
	}
	api.On("GenerateDietPlan", mock.Anything, 5).Return(plan, nil).Once()
	api.On("GetFoodHistory", mock.Anything, historyRefreshSize).Return(nil, errors.New("timeout")).Once()

	got, err := s.GenerateDietPlan(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, plan.PlanID, got.PlanID)

	notes := inbox.Drain()
	require.Len(t, notes, 2)
	assert.Equal(t, "5-day diet plan ready", notes[1].Message)
	assert.Empty(t, store.Snapshot().FoodHistory)
	api.AssertExpectations(t)
}
