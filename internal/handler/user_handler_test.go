package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"infinium/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_SaveProfile(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockReturn     *model.UserProfile
		mockError      error
		expectService  bool
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"name":"Ada","email":"ada@example.com","calorieGoal":1800}`,
			mockReturn:     &model.UserProfile{ID: "u1", Name: "Ada", CalorieGoal: 1800},
			expectService:  true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing name",
			body:           `{"email":"ada@example.com"}`,
			mockError:      model.ErrNameRequired,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Calorie goal out of range",
			body:           `{"name":"Ada","calorieGoal":900}`,
			mockError:      model.ErrInvalidCalories,
			expectService:  true,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Database error",
			body:           `{"name":"Ada"}`,
			mockError:      errors.New("connection refused"),
			expectService:  true,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockUserService)
			handler := NewUserHandler(mockService, zerolog.Nop())

			if tt.expectService {
				mockService.On("SaveProfile", mock.Anything, mock.AnythingOfType("*model.UserProfileRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			rec := httptest.NewRecorder()
			handler.SaveProfile(rec, newRequest(http.MethodPost, "/api/users/profile", tt.body, ""))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestUserHandler_GetProfile(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, zerolog.Nop())

	mockService.On("GetProfile", mock.Anything, "u1").Return(&model.UserProfile{ID: "u1", Name: "Ada"}, nil)
	mockService.On("GetProfile", mock.Anything, "ghost").Return(nil, model.ErrUserNotFound)

	rec := httptest.NewRecorder()
	handler.GetProfile(rec, newRequest(http.MethodGet, "/api/users/u1/profile", "", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var profile model.UserProfile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &profile))
	assert.Equal(t, "Ada", profile.Name)

	rec = httptest.NewRecorder()
	handler.GetProfile(rec, newRequest(http.MethodGet, "/api/users/ghost/profile", "", "ghost"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "User not found", env.Error)
}

func TestUserHandler_AddFamilyMember(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, zerolog.Nop())

	member := &model.FamilyMember{ID: "m1", Name: "Sam", Age: 8, Allergies: []string{model.NoneTag}}
	mockService.On("AddFamilyMember", mock.Anything, "u1", mock.MatchedBy(func(req *model.FamilyMemberRequest) bool {
		return req.Name == "Sam" && req.Age == 8 && assert.ObjectsAreEqual([]string{""}, req.Allergies)
	})).Return(member, nil)
	mockService.On("AddFamilyMember", mock.Anything, "u1", mock.MatchedBy(func(req *model.FamilyMemberRequest) bool {
		return req.Name == ""
	})).Return(nil, model.ErrInvalidMember)

	rec := httptest.NewRecorder()
	handler.AddFamilyMember(rec, newRequest(http.MethodPost, "/api/users/u1/family",
		`{"name":"Sam","age":8,"gender":"male","relationship":"child","allergies":[""]}`, "u1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got model.FamilyMember
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &got))
	assert.Equal(t, []string{model.NoneTag}, got.Allergies)

	rec = httptest.NewRecorder()
	handler.AddFamilyMember(rec, newRequest(http.MethodPost, "/api/users/u1/family", `{"age":8}`, "u1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.ErrInvalidMember.Message, decodeEnvelope(t, rec).Error)
}

func TestUserHandler_FamilyMembers(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewUserHandler(mockService, zerolog.Nop())

	mockService.On("FamilyMembers", mock.Anything, "u1").Return(nil, nil)

	rec := httptest.NewRecorder()
	handler.FamilyMembers(rec, newRequest(http.MethodGet, "/api/users/u1/family", "", "u1"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", string(decodeEnvelope(t, rec).Data))

	rec = httptest.NewRecorder()
	handler.FamilyMembers(rec, newRequest(http.MethodDelete, "/api/users/u1/family", "", "u1"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
