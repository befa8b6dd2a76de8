package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_create(t *testing.T) {
	mockService := &MockSessionUseCase{}
	handler := NewSessionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := sessions.CreateSessionInput{MovieID: 1, Room: 3, StartTime: "20:00", Capacity: 50, Format: domain.FormatDubbed}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/sessions", bytes.NewBuffer(body))

	session := &domain.Session{ID: 4, MovieID: 1, Room: 3, StartTime: "20:00", Capacity: 50, Format: domain.FormatDubbed, OccupiedSeats: []int{}}
	mockService.On("CreateSession", c.Request.Context(), input).Return(session, domain.Success, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got domain.Session
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &got))
	assert.Equal(t, *session, got)
	mockService.AssertExpectations(t)
}

func TestSessionHandler_list_Filters(t *testing.T) {
	mockService := &MockSessionUseCase{}
	handler := NewSessionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/sessions?movie_id=2&format=subtitled&from=18:00", nil)

	filter := sessions.Filter{MovieID: 2, Format: domain.FormatSubtitled, MinStartTime: "18:00"}
	mockService.On("ListSessions", mock.Anything, filter).Return([]domain.Session{})

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(decode(t, w).Data))
	mockService.AssertExpectations(t)
}

func TestSessionHandler_list_BadFilters(t *testing.T) {
	for _, query := range []string{"movie_id=two", "format=imax"} {
		t.Run(query, func(t *testing.T) {
			mockService := &MockSessionUseCase{}
			handler := NewSessionHandler(mockService)

			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/sessions?"+query, nil)

			handler.list(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "ListSessions", mock.Anything, mock.Anything)
		})
	}
}

func TestSessionHandler_seats(t *testing.T) {
	mockService := &MockSessionUseCase{}
	handler := NewSessionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("GET", "/sessions/3/seats", nil)

	mockService.On("GetByID", mock.Anything, int64(3)).Return(&domain.Session{ID: 3, Capacity: 4, OccupiedSeats: []int{1, 4}}, true)

	handler.seats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"session_id":3,"capacity":4,"available":2,"occupied_seats":[1,4]}`, string(decode(t, w).Data))
}

func TestSessionHandler_remove_WithSoldSeats(t *testing.T) {
	mockService := &MockSessionUseCase{}
	handler := NewSessionHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("DELETE", "/sessions/3", nil)

	mockService.On("DeleteSession", mock.Anything, int64(3)).Return(domain.AlreadyExists, nil)

	handler.remove(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}
