package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/reports"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestReportHandler_movieRevenue(t *testing.T) {
	mockReports := &MockReportUseCase{}
	handler := NewReportHandler(mockReports, &MockSessionUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "1"}}
	c.Request = httptest.NewRequest("GET", "/reports/movies/1", nil)

	mockReports.On("MovieRevenue", mock.Anything, int64(1)).Return(&reports.Revenue{Revenue: 45.5, TicketsSold: 3}, true)

	handler.movieRevenue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"revenue":45.5,"tickets_sold":3}`, string(decode(t, w).Data))
}

func TestReportHandler_movieRevenue_NoSales(t *testing.T) {
	mockReports := &MockReportUseCase{}
	handler := NewReportHandler(mockReports, &MockSessionUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "2"}}
	c.Request = httptest.NewRequest("GET", "/reports/movies/2", nil)

	mockReports.On("MovieRevenue", mock.Anything, int64(2)).Return(nil, false)

	handler.movieRevenue(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportHandler_mostWatched(t *testing.T) {
	mockReports := &MockReportUseCase{}
	mockSessions := &MockSessionUseCase{}
	handler := NewReportHandler(mockReports, mockSessions)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/most-watched?format=dubbed", nil)

	list := []domain.Session{{ID: 1, MovieID: 1, Capacity: 10, Format: domain.FormatDubbed}}
	mockSessions.On("ListSessions", mock.Anything, sessions.Filter{Format: domain.FormatDubbed}).Return(list)
	mockReports.On("MostWatched", mock.Anything, list).Return(&reports.MostWatched{Title: "Dune", Tickets: 4}, true)

	handler.mostWatched(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Dune","tickets":4}`, string(decode(t, w).Data))
	mockSessions.AssertExpectations(t)
	mockReports.AssertExpectations(t)
}

func TestReportHandler_countTickets(t *testing.T) {
	mockReports := &MockReportUseCase{}
	mockSessions := &MockSessionUseCase{}
	handler := NewReportHandler(mockReports, mockSessions)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/reports/tickets/count", nil)

	list := []domain.Session{{ID: 1}, {ID: 2}}
	mockSessions.On("ListSessions", mock.Anything, sessions.Filter{}).Return(list)
	mockReports.On("CountTickets", mock.Anything, list).Return(7)

	handler.countTickets(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tickets":7}`, string(decode(t, w).Data))
}

func TestReportHandler_sessionRevenue(t *testing.T) {
	mockReports := &MockReportUseCase{}
	handler := NewReportHandler(mockReports, &MockSessionUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	c.Request = httptest.NewRequest("GET", "/sessions/5/report", nil)

	mockReports.On("SessionRevenue", mock.Anything, int64(5)).Return(&reports.SessionRevenue{Revenue: 60, OccupancyPercent: 40}, true)

	handler.sessionRevenue(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"revenue":60,"occupancy_percent":40}`, string(decode(t, w).Data))
}
