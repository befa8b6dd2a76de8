package api

import (
	"context"
	"net/http"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/reports"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/gin-gonic/gin"
)

// SessionLister selects the sessions an aggregate report runs over.
type SessionLister interface {
	ListSessions(ctx context.Context, filter sessions.Filter) []domain.Session
}

type ReportHandler struct {
	service  reports.ReportUseCase
	sessions SessionLister
}

func NewReportHandler(service reports.ReportUseCase, sessions SessionLister) *ReportHandler {
	return &ReportHandler{service: service, sessions: sessions}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/reports/movies/:id", h.movieRevenue)
	router.GET("/reports/most-watched", h.mostWatched)
	router.GET("/reports/tickets/count", h.countTickets)
	router.GET("/sessions/:id/report", h.sessionRevenue)
}

func (h *ReportHandler) movieRevenue(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	revenue, found := h.service.MovieRevenue(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, revenue)
}

// mostWatched and countTickets take the same filters as GET /sessions.
func (h *ReportHandler) mostWatched(c *gin.Context) {
	filter, valid := sessionFilter(c)
	if !valid {
		return
	}
	best, found := h.service.MostWatched(c.Request.Context(), h.sessions.ListSessions(c.Request.Context(), filter))
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, best)
}

func (h *ReportHandler) countTickets(c *gin.Context) {
	filter, valid := sessionFilter(c)
	if !valid {
		return
	}
	count := h.service.CountTickets(c.Request.Context(), h.sessions.ListSessions(c.Request.Context(), filter))
	ok(c, gin.H{"tickets": count})
}

func (h *ReportHandler) sessionRevenue(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	report, found := h.service.SessionRevenue(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, report)
}
