package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/sessions"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service sessions.SessionUseCase
}

type seatsResponse struct {
	SessionID     int64 `json:"session_id"`
	Capacity      int   `json:"capacity"`
	Available     int   `json:"available"`
	OccupiedSeats []int `json:"occupied_seats"`
}

func NewSessionHandler(service sessions.SessionUseCase) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.remove)
	router.GET("/:id/seats", h.seats)
}

func (h *SessionHandler) create(c *gin.Context) {
	var req sessions.CreateSessionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	session, outcome, err := h.service.CreateSession(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusCreated, session)
}

// sessionFilter reads ?movie_id=&format=&from= into a listing filter.
func sessionFilter(c *gin.Context) (sessions.Filter, bool) {
	filter := sessions.Filter{
		Format:       domain.Format(c.Query("format")),
		MinStartTime: c.Query("from"),
	}
	if v := c.Query("movie_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequest(c, "invalid movie_id")
			return sessions.Filter{}, false
		}
		filter.MovieID = id
	}
	if filter.Format != "" && !filter.Format.Valid() {
		badRequest(c, "invalid format")
		return sessions.Filter{}, false
	}
	return filter, true
}

func (h *SessionHandler) list(c *gin.Context) {
	filter, valid := sessionFilter(c)
	if !valid {
		return
	}
	ok(c, h.service.ListSessions(c.Request.Context(), filter))
}

func (h *SessionHandler) get(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	session, found := h.service.GetByID(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, session)
}

func (h *SessionHandler) remove(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	outcome, err := h.service.DeleteSession(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusOK, nil)
}

func (h *SessionHandler) seats(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	session, found := h.service.GetByID(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, seatsResponse{
		SessionID:     session.ID,
		Capacity:      session.Capacity,
		Available:     session.AvailableSeats(),
		OccupiedSeats: session.OccupiedSeats,
	})
}
