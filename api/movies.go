package api

import (
	"net/http"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/movies"
	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	service movies.MovieUseCase
}

func NewMovieHandler(service movies.MovieUseCase) *MovieHandler {
	return &MovieHandler{service: service}
}

func (h *MovieHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.update)
	router.DELETE("/:id", h.remove)
}

func (h *MovieHandler) create(c *gin.Context) {
	var req movies.CreateMovieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	movie, outcome, err := h.service.CreateMovie(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusCreated, movie)
}

func (h *MovieHandler) list(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context()))
}

func (h *MovieHandler) get(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	movie, found := h.service.GetByID(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, movie)
}

func (h *MovieHandler) update(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var req movies.UpdateMovieInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	outcome, err := h.service.UpdateMovie(c.Request.Context(), id, req)
	if err != nil {
		internalError(c, err)
		return
	}
	if outcome != domain.Success {
		respond(c, outcome, http.StatusOK, nil)
		return
	}
	movie, _ := h.service.GetByID(c.Request.Context(), id)
	ok(c, movie)
}

func (h *MovieHandler) remove(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	outcome, err := h.service.RemoveMovie(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusOK, nil)
}
