package api

import (
	"net/http"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/customers"
	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service customers.CustomerUseCase
}

func NewCustomerHandler(service customers.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{service: service}
}

func (h *CustomerHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.register)
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.DELETE("/:id", h.remove)
}

func (h *CustomerHandler) register(c *gin.Context) {
	var req customers.RegisterCustomerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	customer, outcome, err := h.service.RegisterCustomer(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusCreated, customer)
}

func (h *CustomerHandler) list(c *gin.Context) {
	ok(c, h.service.List(c.Request.Context()))
}

func (h *CustomerHandler) get(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	customer, found := h.service.GetByID(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, customer)
}

func (h *CustomerHandler) remove(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	outcome, err := h.service.RemoveCustomer(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusOK, nil)
}
