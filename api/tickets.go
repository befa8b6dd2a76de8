package api

import (
	"net/http"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/Domenick1991/boxoffice/internal/service/tickets"
	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	service tickets.TicketUseCase
}

func NewTicketHandler(service tickets.TicketUseCase) *TicketHandler {
	return &TicketHandler{service: service}
}

// Register mounts the ticket routes on the API root, since ticket listings
// live under the customer and session resources.
func (h *TicketHandler) Register(router *gin.RouterGroup) {
	router.POST("/tickets", h.issue)
	router.GET("/customers/:id/tickets", h.forCustomer)
	router.GET("/sessions/:id/tickets", h.forSession)
}

func (h *TicketHandler) issue(c *gin.Context) {
	var req tickets.IssueTicketInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ticket, outcome, err := h.service.IssueTicket(c.Request.Context(), req)
	if err != nil {
		internalError(c, err)
		return
	}
	respond(c, outcome, http.StatusCreated, ticket)
}

// forCustomer answers 404 for an unknown customer, unlike forSession.
func (h *TicketHandler) forCustomer(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	list, found := h.service.ListTicketsForCustomer(c.Request.Context(), id)
	if !found {
		respond(c, domain.NotFound, http.StatusOK, nil)
		return
	}
	ok(c, list)
}

func (h *TicketHandler) forSession(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	ok(c, h.service.ListTicketsForSession(c.Request.Context(), id))
}
