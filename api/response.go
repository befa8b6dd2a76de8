package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/boxoffice/internal/domain"
	"github.com/gin-gonic/gin"
)

type outcomeResponse struct {
	Outcome domain.Outcome `json:"outcome"`
	Code    int            `json:"code"`
	Error   string         `json:"error,omitempty"`
	Data    interface{}    `json:"data,omitempty"`
}

func statusFor(outcome domain.Outcome) int {
	switch outcome {
	case domain.Success:
		return http.StatusOK
	case domain.NotFound:
		return http.StatusNotFound
	case domain.AlreadyExists, domain.Full:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respond writes outcome with data on success and the outcome message
// otherwise. successStatus replaces 200 for creating endpoints.
func respond(c *gin.Context, outcome domain.Outcome, successStatus int, data interface{}) {
	if outcome != domain.Success {
		c.JSON(statusFor(outcome), outcomeResponse{Outcome: outcome, Code: outcome.Code(), Error: outcome.Message()})
		return
	}
	c.JSON(successStatus, outcomeResponse{Outcome: outcome, Code: outcome.Code(), Data: data})
}

func ok(c *gin.Context, data interface{}) {
	respond(c, domain.Success, http.StatusOK, data)
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, outcomeResponse{
		Outcome: domain.InvalidArgument,
		Code:    domain.InvalidArgument.Code(),
		Error:   msg,
	})
}

// pathID parses the :id parameter. It writes a 400 and returns false when the
// value is not an integer; range checks are left to the services.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
