package emergency

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthkey/healthkey-api/internal/handler"
	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/service/emergency"
)

type Handler struct {
	service *emergency.Service
}

func NewHandler(service *emergency.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	routes := r.Group("/emergency")
	{
		routes.POST("/access", h.GrantAccess)
	}
}

// GrantAccess is the tap-card flow: an NFC card ID plus accessor details
// buys a two-hour window into the patient record.
func (h *Handler) GrantAccess(c *gin.Context) {
	var req model.GrantEmergencyAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	grant, err := h.service.Grant(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(grant))
}
