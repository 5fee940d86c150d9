package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/healthkey/healthkey-api/internal/handler"
	"github.com/healthkey/healthkey-api/internal/middleware"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/service/analytics"
	"github.com/healthkey/healthkey-api/internal/service/review"
)

type Handler struct {
	reviewSvc    *review.Service
	analyticsSvc *analytics.Service
	accessLog    repository.AccessLogRepository
}

func NewHandler(reviewSvc *review.Service, analyticsSvc *analytics.Service, accessLog repository.AccessLogRepository) *Handler {
	return &Handler{reviewSvc: reviewSvc, analyticsSvc: analyticsSvc, accessLog: accessLog}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.GET("/pending/:role", h.ListPending)
		admin.POST("/review/:userId", h.Review)
		admin.GET("/analytics", h.GetAnalytics)
		admin.POST("/analytics/refresh", h.RefreshAnalytics)
		admin.GET("/access-logs", h.ListAccessLogs)
	}
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

func (h *Handler) ListPending(c *gin.Context) {
	users, err := h.reviewSvc.ListPending(c.Request.Context(), c.Param("role"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(users))
}

func (h *Handler) Review(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	adminID := c.GetString(middleware.ContextUserID)
	user, err := h.reviewSvc.Review(c.Request.Context(), adminID, c.Param("userId"), req.Approve)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

func (h *Handler) GetAnalytics(c *gin.Context) {
	snapshot, err := h.analyticsSvc.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(snapshot))
}

func (h *Handler) RefreshAnalytics(c *gin.Context) {
	snapshot, err := h.analyticsSvc.Refresh(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(snapshot))
}

func (h *Handler) ListAccessLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.accessLog.List(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}
