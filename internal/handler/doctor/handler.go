package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthkey/healthkey-api/internal/handler"
	"github.com/healthkey/healthkey-api/internal/model"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/service/consultation"
	"github.com/healthkey/healthkey-api/internal/service/queue"
)

type Handler struct {
	doctors         repository.DoctorRepository
	queueSvc        *queue.Service
	consultationSvc *consultation.Service
}

func NewHandler(doctors repository.DoctorRepository, queueSvc *queue.Service, consultationSvc *consultation.Service) *Handler {
	return &Handler{doctors: doctors, queueSvc: queueSvc, consultationSvc: consultationSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.GET("/:id", h.GetDoctor)
		doctors.GET("/:id/queue", h.GetQueue)
		doctors.GET("/:id/consultations", h.ListConsultations)
	}

	consultations := r.Group("/consultations")
	{
		consultations.GET("/:id", h.GetConsultation)
		consultations.POST("/:id/complete", h.CompleteConsultation)
	}
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.doctors.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

// GetQueue returns the waiting patients in queue order.
func (h *Handler) GetQueue(c *gin.Context) {
	patients, err := h.queueSvc.DoctorQueue(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) ListConsultations(c *gin.Context) {
	consultations, err := h.consultationSvc.ListForDoctor(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultations))
}

func (h *Handler) GetConsultation(c *gin.Context) {
	consultation, err := h.consultationSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(consultation))
}

func (h *Handler) CompleteConsultation(c *gin.Context) {
	var req model.CompleteConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	completed, err := h.consultationSvc.Complete(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(completed))
}
