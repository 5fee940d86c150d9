package hospital

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthkey/healthkey-api/internal/handler"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/service/analytics"
)

type Handler struct {
	hospitals    repository.HospitalRepository
	doctors      repository.DoctorRepository
	analyticsSvc *analytics.Service
}

func NewHandler(hospitals repository.HospitalRepository, doctors repository.DoctorRepository, analyticsSvc *analytics.Service) *Handler {
	return &Handler{hospitals: hospitals, doctors: doctors, analyticsSvc: analyticsSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	hospitals := r.Group("/hospitals")
	{
		hospitals.GET("", h.ListHospitals)
		hospitals.GET("/:id", h.GetHospital)
		hospitals.GET("/:id/doctors", h.ListDoctors)
		hospitals.GET("/:id/stats", h.GetStats)
	}
}

func (h *Handler) ListHospitals(c *gin.Context) {
	hospitals, err := h.hospitals.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hospitals))
}

func (h *Handler) GetHospital(c *gin.Context) {
	hospital, err := h.hospitals.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(hospital))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.doctors.ListByHospital(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.analyticsSvc.HospitalStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats))
}
