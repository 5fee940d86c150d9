package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthkey/healthkey-api/internal/handler"
	"github.com/healthkey/healthkey-api/internal/repository"
	"github.com/healthkey/healthkey-api/internal/service/emergency"
	"github.com/healthkey/healthkey-api/pkg/apperror"
)

type Handler struct {
	patients     repository.PatientRepository
	emergencySvc *emergency.Service
}

func NewHandler(patients repository.PatientRepository, emergencySvc *emergency.Service) *Handler {
	return &Handler{patients: patients, emergencySvc: emergencySvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/history", h.GetHistory)
		patients.GET("/:id/insurance", h.GetInsurance)
		patients.GET("/:id/grants", h.GetActiveGrants)
	}
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.patients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

// GetHistory returns the medical history, most recent first.
func (h *Handler) GetHistory(c *gin.Context) {
	patient, err := h.patients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient.MedicalHistory))
}

// GetInsurance returns the insurance block, or NotFound when the patient
// has none on file.
func (h *Handler) GetInsurance(c *gin.Context) {
	patient, err := h.patients.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	if patient.Insurance == nil {
		c.Error(apperror.NotFound("insurance info"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient.Insurance))
}

// GetActiveGrants returns the emergency grants still inside their
// two-hour window.
func (h *Handler) GetActiveGrants(c *gin.Context) {
	grants, err := h.emergencySvc.ActiveGrants(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(grants))
}
