package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/service/appointment"
	"github.com/carebook/booking-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.Create)
		appointments.POST("/by-date", h.ByDate)
		appointments.GET("/patient/:email", h.ListForPatient)
		appointments.PUT("/:id/clinician", h.AssignClinician)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	appt, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "appointment": appt})
}

// ByDate is a POST rather than a GET with query params; the web client sends
// the clinician id and calendar date in the body.
func (h *Handler) ByDate(c *gin.Context) {
	var req model.ByDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	appointments, err := h.service.FindByClinicianAndDate(c.Request.Context(), req.ClinicianID, req.Date)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

func (h *Handler) ListForPatient(c *gin.Context) {
	appointments, err := h.service.ListForPatient(c.Request.Context(), c.Param("email"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appointments})
}

func (h *Handler) AssignClinician(c *gin.Context) {
	var req model.AssignClinicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.service.AssignClinician(c.Request.Context(), c.Param("id"), req.ClinicianID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
