package analytics

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
	r.POST("/analytics", h.Compute)
}

func (h *Handler) Compute(c *gin.Context) {
	var req model.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	analytics, err := h.service.ComputeAnalytics(c.Request.Context(), req.ClinicianID, req.Timeframe)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}
