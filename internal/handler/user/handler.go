package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carebook/booking-api/internal/service/user"
	"github.com/carebook/booking-api/pkg/httputil"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/users/:id", h.GetUser)
	r.GET("/clinicians", h.ListClinicians)
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

func (h *Handler) ListClinicians(c *gin.Context) {
	clinicians, err := h.service.ListClinicians(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "clinicians": clinicians})
}
