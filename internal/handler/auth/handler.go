package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/carebook/booking-api/internal/model"
	"github.com/carebook/booking-api/internal/service/auth"
	"github.com/carebook/booking-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.POST("/check-email", h.CheckEmail)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if err := h.service.Register(c.Request.Context(), &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	user, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// CheckEmail deviates from the common envelope: the response is always
// {exists: bool}, with a 500 adding an error field.
func (h *Handler) CheckEmail(c *gin.Context) {
	var req model.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"exists": false, "error": err.Error()})
		return
	}

	exists, err := h.service.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("email check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"exists": false, "error": "Server error while checking email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exists": exists})
}
