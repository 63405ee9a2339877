package httputil

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/carebook/booking-api/pkg/errors"
)

// Response is the common envelope for API responses. Endpoint-specific
// payload fields (user, appointment, analytics, ...) are added by handlers
// on top of this shape via gin.H.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// RespondWithError translates err into the {success:false, message} envelope.
// Internal failures are logged with their cause and mapped to a generic
// message; domain errors pass through with their own status and message.
func RespondWithError(c *gin.Context, err error) {
	status := errors.Status(err)
	if status >= 500 {
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("request failed")
	}
	c.JSON(status, Response{
		Success: false,
		Message: errors.Message(err),
	})
}
