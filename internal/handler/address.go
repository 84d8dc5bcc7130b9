package handler

import (
	"context"
	"errors"
	"net/http"

	"zipcode-api/internal/models"
	"zipcode-api/internal/zipcloud"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AddressHandler handles postal code lookup requests
type AddressHandler struct {
	service AddressService
}

// Service interface for dependency injection
type AddressService interface {
	Lookup(context.Context, string) (*models.Address, error)
}

// NewAddressHandler creates a new address handler
func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{service: svc}
}

// Lookup handles GET /address requests
func (h *AddressHandler) Lookup(c *gin.Context) {
	zipcode := c.Query("zipcode")
	if zipcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter 'zipcode'"})
		return
	}

	address, err := h.service.Lookup(c.Request.Context(), zipcode)
	if err != nil {
		status, body := lookupErrorResponse(err)
		log.Error().Err(err).Str("zipcode", zipcode).Int("status", status).Msg("address lookup failed")
		c.JSON(status, body)
		return
	}

	if address == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no address found for the specified zipcode"})
		return
	}

	c.JSON(http.StatusOK, address)
}

func lookupErrorResponse(err error) (int, gin.H) {
	var (
		gwErr  *zipcloud.GatewayError
		decErr *zipcloud.DecodeError
		tErr   *zipcloud.TransportError
	)
	switch {
	case errors.As(err, &gwErr):
		return http.StatusBadGateway, gin.H{"error": "upstream service error", "upstream_status": gwErr.StatusCode}
	case errors.As(err, &decErr):
		return http.StatusBadGateway, gin.H{"error": "invalid upstream response"}
	case errors.As(err, &tErr):
		return http.StatusGatewayTimeout, gin.H{"error": "upstream service unreachable"}
	default:
		return http.StatusInternalServerError, gin.H{"error": "internal server error"}
	}
}
