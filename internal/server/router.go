package server

import (
	"net/http"

	"zipcode-api/internal/handler"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP routes of the service.
func NewRouter(addressHandler *handler.AddressHandler, historyHandler *handler.HistoryHandler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), LogRequest(), configureCORS(allowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/address", addressHandler.Lookup)
	r.GET("/history", historyHandler.History)

	return r
}
