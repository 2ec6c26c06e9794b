package ginsrv

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse is the standard health check response body.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// RegisterHealthRoutes registers the standard health check endpoints.
func RegisterHealthRoutes(router *gin.Engine, serviceName, serviceVersion string) {
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Service:   serviceName,
			Version:   serviceVersion,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}

	router.GET("/health", handler)
	router.HEAD("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}
