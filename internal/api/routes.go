package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes attaches the API endpoints to the router. Health endpoints
// are registered by the server package.
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/search", h.Search)
		v1.POST("/search/profile", h.SearchProfile)
		v1.GET("/trending", h.Trending)
		v1.GET("/classify", h.Classify)

		leads := v1.Group("/leads")
		{
			leads.POST("/import", h.Import)
			leads.POST("/enrich", h.Enrich)
			leads.POST("/analyze", h.Analyze)
		}
	}
}
