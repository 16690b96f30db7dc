package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.POST("/features", handler.DeriveFeatures)
		api.POST("/predict", handler.Predict)
		api.POST("/geocode", handler.Geocode)
		api.POST("/properties", handler.IngestProperties)
	}
}
