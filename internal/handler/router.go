package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar обработчик, регистрирующий свои маршруты в группе /api/v1
type RouteRegistrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// NewRouter настраивает Gin router: middleware, статические файлы хранилища и маршруты API
func NewRouter(storageDir string, registrars ...RouteRegistrar) *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Снимки артикулов и эталонные изображения
	if storageDir != "" {
		router.Static("/storage", storageDir)
	}

	api := router.Group("/api/v1")
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Garment QC API Server",
			"version": Version,
			"status":  "running",
		})
	})

	return router
}

// Version версия API
const Version = "1.0.0"

// corsMiddleware добавляет заголовки CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
