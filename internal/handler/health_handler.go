package handler

import (
	"net/http"

	"garment-qc-go/internal/database"
	"garment-qc-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HealthHandler проверка здоровья сервиса
type HealthHandler struct {
	db      *gorm.DB
	version string
	logger  *logrus.Logger
}

// NewHealthHandler создает новый обработчик проверки здоровья
func NewHealthHandler(db *gorm.DB, version string, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		logger:  logger,
	}
}

// RegisterRoutes регистрирует маршрут проверки здоровья
func (h *HealthHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/health", h.CheckHealth)
}

// CheckHealth проверяет состояние сервиса
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	if err := database.HealthCheck(h.db); err != nil {
		h.logger.Errorf("База данных недоступна: %v", err)
		c.JSON(http.StatusServiceUnavailable, models.HealthResponse{
			Status:  "unhealthy",
			Version: h.version,
		})
		return
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:   "healthy",
		Database: true,
		Version:  h.version,
	})
}
