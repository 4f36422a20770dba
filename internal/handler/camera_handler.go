package handler

import (
	"errors"
	"net/http"

	"garment-qc-go/internal/client"
	"garment-qc-go/internal/service"
	"garment-qc-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CameraHandler проксирует запросы к серверу камеры
type CameraHandler struct {
	cameraService *service.CameraService
	logger        *logrus.Logger
}

// NewCameraHandler создает новый обработчик камеры
func NewCameraHandler(cameraService *service.CameraService, logger *logrus.Logger) *CameraHandler {
	return &CameraHandler{
		cameraService: cameraService,
		logger:        logger,
	}
}

// RegisterRoutes регистрирует маршруты камеры
func (h *CameraHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/camera/status", h.Status)
	api.POST("/camera/mode", h.SetMode)
}

// Status возвращает статус камеры
func (h *CameraHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, h.cameraService.Status(c.Request.Context()))
}

// SetMode переключает режим съемки
func (h *CameraHandler) SetMode(c *gin.Context) {
	var req models.CameraModeRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Mode != "black" && req.Mode != "other") {
		c.JSON(http.StatusBadRequest, models.CameraModeResponse{Error: `Invalid mode. Use "black" or "other".`})
		return
	}

	resp, code, err := h.cameraService.SetMode(c.Request.Context(), req.Mode)
	if err != nil {
		if errors.Is(err, client.ErrUnreachable) {
			c.JSON(http.StatusServiceUnavailable, models.CameraModeResponse{Error: "Camera server is not reachable."})
			return
		}
		c.JSON(http.StatusBadGateway, models.CameraModeResponse{Error: "Invalid response from camera server."})
		return
	}

	h.logger.Infof("Режим камеры: %s", resp.Mode)
	c.JSON(code, resp)
}
