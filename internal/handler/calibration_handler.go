package handler

import (
	"fmt"
	"net/http"

	"garment-qc-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CalibrationHandler обрабатывает HTTP запросы калибровки камеры
type CalibrationHandler struct {
	calibrationService *service.CalibrationService
	logger             *logrus.Logger
}

// NewCalibrationHandler создает новый обработчик калибровок
func NewCalibrationHandler(calibrationService *service.CalibrationService, logger *logrus.Logger) *CalibrationHandler {
	return &CalibrationHandler{
		calibrationService: calibrationService,
		logger:             logger,
	}
}

// RegisterRoutes регистрирует маршруты калибровки
func (h *CalibrationHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/calibration", h.GetActive)
	api.POST("/calibration", h.Save)
	api.GET("/calibrations", h.List)
	api.POST("/calibrations/:id/activate", h.Activate)
	api.DELETE("/calibrations/:id", h.Delete)
}

// saveCalibrationRequest тело запроса сохранения калибровки
type saveCalibrationRequest struct {
	Name              string       `json:"name" binding:"max=255"`
	CalibrationPoints [][]*float64 `json:"calibration_points" binding:"required"`
	ReferenceLengthCm *float64     `json:"reference_length_cm" binding:"required"`
}

// points проверяет форму точек: ровно две точки по две координаты в диапазоне 0-100
func (r *saveCalibrationRequest) points() ([2][2]float64, error) {
	var points [2][2]float64
	if len(r.CalibrationPoints) != 2 {
		return points, fmt.Errorf("calibration_points must contain exactly 2 points")
	}
	for i, p := range r.CalibrationPoints {
		if len(p) != 2 {
			return points, fmt.Errorf("calibration_points.%d must contain exactly 2 coordinates", i)
		}
		for j, v := range p {
			if v == nil {
				return points, fmt.Errorf("calibration_points.%d.%d is required", i, j)
			}
			if *v < 0 || *v > 100 {
				return points, fmt.Errorf("calibration_points.%d.%d must be between 0 and 100", i, j)
			}
			points[i][j] = *v
		}
	}
	return points, nil
}

// Save сохраняет калибровку по двум точкам и делает ее активной
func (h *CalibrationHandler) Save(c *gin.Context) {
	h.logger.Info("Получен запрос на сохранение калибровки")

	var req saveCalibrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Неверный запрос калибровки: %v", err)
		validationError(c, "Invalid calibration request: "+err.Error())
		return
	}

	points, err := req.points()
	if err != nil {
		validationError(c, err.Error())
		return
	}
	if *req.ReferenceLengthCm < 0.1 || *req.ReferenceLengthCm > 1000 {
		validationError(c, "reference_length_cm must be between 0.1 and 1000")
		return
	}

	calibration, err := h.calibrationService.Save(service.SaveCalibrationRequest{
		Name:              req.Name,
		Points:            points,
		ReferenceLengthCm: *req.ReferenceLengthCm,
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to save calibration")
		return
	}

	h.logger.Infof("Калибровка %d сохранена: %.4f px/cm", calibration.ID, calibration.PixelsPerCm)
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Calibration saved successfully",
		"calibration": calibration,
	})
}

// GetActive возвращает активную калибровку
func (h *CalibrationHandler) GetActive(c *gin.Context) {
	calibration, err := h.calibrationService.GetActive()
	if err != nil {
		respondError(c, h.logger, err, "Failed to get calibration")
		return
	}

	if calibration == nil {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"calibration": nil,
			"message":     "No calibration found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"calibration": calibration,
	})
}

// List возвращает все калибровки
func (h *CalibrationHandler) List(c *gin.Context) {
	calibrations, err := h.calibrationService.List()
	if err != nil {
		respondError(c, h.logger, err, "Failed to list calibrations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"calibrations": calibrations,
	})
}

// Activate делает калибровку активной
func (h *CalibrationHandler) Activate(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.calibrationService.Activate(id); err != nil {
		respondError(c, h.logger, err, "Failed to activate calibration")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Calibration activated successfully",
	})
}

// Delete удаляет калибровку
func (h *CalibrationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.calibrationService.Delete(id); err != nil {
		respondError(c, h.logger, err, "Failed to delete calibration")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Calibration deleted successfully",
	})
}
