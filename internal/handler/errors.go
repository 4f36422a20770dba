package handler

import (
	"errors"
	"net/http"
	"strconv"

	"garment-qc-go/internal/repository"
	"garment-qc-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// statusFor сопоставляет ошибку сервиса HTTP статусу
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNoActiveCalibration),
		errors.Is(err, repository.ErrLastCalibration),
		errors.Is(err, service.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidPassword):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError отправляет ошибку клиенту. Для 5xx детали остаются в логе, клиент получает fallback.
func respondError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	status := statusFor(err)
	message := err.Error()
	switch {
	case status >= http.StatusInternalServerError:
		logger.Errorf("%s: %v", fallback, err)
		message = fallback
	case errors.Is(err, service.ErrNoActiveCalibration):
		message = "No active camera calibration found. Please calibrate the camera first."
	case errors.Is(err, repository.ErrLastCalibration):
		message = "Cannot delete the only calibration. Please create another calibration first."
	default:
		logger.Warnf("%s: %v", fallback, err)
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// validationError ответ на невалидный запрос
func validationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"success": false,
		"message": message,
	})
}

// parseID разбирает числовой параметр пути
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid " + name,
		})
		return 0, false
	}
	return uint(id), true
}
