package handler

import (
	"net/http"

	"garment-qc-go/internal/service"
	"garment-qc-go/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AnnotationHandler обрабатывает HTTP запросы эталонных аннотаций
type AnnotationHandler struct {
	annotationService *service.AnnotationService
	logger            *logrus.Logger
}

// NewAnnotationHandler создает новый обработчик аннотаций
func NewAnnotationHandler(annotationService *service.AnnotationService, logger *logrus.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		annotationService: annotationService,
		logger:            logger,
	}
}

// RegisterRoutes регистрирует маршруты аннотаций
func (h *AnnotationHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/annotations", h.Save)
	api.GET("/annotations/:imageId", h.GetByImage)
	api.DELETE("/annotations/:id", h.Delete)
	// gin требует одно имя параметра в одной позиции пути: здесь :imageId содержит артикул
	api.GET("/annotations/:imageId/:size/measurement", h.MeasurementFormat)
}

type annotationPointRequest struct {
	X     *float64 `json:"x" binding:"required"`
	Y     *float64 `json:"y" binding:"required"`
	Label string   `json:"label"`
}

// saveAnnotationRequest тело запроса сохранения аннотации
type saveAnnotationRequest struct {
	ArticleID      uint                     `json:"article_id" binding:"required"`
	ArticleImageID uint                     `json:"article_image_id" binding:"required"`
	Annotations    []annotationPointRequest `json:"annotations" binding:"required,min=1,dive"`
	Name           string                   `json:"name" binding:"max=255"`
}

// Save сохраняет эталонную аннотацию для пары (артикул, размер)
func (h *AnnotationHandler) Save(c *gin.Context) {
	h.logger.Info("Получен запрос на сохранение аннотации")

	var req saveAnnotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf("Неверный запрос аннотации: %v", err)
		validationError(c, "Invalid annotation request: "+err.Error())
		return
	}

	points := make([]models.AnnotationPoint, len(req.Annotations))
	for i, p := range req.Annotations {
		points[i] = models.AnnotationPoint{X: *p.X, Y: *p.Y, Label: p.Label}
	}

	annotation, err := h.annotationService.Save(service.SaveAnnotationRequest{
		ArticleID:      req.ArticleID,
		ArticleImageID: req.ArticleImageID,
		Annotations:    points,
		Name:           req.Name,
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to save annotation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"message":              "Annotation saved successfully",
		"annotation":           annotation,
		"reference_image_path": annotation.ReferenceImagePath,
		"keypoints_pixels":     annotation.KeypointsPixels,
		"target_distances":     annotation.TargetDistances,
		"image_width":          annotation.ImageWidth,
		"image_height":         annotation.ImageHeight,
	})
}

// GetByImage возвращает аннотацию снимка артикула
func (h *AnnotationHandler) GetByImage(c *gin.Context) {
	id, ok := parseID(c, "imageId")
	if !ok {
		return
	}

	annotation, err := h.annotationService.GetByImage(id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get annotation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"annotation": annotation,
	})
}

// Delete удаляет аннотацию вместе с эталонным изображением
func (h *AnnotationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.annotationService.Delete(id); err != nil {
		respondError(c, h.logger, err, "Failed to delete annotation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Annotation deleted successfully",
	})
}

// MeasurementFormat возвращает аннотацию в формате измерительной системы
func (h *AnnotationHandler) MeasurementFormat(c *gin.Context) {
	style := c.Param("imageId")
	size := c.Param("size")

	format, err := h.annotationService.MeasurementFormat(style, size)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get measurement format")
		return
	}

	c.JSON(http.StatusOK, format)
}
