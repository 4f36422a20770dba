package handler

import (
	"net/http"

	"garment-qc-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RegistrationHandler обрабатывает запросы страницы регистрации артикулов
type RegistrationHandler struct {
	registrationService *service.RegistrationService
	logger              *logrus.Logger
}

// NewRegistrationHandler создает новый обработчик регистрации
func NewRegistrationHandler(registrationService *service.RegistrationService, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// RegisterRoutes регистрирует маршруты регистрации
func (h *RegistrationHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/articles/:id/sizes", h.Sizes)
	api.GET("/articles/:id/sizes/:size/images", h.Images)
	api.GET("/registration/password", h.PasswordStatus)
	api.POST("/registration/password", h.SetPassword)
	api.POST("/registration/password/verify", h.VerifyPassword)
}

type setPasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	CurrentPassword string `json:"current_password"`
}

type verifyPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// Sizes возвращает размеры артикула
func (h *RegistrationHandler) Sizes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	sizes, err := h.registrationService.Sizes(id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to get article sizes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"article_style": sizes.ArticleStyle,
		"sizes":         sizes.Sizes,
	})
}

// Images возвращает снимки артикула выбранного размера
func (h *RegistrationHandler) Images(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	images, err := h.registrationService.Images(id, c.Param("size"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get article images")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"article_style": images.ArticleStyle,
		"size":          images.Size,
		"images":        images.Images,
		"annotation":    images.Annotation,
	})
}

// PasswordStatus сообщает, задан ли пароль страницы
func (h *RegistrationHandler) PasswordStatus(c *gin.Context) {
	has, err := h.registrationService.HasPassword()
	if err != nil {
		respondError(c, h.logger, err, "Failed to check password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"has_password": has,
	})
}

// SetPassword задает или меняет пароль страницы
func (h *RegistrationHandler) SetPassword(c *gin.Context) {
	var req setPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Password is required")
		return
	}

	if err := h.registrationService.SetPassword(req.Password, req.CurrentPassword); err != nil {
		respondError(c, h.logger, err, "Failed to set password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password updated successfully",
	})
}

// VerifyPassword проверяет пароль страницы
func (h *RegistrationHandler) VerifyPassword(c *gin.Context) {
	var req verifyPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, "Password is required")
		return
	}

	if err := h.registrationService.VerifyPassword(req.Password); err != nil {
		respondError(c, h.logger, err, "Failed to verify password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password verified",
	})
}
