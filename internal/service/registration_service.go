package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"garment-qc-go/internal/model"
	"garment-qc-go/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	passwordSpecials  = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?"
)

// RegistrationService сервис страницы регистрации артикулов: пароль доступа, размеры и снимки
type RegistrationService struct {
	settingRepo    repository.SettingRepository
	articleRepo    repository.ArticleRepository
	annotationRepo repository.AnnotationRepository
	logger         *logrus.Logger
}

// NewRegistrationService создает новый сервис регистрации
func NewRegistrationService(
	settingRepo repository.SettingRepository,
	articleRepo repository.ArticleRepository,
	annotationRepo repository.AnnotationRepository,
	logger *logrus.Logger,
) *RegistrationService {
	return &RegistrationService{
		settingRepo:    settingRepo,
		articleRepo:    articleRepo,
		annotationRepo: annotationRepo,
		logger:         logger,
	}
}

// HasPassword сообщает, задан ли пароль страницы
func (s *RegistrationService) HasPassword() (bool, error) {
	_, ok, err := s.settingRepo.Get(model.SettingRegistrationPassword)
	return ok, err
}

// SetPassword задает пароль страницы. Если пароль уже задан, требуется текущий.
func (s *RegistrationService) SetPassword(password, currentPassword string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	existing, ok, err := s.settingRepo.Get(model.SettingRegistrationPassword)
	if err != nil {
		return err
	}
	if ok {
		if currentPassword == "" || bcrypt.CompareHashAndPassword([]byte(existing), []byte(currentPassword)) != nil {
			s.logger.Warn("Попытка смены пароля регистрации с неверным текущим паролем")
			return ErrInvalidPassword
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.settingRepo.Set(model.SettingRegistrationPassword, string(hash)); err != nil {
		return err
	}

	s.logger.Info("Пароль страницы регистрации обновлен")
	return nil
}

// VerifyPassword проверяет пароль доступа к странице
func (s *RegistrationService) VerifyPassword(password string) error {
	stored, ok, err := s.settingRepo.Get(model.SettingRegistrationPassword)
	if err != nil {
		return err
	}
	if !ok || bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
		return ErrInvalidPassword
	}
	return nil
}

// Sizes получает размеры артикула, для которых есть снимки
func (s *RegistrationService) Sizes(articleID uint) (*ArticleSizesResponse, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	sizes, err := s.articleRepo.ListSizes(articleID)
	if err != nil {
		s.logger.Errorf("Ошибка получения размеров артикула %d: %v", articleID, err)
		return nil, err
	}

	return &ArticleSizesResponse{
		ArticleStyle: article.ArticleStyle,
		Sizes:        sizes,
	}, nil
}

// Images получает снимки артикула заданного размера и текущую аннотацию для этой пары
func (s *RegistrationService) Images(articleID uint, size string) (*ArticleImagesResponse, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return nil, err
	}

	images, err := s.articleRepo.ListImages(articleID, size)
	if err != nil {
		s.logger.Errorf("Ошибка получения снимков артикула %d: %v", articleID, err)
		return nil, err
	}

	response := &ArticleImagesResponse{
		ArticleStyle: article.ArticleStyle,
		Size:         size,
		Images:       make([]ArticleImageResponse, len(images)),
	}
	for i, img := range images {
		response.Images[i] = ArticleImageResponse{
			ID:        img.ID,
			ImagePath: img.ImagePath,
			ImageName: img.ImageName,
			Size:      img.Size,
			CreatedAt: img.CreatedAt,
		}
	}

	annotation, err := s.annotationRepo.GetByStyleAndSize(article.ArticleStyle, size)
	switch {
	case err == nil:
		response.Annotation = annotationToResponse(annotation)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	return response, nil
}

// validatePassword не менее 8 символов, хотя бы одна буква и один спецсимвол
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hasLetter := strings.IndexFunc(password, unicode.IsLetter) >= 0
	hasSpecial := strings.ContainsAny(password, passwordSpecials)
	if !hasLetter || !hasSpecial {
		return fmt.Errorf("%w: password must contain at least one letter and one special character", ErrInvalidInput)
	}
	return nil
}
