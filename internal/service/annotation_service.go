package service

import (
	"errors"
	"fmt"
	"time"

	"garment-qc-go/internal/geometry"
	"garment-qc-go/internal/model"
	"garment-qc-go/internal/repository"
	"garment-qc-go/pkg/models"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// AnnotationService сервис для эталонных аннотаций изделий
type AnnotationService struct {
	annotationRepo repository.AnnotationRepository
	articleRepo    repository.ArticleRepository
	calibrations   *CalibrationService
	images         *ReferenceImageStore
	calc           *geometry.Calculator
	logger         *logrus.Logger
}

// NewAnnotationService создает новый сервис аннотаций
func NewAnnotationService(
	annotationRepo repository.AnnotationRepository,
	articleRepo repository.ArticleRepository,
	calibrations *CalibrationService,
	images *ReferenceImageStore,
	calc *geometry.Calculator,
	logger *logrus.Logger,
) *AnnotationService {
	return &AnnotationService{
		annotationRepo: annotationRepo,
		articleRepo:    articleRepo,
		calibrations:   calibrations,
		images:         images,
		calc:           calc,
		logger:         logger,
	}
}

// Save пересчитывает точки оператора в пиксели и расстояния и сохраняет аннотацию для пары (модель артикула, размер)
func (s *AnnotationService) Save(req SaveAnnotationRequest) (*AnnotationResponse, error) {
	s.logger.Infof("Сохраняем аннотацию: артикул %d, снимок %d, точек %d", req.ArticleID, req.ArticleImageID, len(req.Annotations))

	// Без калибровки расстояния не вычислить, ничего не сохраняем
	pixelsPerCm, err := s.calibrations.ActiveScale()
	if err != nil {
		return nil, err
	}

	article, err := s.articleRepo.GetByID(req.ArticleID)
	if err != nil {
		return nil, err
	}
	articleImage, err := s.articleRepo.GetImageByID(req.ArticleImageID)
	if err != nil {
		return nil, err
	}
	if articleImage.ArticleID != article.ID {
		return nil, fmt.Errorf("%w: image %d does not belong to article %d", ErrInvalidInput, articleImage.ID, article.ID)
	}

	captureWidth, captureHeight, known, err := s.images.ReadDimensions(articleImage.ImagePath)
	if err != nil {
		s.logger.Errorf("Ошибка чтения исходного снимка %s: %v", articleImage.ImagePath, err)
		return nil, err
	}

	points := make([]geometry.Point, len(req.Annotations))
	for i, p := range req.Annotations {
		points[i] = geometry.Point{X: p.X, Y: p.Y}
	}

	capture := geometry.Resolution{Width: captureWidth, Height: captureHeight}
	geo, err := s.calc.AnnotationGeometry(points, capture, pixelsPerCm)
	if err != nil {
		if errors.Is(err, geometry.ErrInvalidScale) {
			return nil, ErrNoActiveCalibration
		}
		return nil, fmt.Errorf("failed to compute annotation geometry: %w", err)
	}
	if geo.Degraded {
		s.logger.Warnf("Размеры снимка %s неизвестны, точки пересчитаны без масштабирования (кадр %dx%d)",
			articleImage.ImagePath, geo.Capture.Width, geo.Capture.Height)
	}
	if geo.IgnoredTrailing {
		s.logger.Warnf("Нечетное количество точек (%d), последняя точка без пары не учитывается", len(points))
	}

	s.logger.WithFields(logrus.Fields{
		"pixels_per_cm":     pixelsPerCm,
		"capture_keypoints": geo.CaptureKeypoints,
		"native_keypoints":  geo.NativeKeypoints,
		"target_distances":  geo.TargetDistances,
		"pairs":             geometry.PairCount(len(points)),
	}).Info("Вычислены эталонные расстояния")

	var previousPath string
	existing, err := s.annotationRepo.GetByStyleAndSize(article.ArticleStyle, articleImage.Size)
	switch {
	case err == nil:
		previousPath = existing.ReferenceImagePath
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("failed to get existing annotation: %w", err)
	}

	reference, err := s.images.Stage(articleImage.ImagePath, article.ArticleStyle, articleImage.Size)
	if err != nil {
		s.logger.Errorf("Ошибка сохранения эталонного изображения: %v", err)
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("Annotation for %s - %s", article.ArticleStyle, articleImage.Size)
	}

	native := s.calc.Native()
	annotation := &model.ArticleAnnotation{
		ArticleID:          article.ID,
		ArticleImageID:     articleImage.ID,
		ArticleStyle:       article.ArticleStyle,
		Size:               articleImage.Size,
		Name:               name,
		Annotations:        datatypes.NewJSONType(req.Annotations),
		KeypointsPixels:    datatypes.NewJSONType(geo.NativeKeypoints),
		TargetDistances:    datatypes.NewJSONType(geo.TargetDistances),
		PlacementBox:       datatypes.NewJSONType([]int{}),
		ImageWidth:         native.Width,
		ImageHeight:        native.Height,
		NativeWidth:        native.Width,
		NativeHeight:       native.Height,
		CaptureSource:      model.CaptureSourceWebcam,
		ReferenceImagePath: reference.Path,
		ImageData:          reference.Data,
		ImageMimeType:      reference.MimeType,
	}
	if known {
		annotation.CaptureWidth = &captureWidth
		annotation.CaptureHeight = &captureHeight
	}

	// Файлы меняются только после успешной записи в БД
	if err := s.annotationRepo.Upsert(annotation); err != nil {
		s.images.Discard(reference)
		s.logger.Errorf("Ошибка сохранения аннотации в БД: %v", err)
		return nil, fmt.Errorf("failed to save annotation: %w", err)
	}

	if err := s.images.Commit(reference, previousPath, article.ArticleStyle, articleImage.Size); err != nil {
		s.logger.Errorf("Аннотация %d сохранена, но эталонное изображение %s не обновлено: %v",
			annotation.ID, reference.Path, err)
		return nil, err
	}

	s.logger.Infof("Аннотация %d сохранена для %s / %s", annotation.ID, article.ArticleStyle, articleImage.Size)
	return annotationToResponse(annotation), nil
}

// GetByImage получает аннотацию, построенную по снимку; nil, если ее нет
func (s *AnnotationService) GetByImage(articleImageID uint) (*AnnotationResponse, error) {
	if _, err := s.articleRepo.GetImageByID(articleImageID); err != nil {
		return nil, err
	}

	annotation, err := s.annotationRepo.GetByImageID(articleImageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}
	return annotationToResponse(annotation), nil
}

// Delete удаляет аннотацию и ее эталонное изображение
func (s *AnnotationService) Delete(id uint) error {
	s.logger.Infof("Удаляем аннотацию %d", id)

	annotation, err := s.annotationRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.annotationRepo.Delete(id); err != nil {
		s.logger.Errorf("Ошибка удаления аннотации из БД: %v", err)
		return fmt.Errorf("failed to delete annotation: %w", err)
	}

	s.images.Remove(annotation.ReferenceImagePath)
	return nil
}

// MeasurementFormat возвращает аннотацию в формате измерительной системы станции контроля
func (s *AnnotationService) MeasurementFormat(articleStyle, size string) (*models.MeasurementFormat, error) {
	annotation, err := s.annotationRepo.GetByStyleAndSize(articleStyle, size)
	if err != nil {
		return nil, err
	}

	keypoints := annotation.KeypointsPixels.Data()
	if len(keypoints) == 0 {
		keypoints = percentToImagePixels(annotation.Annotations.Data(), annotation.ImageWidth, annotation.ImageHeight)
	}

	distances := annotation.TargetDistances.Data()
	if distances == nil {
		distances = map[int]float64{}
	}
	placementBox := annotation.PlacementBox.Data()
	if placementBox == nil {
		placementBox = []int{}
	}

	return &models.MeasurementFormat{
		Keypoints:       keypoints,
		TargetDistances: distances,
		PlacementBox:    placementBox,
		AnnotationDate:  annotation.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// percentToImagePixels переводит процентные точки в пиксели сохраненного разрешения изображения
func percentToImagePixels(points []models.AnnotationPoint, width, height int) [][2]int {
	keypoints := [][2]int{}
	if width <= 0 || height <= 0 {
		return keypoints
	}
	frame := geometry.Resolution{Width: width, Height: height}
	for _, p := range points {
		px := geometry.PercentToPixel(geometry.Point{X: p.X, Y: p.Y}, frame)
		keypoints = append(keypoints, geometry.ToNative(px, 1, 1))
	}
	return keypoints
}

// annotationToResponse преобразует модель базы данных в ответ API
func annotationToResponse(a *model.ArticleAnnotation) *AnnotationResponse {
	distances := a.TargetDistances.Data()
	if distances == nil {
		distances = map[int]float64{}
	}
	keypoints := a.KeypointsPixels.Data()
	if keypoints == nil {
		keypoints = [][2]int{}
	}

	return &AnnotationResponse{
		ID:                 a.ID,
		ArticleID:          a.ArticleID,
		ArticleImageID:     a.ArticleImageID,
		ArticleStyle:       a.ArticleStyle,
		Size:               a.Size,
		Name:               a.Name,
		Annotations:        a.Annotations.Data(),
		KeypointsPixels:    keypoints,
		TargetDistances:    distances,
		ImageWidth:         a.ImageWidth,
		ImageHeight:        a.ImageHeight,
		CaptureWidth:       a.CaptureWidth,
		CaptureHeight:      a.CaptureHeight,
		ReferenceImagePath: a.ReferenceImagePath,
		ImageMimeType:      a.ImageMimeType,
		ImageDataURL:       a.ImageDataURL(),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
