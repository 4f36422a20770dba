package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"garment-qc-go/internal/geometry"
	"garment-qc-go/internal/model"
	"garment-qc-go/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// CalibrationService сервис для работы с калибровками камеры
type CalibrationService struct {
	calibrationRepo repository.CalibrationRepository
	calc            *geometry.Calculator
	logger          *logrus.Logger
	now             func() time.Time
}

// NewCalibrationService создает новый сервис калибровок
func NewCalibrationService(calibrationRepo repository.CalibrationRepository, calc *geometry.Calculator, logger *logrus.Logger) *CalibrationService {
	return &CalibrationService{
		calibrationRepo: calibrationRepo,
		calc:            calc,
		logger:          logger,
		now:             time.Now,
	}
}

// Save вычисляет масштаб по двум точкам, сохраняет калибровку и делает ее активной (одна транзакция)
func (s *CalibrationService) Save(req SaveCalibrationRequest) (*CalibrationResponse, error) {
	if req.ReferenceLengthCm <= 0 {
		return nil, fmt.Errorf("%w: reference length must be positive", ErrInvalidInput)
	}

	p1 := geometry.Point{X: req.Points[0][0], Y: req.Points[0][1]}
	p2 := geometry.Point{X: req.Points[1][0], Y: req.Points[1][1]}

	result, err := s.calc.ResolveCalibration(p1, p2, req.ReferenceLengthCm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.WithFields(logrus.Fields{
		"point1_percent":      req.Points[0],
		"point2_percent":      req.Points[1],
		"point1_pixels":       [2]float64{result.Pixel1.X, result.Pixel1.Y},
		"point2_pixels":       [2]float64{result.Pixel2.X, result.Pixel2.Y},
		"pixel_distance":      result.PixelDistance,
		"reference_length_cm": req.ReferenceLengthCm,
		"pixels_per_cm":       result.PixelsPerCm,
	}).Info("Вычислена калибровка")

	if result.PixelsPerCm <= 0 {
		return nil, fmt.Errorf("%w: calibration points coincide", ErrInvalidInput)
	}

	name := req.Name
	if name == "" {
		name = "Calibration " + s.now().Format("2006-01-02 15:04:05")
	}

	calibration := &model.CameraCalibration{
		Name:              name,
		PixelsPerCm:       result.PixelsPerCm,
		ReferenceLengthCm: req.ReferenceLengthCm,
		PixelDistance:     int(math.Round(result.PixelDistance)),
		CalibrationPoints: datatypes.NewJSONType(model.CalibrationPoints(req.Points)),
		IsActive:          false,
	}

	if err := s.calibrationRepo.CreateActive(calibration); err != nil {
		s.logger.Errorf("Ошибка сохранения калибровки: %v", err)
		return nil, fmt.Errorf("failed to save calibration: %w", err)
	}
	s.logger.Infof("Калибровка %d создана и активирована", calibration.ID)

	return calibrationToResponse(calibration), nil
}

// GetActive получает активную калибровку; nil, если калибровки нет
func (s *CalibrationService) GetActive() (*CalibrationResponse, error) {
	calibration, err := s.calibrationRepo.GetActive()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		s.logger.Errorf("Ошибка получения активной калибровки: %v", err)
		return nil, fmt.Errorf("failed to get active calibration: %w", err)
	}
	return calibrationToResponse(calibration), nil
}

// ActiveScale возвращает pixels-per-cm активной калибровки.
// Отсутствие калибровки или непригодный масштаб - ErrNoActiveCalibration.
func (s *CalibrationService) ActiveScale() (float64, error) {
	calibration, err := s.calibrationRepo.GetActive()
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNoActiveCalibration
		}
		return 0, fmt.Errorf("failed to get active calibration: %w", err)
	}
	if calibration.PixelsPerCm <= 0 {
		s.logger.Warnf("Активная калибровка %d имеет непригодный масштаб %.4f", calibration.ID, calibration.PixelsPerCm)
		return 0, ErrNoActiveCalibration
	}
	return calibration.PixelsPerCm, nil
}

// List получает все калибровки, новые первыми
func (s *CalibrationService) List() ([]CalibrationResponse, error) {
	calibrations, err := s.calibrationRepo.List()
	if err != nil {
		s.logger.Errorf("Ошибка получения списка калибровок: %v", err)
		return nil, fmt.Errorf("failed to list calibrations: %w", err)
	}

	responses := make([]CalibrationResponse, len(calibrations))
	for i, calibration := range calibrations {
		responses[i] = *calibrationToResponse(calibration)
	}
	return responses, nil
}

// Activate делает калибровку активной
func (s *CalibrationService) Activate(id uint) error {
	s.logger.Infof("Активируем калибровку %d", id)
	if err := s.calibrationRepo.Activate(id); err != nil {
		s.logger.Errorf("Ошибка активации калибровки %d: %v", id, err)
		return fmt.Errorf("failed to activate calibration: %w", err)
	}
	return nil
}

// Delete удаляет калибровку; активность переходит к самой свежей из оставшихся
func (s *CalibrationService) Delete(id uint) error {
	s.logger.Infof("Удаляем калибровку %d", id)
	if err := s.calibrationRepo.Delete(id); err != nil {
		s.logger.Errorf("Ошибка удаления калибровки %d: %v", id, err)
		return fmt.Errorf("failed to delete calibration: %w", err)
	}
	return nil
}

// calibrationToResponse преобразует модель базы данных в ответ API
func calibrationToResponse(c *model.CameraCalibration) *CalibrationResponse {
	return &CalibrationResponse{
		ID:                c.ID,
		Name:              c.Name,
		PixelsPerCm:       c.PixelsPerCm,
		ReferenceLengthCm: c.ReferenceLengthCm,
		PixelDistance:     c.PixelDistance,
		CalibrationPoints: c.CalibrationPoints.Data(),
		IsActive:          c.IsActive,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
