package service

import (
	"context"
	"time"

	"garment-qc-go/internal/client"
	"garment-qc-go/pkg/models"

	"github.com/sirupsen/logrus"
)

const cameraStatusTimeout = 2 * time.Second

// CameraService проксирует запросы к Python серверу камеры
type CameraService struct {
	cameraClient *client.CameraServerClient
	logger       *logrus.Logger
}

// NewCameraService создает новый сервис камеры
func NewCameraService(cameraClient *client.CameraServerClient, logger *logrus.Logger) *CameraService {
	return &CameraService{
		cameraClient: cameraClient,
		logger:       logger,
	}
}

// Status возвращает статус камеры. Недоступный сервер - не ошибка, а статус offline.
func (s *CameraService) Status(ctx context.Context) *models.CameraStatus {
	ctx, cancel := context.WithTimeout(ctx, cameraStatusTimeout)
	defer cancel()

	status, err := s.cameraClient.Status(ctx)
	if err != nil {
		s.logger.Warnf("Сервер камеры недоступен: %v", err)
		return &models.CameraStatus{
			Status:      "offline",
			CurrentMode: "other",
			CameraURL:   s.cameraClient.BaseURL(),
			Message:     "Camera server is not reachable.",
		}
	}

	status.CameraURL = s.cameraClient.BaseURL()
	return status
}

// SetMode переключает режим съемки
func (s *CameraService) SetMode(ctx context.Context, mode string) (*models.CameraModeResponse, int, error) {
	resp, code, err := s.cameraClient.SetMode(ctx, mode)
	if err != nil {
		s.logger.Errorf("Ошибка переключения режима камеры: %v", err)
		return nil, code, err
	}
	return resp, code, nil
}
