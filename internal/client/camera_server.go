package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"garment-qc-go/pkg/models"

	"github.com/sirupsen/logrus"
)

// ErrUnreachable сервер камеры не отвечает
var ErrUnreachable = errors.New("camera server unreachable")

// CameraServerClient клиент для Python сервера камеры (превью, съемка, режим)
type CameraServerClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewCameraServerClient создает новый клиент для сервера камеры
func NewCameraServerClient(baseURL string, timeout time.Duration, logger *logrus.Logger) *CameraServerClient {
	return &CameraServerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL адрес сервера камеры
func (c *CameraServerClient) BaseURL() string {
	return c.baseURL
}

// Status получает статус камеры
func (c *CameraServerClient) Status(ctx context.Context) (*models.CameraStatus, error) {
	c.logger.Debug("Проверка статуса сервера камеры")

	url := fmt.Sprintf("%s/api/status", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: статус %d, тело: %s", ErrUnreachable, resp.StatusCode, string(respBody))
	}

	var status models.CameraStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("ошибка парсинга JSON ответа: %w", err)
	}
	return &status, nil
}

// SetMode переключает режим съемки (black / other). Возвращает ответ и HTTP статус сервера камеры.
func (c *CameraServerClient) SetMode(ctx context.Context, mode string) (*models.CameraModeResponse, int, error) {
	c.logger.Infof("Переключение режима камеры: %s", mode)

	body, err := json.Marshal(models.CameraModeRequest{Mode: mode})
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/api/mode", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка создания HTTP запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	var modeResponse models.CameraModeResponse
	if err := json.Unmarshal(respBody, &modeResponse); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("ошибка парсинга JSON ответа: %w", err)
	}
	return &modeResponse, resp.StatusCode, nil
}
