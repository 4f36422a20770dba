package models

// CameraStatus статус Python сервера камеры
type CameraStatus struct {
	Status      string  `json:"status"`            // ready / no_camera / offline / starting
	CameraType  *string `json:"camera_type"`       // Тип камеры (nil если камеры нет)
	CurrentMode string  `json:"current_mode"`      // Режим съемки (black / other)
	Streaming   bool    `json:"streaming"`         // Идет ли MJPEG поток
	Server      string  `json:"server,omitempty"`  // Версия сервера камеры
	CameraURL   string  `json:"camera_url"`        // Прямой адрес сервера камеры для фронтенда
	Message     string  `json:"message,omitempty"` // Пояснение для оператора
}

// CameraModeRequest запрос смены режима съемки
type CameraModeRequest struct {
	Mode string `json:"mode"`
}

// CameraModeResponse ответ сервера камеры на смену режима
type CameraModeResponse struct {
	Success  bool           `json:"success"`
	Mode     string         `json:"mode,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// HealthResponse ответ проверки здоровья сервиса
type HealthResponse struct {
	Status   string `json:"status"`   // healthy / unhealthy
	Database bool   `json:"database"` // Доступна ли база данных
	Version  string `json:"version"`  // Версия сервиса
}
