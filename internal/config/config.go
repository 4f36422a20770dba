package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config структура конфигурации приложения
type Config struct {
	Server struct {
		Port        int
		Host        string
		Environment string
	}
	Database struct {
		Host     string
		Port     string
		Name     string
		User     string
		Password string
		SSLMode  string
	}
	Storage struct {
		Dir string // корневая папка для изображений артикулов и эталонных изображений
	}
	CameraServer struct {
		BaseURL string
		Timeout int // в секундах
	}
	Geometry struct {
		NativeWidth       int
		NativeHeight      int
		CalibrationWidth  int
		CalibrationHeight int
	}
	GRPC struct {
		Port int // 0 отключает gRPC health сервер
	}
	Logging struct {
		Level string
	}
}

// LoadConfig загружает конфигурацию из .env (если есть) и переменных окружения
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv собирает конфигурацию только из переменных окружения
func FromEnv() *Config {
	cfg := &Config{}

	// Конфигурация сервера
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.Server.Environment = getEnv("ENVIRONMENT", "development")

	// Конфигурация базы данных
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.Name = getEnv("DB_NAME", "garment_qc")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", "disable")

	cfg.Storage.Dir = getEnv("STORAGE_DIR", "./storage")

	// Python сервер камеры
	cfg.CameraServer.BaseURL = getEnv("CAMERA_SERVER_URL", "http://127.0.0.1:5555")
	cfg.CameraServer.Timeout = getEnvInt("CAMERA_SERVER_TIMEOUT_SECONDS", 5)

	// Разрешения входят в контракт с системой контроля, меняются только осознанно
	cfg.Geometry.NativeWidth = getEnvInt("NATIVE_WIDTH", 5488)
	cfg.Geometry.NativeHeight = getEnvInt("NATIVE_HEIGHT", 3672)
	cfg.Geometry.CalibrationWidth = getEnvInt("CALIBRATION_FRAME_WIDTH", 1920)
	cfg.Geometry.CalibrationHeight = getEnvInt("CALIBRATION_FRAME_HEIGHT", 1080)

	cfg.GRPC.Port = getEnvInt("GRPC_PORT", 9090)

	// Конфигурация логирования
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает int значение переменной окружения или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
