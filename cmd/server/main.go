package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"garment-qc-go/internal/client"
	"garment-qc-go/internal/config"
	"garment-qc-go/internal/database"
	"garment-qc-go/internal/geometry"
	"garment-qc-go/internal/handler"
	"garment-qc-go/internal/repository"
	"garment-qc-go/internal/rpc"
	"garment-qc-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Инициализируем логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	logger.Info("Запуск Garment QC API Server")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("Неизвестный уровень логирования %q, используется info", cfg.Logging.Level)
	}

	// Инициализируем базу данных
	logger.Info("Подключение к базе данных...")
	if err := database.Connect(cfg); err != nil {
		logger.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer database.Close(database.DB)

	logger.Info("Выполнение миграций базы данных...")
	if err := database.Migrate(database.DB); err != nil {
		logger.Fatalf("Ошибка выполнения миграций: %v", err)
	}

	if err := database.HealthCheck(database.DB); err != nil {
		logger.Fatalf("База данных недоступна: %v", err)
	}
	logger.Info("База данных успешно подключена и готова к работе")

	// Папка хранилища снимков и эталонных изображений
	storageDir, err := filepath.Abs(cfg.Storage.Dir)
	if err != nil {
		logger.Fatalf("Неверный путь хранилища %s: %v", cfg.Storage.Dir, err)
	}
	if err := os.MkdirAll(storageDir, 0755); err != nil {
		logger.Fatalf("Ошибка создания папки хранилища: %v", err)
	}

	calc := geometry.NewCalculator(
		geometry.Resolution{Width: cfg.Geometry.CalibrationWidth, Height: cfg.Geometry.CalibrationHeight},
		geometry.Resolution{Width: cfg.Geometry.NativeWidth, Height: cfg.Geometry.NativeHeight},
	)
	calFrame, native := calc.CalibrationFrame(), calc.Native()
	logger.WithFields(logrus.Fields{
		"calibration_frame": fmt.Sprintf("%dx%d", calFrame.Width, calFrame.Height),
		"native":            fmt.Sprintf("%dx%d", native.Width, native.Height),
	}).Info("Параметры геометрии")

	// Инициализируем репозитории
	calibrationRepo := repository.NewCalibrationRepository(database.DB)
	annotationRepo := repository.NewAnnotationRepository(database.DB)
	articleRepo := repository.NewArticleRepository(database.DB)
	settingRepo := repository.NewSettingRepository(database.DB)

	// Инициализируем сервисы
	calibrationService := service.NewCalibrationService(calibrationRepo, calc, logger)
	images := service.NewReferenceImageStore(storageDir, logger)
	annotationService := service.NewAnnotationService(annotationRepo, articleRepo, calibrationService, images, calc, logger)
	registrationService := service.NewRegistrationService(settingRepo, articleRepo, annotationRepo, logger)
	cameraClient := client.NewCameraServerClient(cfg.CameraServer.BaseURL, time.Duration(cfg.CameraServer.Timeout)*time.Second, logger)
	cameraService := service.NewCameraService(cameraClient, logger)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handler.NewRouter(storageDir,
		handler.NewCalibrationHandler(calibrationService, logger),
		handler.NewAnnotationHandler(annotationService, logger),
		handler.NewRegistrationHandler(registrationService, logger),
		handler.NewCameraHandler(cameraService, logger),
		handler.NewHealthHandler(database.DB, handler.Version, logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.GRPC.Port > 0 {
		healthServer := rpc.NewHealthServer(func() error { return database.HealthCheck(database.DB) }, 15*time.Second, logger)
		go func() {
			if err := healthServer.Serve(ctx, cfg.GRPC.Port); err != nil {
				logger.Errorf("Ошибка gRPC health сервера: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Сервер запущен на %s", srv.Addr)
		logger.Infof("API доступно по адресу: http://localhost:%d/api/v1", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Ошибка запуска сервера: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Ошибка остановки сервера: %v", err)
	}
}
