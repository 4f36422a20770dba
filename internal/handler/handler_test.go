package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"garment-qc-go/internal/client"
	"garment-qc-go/internal/database/dbtest"
	"garment-qc-go/internal/geometry"
	"garment-qc-go/internal/model"
	"garment-qc-go/internal/repository"
	"garment-qc-go/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router     *gin.Engine
	db         *gorm.DB
	storageDir string
}

func newTestServer(t *testing.T, cameraURL string) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := dbtest.New(t)
	storageDir := t.TempDir()
	calc := geometry.NewDefaultCalculator()

	calibrationRepo := repository.NewCalibrationRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	calibrations := service.NewCalibrationService(calibrationRepo, calc, logger)
	images := service.NewReferenceImageStore(storageDir, logger)
	annotations := service.NewAnnotationService(annotationRepo, articleRepo, calibrations, images, calc, logger)
	registration := service.NewRegistrationService(settingRepo, articleRepo, annotationRepo, logger)
	camera := service.NewCameraService(client.NewCameraServerClient(cameraURL, time.Second, logger), logger)

	router := NewRouter(storageDir,
		NewCalibrationHandler(calibrations, logger),
		NewAnnotationHandler(annotations, logger),
		NewRegistrationHandler(registration, logger),
		NewCameraHandler(camera, logger),
		NewHealthHandler(db, Version, logger),
	)

	return &testServer{router: router, db: db, storageDir: storageDir}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(data)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func (s *testServer) calibrate(t *testing.T) {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/api/v1/calibration", map[string]any{
		"calibration_points":  [][]float64{{10, 50}, {90, 50}},
		"reference_length_cm": 10,
	})
	require.Equal(t, http.StatusOK, code, resp)
}

func (s *testServer) seedImage(t *testing.T, style, size string, width, height int) (*model.Article, *model.ArticleImage) {
	t.Helper()
	relPath := "article-images/" + style + "_" + size + ".png"
	fullPath := filepath.Join(s.storageDir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	f, err := os.Create(fullPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, width, height))))
	require.NoError(t, f.Close())

	article := &model.Article{ArticleStyle: style}
	require.NoError(t, s.db.Create(article).Error)
	img := &model.ArticleImage{ArticleID: article.ID, ArticleStyle: style, Size: size, ImagePath: relPath}
	require.NoError(t, s.db.Create(img).Error)
	return article, img
}
