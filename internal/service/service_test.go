package service

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"garment-qc-go/internal/database/dbtest"
	"garment-qc-go/internal/geometry"
	"garment-qc-go/internal/model"
	"garment-qc-go/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db           *gorm.DB
	storageDir   string
	calibrations *CalibrationService
	annotations  *AnnotationService
	registration *RegistrationService
	images       *ReferenceImageStore
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.New(t)
	storageDir := t.TempDir()
	logger := quietLogger()
	calc := geometry.NewDefaultCalculator()

	calibrationRepo := repository.NewCalibrationRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	images := NewReferenceImageStore(storageDir, logger)
	calibrations := NewCalibrationService(calibrationRepo, calc, logger)

	return &testEnv{
		db:           db,
		storageDir:   storageDir,
		calibrations: calibrations,
		annotations:  NewAnnotationService(annotationRepo, articleRepo, calibrations, images, calc, logger),
		registration: NewRegistrationService(settingRepo, articleRepo, annotationRepo, logger),
		images:       images,
	}
}

// writePNG кладет в хранилище однотонный PNG заданного размера
func (e *testEnv) writePNG(t *testing.T, relPath string, width, height int) {
	t.Helper()
	fullPath := filepath.Join(e.storageDir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))

	f, err := os.Create(fullPath)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, width, height))))
}

// seedImage создает артикул со снимком одного размера
func (e *testEnv) seedImage(t *testing.T, style, size, imagePath string) (*model.Article, *model.ArticleImage) {
	t.Helper()
	var article model.Article
	err := e.db.Where("article_style = ?", style).First(&article).Error
	if err != nil {
		article = model.Article{ArticleStyle: style}
		require.NoError(t, e.db.Create(&article).Error)
	}

	img := &model.ArticleImage{
		ArticleID:    article.ID,
		ArticleStyle: style,
		Size:         size,
		ImagePath:    imagePath,
		ImageName:    filepath.Base(imagePath),
	}
	require.NoError(t, e.db.Create(img).Error)
	return &article, img
}

func (e *testEnv) exists(relPath string) bool {
	_, err := os.Stat(filepath.Join(e.storageDir, filepath.FromSlash(relPath)))
	return err == nil
}
