package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

const annotationsDir = "annotations"

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ReferenceImageStore хранит эталонные изображения аннотаций в плоской папке annotations/
type ReferenceImageStore struct {
	storageDir string
	logger     *logrus.Logger
}

// ReferenceImage подготовленное эталонное изображение. Содержимое лежит во временном файле
// до Commit, канонический файл и старый файл до этого не меняются.
type ReferenceImage struct {
	Path     string // относительно папки хранилища, пусто если исходника нет
	Data     string // base64 содержимого
	MimeType string

	tmpPath string
}

// NewReferenceImageStore создает хранилище эталонных изображений
func NewReferenceImageStore(storageDir string, logger *logrus.Logger) *ReferenceImageStore {
	return &ReferenceImageStore{
		storageDir: storageDir,
		logger:     logger,
	}
}

// CanonicalPath возвращает путь эталонного изображения для артикула и размера: annotations/<style>_<size>.jpg
func CanonicalPath(articleStyle, size string) string {
	return path.Join(annotationsDir, sanitizeName(articleStyle)+"_"+sanitizeName(size)+".jpg")
}

// sanitizeName убирает разделители путей из названия артикула или размера
func sanitizeName(s string) string {
	return strings.NewReplacer("/", "_", "\\", "_").Replace(s)
}

// FullPath переводит относительный путь хранилища в путь файловой системы
func (s *ReferenceImageStore) FullPath(relPath string) string {
	return filepath.Join(s.storageDir, filepath.FromSlash(relPath))
}

// ReadDimensions читает размеры исходного снимка. ok=false, если файла нет или формат не распознан.
func (s *ReferenceImageStore) ReadDimensions(relPath string) (width, height int, ok bool, err error) {
	file, err := os.Open(s.FullPath(relPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, 0, false, nil
		}
		return 0, 0, false, fmt.Errorf("%w: open source image: %v", ErrStorage, err)
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		s.logger.Warnf("Не удалось определить размеры изображения %s: %v", relPath, err)
		return 0, 0, false, nil
	}
	s.logger.Debugf("Изображение %s: %s %dx%d", relPath, format, cfg.Width, cfg.Height)
	return cfg.Width, cfg.Height, true, nil
}

// Stage копирует исходный снимок во временный файл рядом с каноническим путем.
// Если исходника нет, возвращается пустое изображение.
func (s *ReferenceImageStore) Stage(sourcePath, articleStyle, size string) (*ReferenceImage, error) {
	dir := filepath.Join(s.storageDir, annotationsDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create annotations directory: %v", ErrStorage, err)
	}

	source, err := os.Open(s.FullPath(sourcePath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnf("Исходный снимок %s не найден, эталонное изображение не сохранено", sourcePath)
			return &ReferenceImage{}, nil
		}
		return nil, fmt.Errorf("%w: open source image: %v", ErrStorage, err)
	}
	defer source.Close()

	content, err := io.ReadAll(source)
	if err != nil {
		return nil, fmt.Errorf("%w: read source image: %v", ErrStorage, err)
	}

	tmpPath := filepath.Join(dir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("%w: write reference image: %v", ErrStorage, err)
	}

	return &ReferenceImage{
		Path:     CanonicalPath(articleStyle, size),
		Data:     base64.StdEncoding.EncodeToString(content),
		MimeType: mimeTypeFor(sourcePath),
		tmpPath:  tmpPath,
	}, nil
}

// Commit переносит подготовленное изображение на канонический путь и удаляет старый файл,
// если он лежал по другому пути. Без исходника канонический файл удаляется.
func (s *ReferenceImageStore) Commit(img *ReferenceImage, previousPath, articleStyle, size string) error {
	canonical := CanonicalPath(articleStyle, size)

	if img.tmpPath == "" {
		s.Remove(canonical)
	} else {
		if err := os.Rename(img.tmpPath, s.FullPath(canonical)); err != nil {
			s.Discard(img)
			return fmt.Errorf("%w: replace reference image: %v", ErrStorage, err)
		}
		img.tmpPath = ""
		s.logger.Infof("Эталонное изображение сохранено: %s", canonical)
	}

	if previousPath != "" && previousPath != canonical {
		s.Remove(previousPath)
	}
	return nil
}

// Discard удаляет временный файл неиспользованного изображения
func (s *ReferenceImageStore) Discard(img *ReferenceImage) {
	if img == nil || img.tmpPath == "" {
		return
	}
	if err := os.Remove(img.tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warnf("Не удалось удалить временный файл %s: %v", img.tmpPath, err)
	}
	img.tmpPath = ""
}

// Remove удаляет файл хранилища; ошибки только логируются
func (s *ReferenceImageStore) Remove(relPath string) {
	if relPath == "" {
		return
	}
	fullPath := s.FullPath(relPath)
	if err := os.Remove(fullPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warnf("Не удалось удалить файл %s: %v", fullPath, err)
		}
		return
	}
	s.logger.Infof("Файл %s удален", fullPath)
}

func mimeTypeFor(name string) string {
	if mime, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mime
	}
	return "image/jpeg"
}
