package service

import (
	"time"

	"garment-qc-go/pkg/models"
)

// CalibrationResponse калибровка в ответе API
type CalibrationResponse struct {
	ID                uint          `json:"id"`
	Name              string        `json:"name"`
	PixelsPerCm       float64       `json:"pixels_per_cm"`
	ReferenceLengthCm float64       `json:"reference_length_cm"`
	PixelDistance     int           `json:"pixel_distance"`
	CalibrationPoints [2][2]float64 `json:"calibration_points"`
	IsActive          bool          `json:"is_active"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// SaveCalibrationRequest запрос на сохранение калибровки (точки уже проверены)
type SaveCalibrationRequest struct {
	Name              string
	Points            [2][2]float64
	ReferenceLengthCm float64
}

// SaveAnnotationRequest запрос на сохранение аннотации снимка
type SaveAnnotationRequest struct {
	ArticleID      uint
	ArticleImageID uint
	Annotations    []models.AnnotationPoint
	Name           string
}

// AnnotationResponse аннотация в ответе API
type AnnotationResponse struct {
	ID                 uint                     `json:"id"`
	ArticleID          uint                     `json:"article_id"`
	ArticleImageID     uint                     `json:"article_image_id"`
	ArticleStyle       string                   `json:"article_style"`
	Size               string                   `json:"size"`
	Name               string                   `json:"name"`
	Annotations        []models.AnnotationPoint `json:"annotations"`
	KeypointsPixels    [][2]int                 `json:"keypoints_pixels"`
	TargetDistances    map[int]float64          `json:"target_distances"`
	ImageWidth         int                      `json:"image_width"`
	ImageHeight        int                      `json:"image_height"`
	CaptureWidth       *int                     `json:"capture_width"`
	CaptureHeight      *int                     `json:"capture_height"`
	ReferenceImagePath string                   `json:"reference_image_path"`
	ImageMimeType      string                   `json:"image_mime_type,omitempty"`
	ImageDataURL       string                   `json:"image_data_url,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// ArticleImageResponse снимок артикула в ответе API
type ArticleImageResponse struct {
	ID        uint      `json:"id"`
	ImagePath string    `json:"image_path"`
	ImageName string    `json:"image_name"`
	Size      string    `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleSizesResponse размеры артикула
type ArticleSizesResponse struct {
	ArticleStyle string   `json:"article_style"`
	Sizes        []string `json:"sizes"`
}

// ArticleImagesResponse снимки артикула заданного размера с текущей аннотацией
type ArticleImagesResponse struct {
	ArticleStyle string                 `json:"article_style"`
	Size         string                 `json:"size"`
	Images       []ArticleImageResponse `json:"images"`
	Annotation   *AnnotationResponse    `json:"annotation"`
}
