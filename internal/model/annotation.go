package model

import (
	"time"

	"garment-qc-go/pkg/models"

	"gorm.io/datatypes"
)

// CaptureSourceWebcam источник превью, на котором оператор расставляет точки
const CaptureSourceWebcam = "webcam"

// ArticleAnnotation эталонная разметка изделия: одна запись на пару (модель артикула, размер).
// Артикулы с одинаковой моделью делят запись и эталонное изображение.
type ArticleAnnotation struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleID      uint   `gorm:"not null;index" json:"article_id"`
	ArticleImageID uint   `gorm:"not null;index" json:"article_image_id"`
	ArticleStyle   string `gorm:"type:varchar(255);not null;uniqueIndex:idx_article_annotations_style_size" json:"article_style"`
	Size           string `gorm:"type:varchar(100);not null;uniqueIndex:idx_article_annotations_style_size" json:"size"`
	Name           string `gorm:"type:varchar(255)" json:"name"`

	// Точки в процентах, как их прислал оператор
	Annotations datatypes.JSONType[[]models.AnnotationPoint] `json:"annotations"`
	// Производные данные
	KeypointsPixels datatypes.JSONType[[][2]int]        `json:"keypoints_pixels"`
	TargetDistances datatypes.JSONType[map[int]float64] `json:"target_distances"`
	PlacementBox    datatypes.JSONType[[]int]           `json:"placement_box"`

	// Разрешения
	ImageWidth    int    `gorm:"not null;default:0" json:"image_width"`
	ImageHeight   int    `gorm:"not null;default:0" json:"image_height"`
	NativeWidth   int    `gorm:"not null;default:0" json:"native_width"`
	NativeHeight  int    `gorm:"not null;default:0" json:"native_height"`
	CaptureSource string `gorm:"type:varchar(50)" json:"capture_source"`
	CaptureWidth  *int   `json:"capture_width"`
	CaptureHeight *int   `json:"capture_height"`

	// Эталонное изображение
	ReferenceImagePath string `gorm:"type:varchar(500)" json:"reference_image_path"`
	ImageData          string `gorm:"type:text" json:"-"`
	ImageMimeType      string `gorm:"type:varchar(50)" json:"image_mime_type"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Article      Article      `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	ArticleImage ArticleImage `gorm:"foreignKey:ArticleImageID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName указывает имя таблицы для ArticleAnnotation
func (ArticleAnnotation) TableName() string {
	return "article_annotations"
}

// ImageDataURL возвращает изображение в виде data URL для прямого отображения
func (a *ArticleAnnotation) ImageDataURL() string {
	if a.ImageData == "" || a.ImageMimeType == "" {
		return ""
	}
	return "data:" + a.ImageMimeType + ";base64," + a.ImageData
}
