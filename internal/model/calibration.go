package model

import (
	"time"

	"gorm.io/datatypes"
)

// CameraCalibration калибровка камеры: сколько пикселей кадра калибровки приходится на сантиметр
type CameraCalibration struct {
	ID                uint                                   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string                                 `gorm:"type:varchar(255)" json:"name"`
	PixelsPerCm       float64                                `gorm:"not null" json:"pixels_per_cm"`
	ReferenceLengthCm float64                                `gorm:"not null" json:"reference_length_cm"`
	PixelDistance     int                                    `gorm:"not null;default:0" json:"pixel_distance"`
	CalibrationPoints datatypes.JSONType[CalibrationPoints] `json:"calibration_points"`
	IsActive          bool                                   `gorm:"not null;default:false;index" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CalibrationPoints две точки калибровки [[x%, y%], [x%, y%]]
type CalibrationPoints [2][2]float64

// TableName указывает имя таблицы для CameraCalibration
func (CameraCalibration) TableName() string {
	return "camera_calibrations"
}
