package model

import (
	"time"
)

// Article артикул (модель изделия)
type Article struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleStyle string `gorm:"type:varchar(255);not null;index" json:"article_style"`
	Description  string `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Images []ArticleImage `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
}

// ArticleImage снимок изделия определенного размера, сделанный камерой превью
type ArticleImage struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ArticleID    uint   `gorm:"not null;index" json:"article_id"`
	ArticleStyle string `gorm:"type:varchar(255)" json:"article_style"`
	Size         string `gorm:"type:varchar(100);not null;index" json:"size"`
	ImagePath    string `gorm:"type:varchar(500);not null" json:"image_path"` // относительно папки хранилища
	ImageName    string `gorm:"type:varchar(255)" json:"image_name"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName указывает имя таблицы для Article
func (Article) TableName() string {
	return "articles"
}

// TableName указывает имя таблицы для ArticleImage
func (ArticleImage) TableName() string {
	return "article_images"
}
