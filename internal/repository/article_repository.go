package repository

import (
	"errors"
	"fmt"
	"sort"

	"garment-qc-go/internal/model"

	"gorm.io/gorm"
)

// ArticleRepository интерфейс для чтения артикулов и их снимков
type ArticleRepository interface {
	GetByID(id uint) (*model.Article, error)
	GetImageByID(id uint) (*model.ArticleImage, error)
	ListSizes(articleID uint) ([]string, error)
	ListImages(articleID uint, size string) ([]*model.ArticleImage, error)
}

// articleRepository реализация ArticleRepository
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository создает новый instance ArticleRepository
func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{
		db: db,
	}
}

// GetByID получает артикул по ID
func (r *articleRepository) GetByID(id uint) (*model.Article, error) {
	var article model.Article
	if err := r.db.Where("id = ?", id).First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

// GetImageByID получает снимок артикула по ID
func (r *articleRepository) GetImageByID(id uint) (*model.ArticleImage, error) {
	var image model.ArticleImage
	if err := r.db.Where("id = ?", id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("article image with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get article image: %w", err)
	}
	return &image, nil
}

// ListSizes получает отсортированный список размеров, для которых есть снимки
func (r *articleRepository) ListSizes(articleID uint) ([]string, error) {
	var sizes []string
	err := r.db.Model(&model.ArticleImage{}).
		Where("article_id = ? AND size <> ''", articleID).
		Distinct().
		Pluck("size", &sizes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sizes: %w", err)
	}
	sort.Strings(sizes)
	return sizes, nil
}

// ListImages получает снимки артикула заданного размера, новые первыми
func (r *articleRepository) ListImages(articleID uint, size string) ([]*model.ArticleImage, error) {
	var images []*model.ArticleImage
	err := r.db.Where("article_id = ? AND size = ?", articleID, size).
		Order("created_at DESC").
		Order("id DESC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list article images: %w", err)
	}
	return images, nil
}
