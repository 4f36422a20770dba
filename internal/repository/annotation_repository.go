package repository

import (
	"errors"
	"fmt"

	"garment-qc-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnnotationRepository интерфейс для работы с эталонными аннотациями
type AnnotationRepository interface {
	GetByID(id uint) (*model.ArticleAnnotation, error)
	GetByStyleAndSize(articleStyle, size string) (*model.ArticleAnnotation, error)
	GetByImageID(articleImageID uint) (*model.ArticleAnnotation, error)
	Upsert(annotation *model.ArticleAnnotation) error
	Delete(id uint) error
}

// annotationRepository реализация AnnotationRepository
type annotationRepository struct {
	db *gorm.DB
}

// NewAnnotationRepository создает новый instance AnnotationRepository
func NewAnnotationRepository(db *gorm.DB) AnnotationRepository {
	return &annotationRepository{
		db: db,
	}
}

// GetByID получает аннотацию по ID
func (r *annotationRepository) GetByID(id uint) (*model.ArticleAnnotation, error) {
	return r.first(fmt.Sprintf("annotation with id %d", id), "id = ?", id)
}

// GetByStyleAndSize получает аннотацию по модели артикула и размеру
func (r *annotationRepository) GetByStyleAndSize(articleStyle, size string) (*model.ArticleAnnotation, error) {
	return r.first(fmt.Sprintf("annotation for style %s size %s", articleStyle, size),
		"article_style = ? AND size = ?", articleStyle, size)
}

// GetByImageID получает аннотацию, построенную по снимку
func (r *annotationRepository) GetByImageID(articleImageID uint) (*model.ArticleAnnotation, error) {
	return r.first(fmt.Sprintf("annotation for image %d", articleImageID), "article_image_id = ?", articleImageID)
}

// Upsert создает или заменяет аннотацию для пары (модель артикула, размер)
func (r *annotationRepository) Upsert(annotation *model.ArticleAnnotation) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	var existing model.ArticleAnnotation
	err := tx.Where("article_style = ? AND size = ?", annotation.ArticleStyle, annotation.Size).First(&existing).Error
	switch {
	case err == nil:
		// Заменяем производные данные в существующей записи
		annotation.ID = existing.ID
		annotation.CreatedAt = existing.CreatedAt
		if err := tx.Omit(clause.Associations).Save(annotation).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update annotation: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		annotation.ID = 0
		if err := tx.Omit(clause.Associations).Create(annotation).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to create annotation: %w", err)
		}
	default:
		tx.Rollback()
		return fmt.Errorf("failed to get annotation: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete удаляет аннотацию по ID
func (r *annotationRepository) Delete(id uint) error {
	result := r.db.Where("id = ?", id).Delete(&model.ArticleAnnotation{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete annotation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("annotation with id %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *annotationRepository) first(what string, query string, args ...any) (*model.ArticleAnnotation, error) {
	var annotation model.ArticleAnnotation
	if err := r.db.Where(query, args...).First(&annotation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s: %w", what, err)
	}
	return &annotation, nil
}
