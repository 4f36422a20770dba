package repository

import (
	"errors"
	"fmt"

	"garment-qc-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository интерфейс для настроек страницы регистрации
type SettingRepository interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// settingRepository реализация SettingRepository
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository создает новый instance SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{
		db: db,
	}
}

// Get получает значение настройки; второй результат false, если настройки нет
func (r *settingRepository) Get(key string) (string, bool, error) {
	var setting model.RegistrationSetting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return setting.Value, true, nil
}

// Set создает или обновляет настройку
func (r *settingRepository) Set(key, value string) error {
	setting := model.RegistrationSetting{Key: key, Value: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
