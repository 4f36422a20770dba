package model

import (
	"time"
)

// SettingRegistrationPassword ключ хэша пароля страницы регистрации артикулов
const SettingRegistrationPassword = "password"

// RegistrationSetting настройка страницы регистрации артикулов (ключ-значение)
type RegistrationSetting struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Key   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"key"`
	Value string `gorm:"type:text" json:"value"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName указывает имя таблицы для RegistrationSetting
func (RegistrationSetting) TableName() string {
	return "article_registration_settings"
}
