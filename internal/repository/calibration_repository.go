package repository

import (
	"errors"
	"fmt"

	"garment-qc-go/internal/model"

	"gorm.io/gorm"
)

// CalibrationRepository интерфейс для работы с калибровками камеры
type CalibrationRepository interface {
	Create(calibration *model.CameraCalibration) error
	CreateActive(calibration *model.CameraCalibration) error
	GetByID(id uint) (*model.CameraCalibration, error)
	GetActive() (*model.CameraCalibration, error)
	List() ([]*model.CameraCalibration, error)
	Activate(id uint) error
	Delete(id uint) error
}

// calibrationRepository реализация CalibrationRepository
type calibrationRepository struct {
	db *gorm.DB
}

// NewCalibrationRepository создает новый instance CalibrationRepository
func NewCalibrationRepository(db *gorm.DB) CalibrationRepository {
	return &calibrationRepository{
		db: db,
	}
}

// Create сохраняет новую калибровку
func (r *calibrationRepository) Create(calibration *model.CameraCalibration) error {
	if err := r.db.Create(calibration).Error; err != nil {
		return fmt.Errorf("failed to create calibration: %w", err)
	}
	return nil
}

// CreateActive сохраняет калибровку неактивной и активирует ее в той же транзакции.
// При ошибке активации запись не остается в базе.
func (r *calibrationRepository) CreateActive(calibration *model.CameraCalibration) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	calibration.IsActive = false
	if err := tx.Create(calibration).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create calibration: %w", err)
	}

	if err := activate(tx, calibration.ID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	calibration.IsActive = true
	return nil
}

// GetByID получает калибровку по ID
func (r *calibrationRepository) GetByID(id uint) (*model.CameraCalibration, error) {
	return findCalibration(r.db, id)
}

// GetActive получает активную калибровку (самую свежую, если по какой-то причине их несколько)
func (r *calibrationRepository) GetActive() (*model.CameraCalibration, error) {
	var calibration model.CameraCalibration
	err := r.db.Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		First(&calibration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active calibration: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active calibration: %w", err)
	}
	return &calibration, nil
}

// List получает все калибровки, новые первыми
func (r *calibrationRepository) List() ([]*model.CameraCalibration, error) {
	var calibrations []*model.CameraCalibration
	err := r.db.Order("created_at DESC").Order("id DESC").Find(&calibrations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list calibrations: %w", err)
	}
	return calibrations, nil
}

// Activate делает калибровку активной и снимает флаг со всех остальных в одной транзакции
func (r *calibrationRepository) Activate(id uint) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	if _, err := findCalibration(tx, id); err != nil {
		tx.Rollback()
		return err
	}

	if err := activate(tx, id); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Delete удаляет калибровку. Единственную калибровку удалить нельзя;
// если удаляется активная, активной становится самая свежая из оставшихся.
func (r *calibrationRepository) Delete(id uint) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	calibration, err := findCalibration(tx, id)
	if err != nil {
		tx.Rollback()
		return err
	}

	var others int64
	if err := tx.Model(&model.CameraCalibration{}).Where("id <> ?", id).Count(&others).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to count calibrations: %w", err)
	}
	if others == 0 {
		tx.Rollback()
		return ErrLastCalibration
	}

	if calibration.IsActive {
		var next model.CameraCalibration
		err := tx.Where("id <> ?", id).
			Order("created_at DESC").
			Order("id DESC").
			First(&next).Error
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to find next calibration: %w", err)
		}
		if err := activate(tx, next.ID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Delete(&model.CameraCalibration{}, id).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete calibration: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func findCalibration(db *gorm.DB, id uint) (*model.CameraCalibration, error) {
	var calibration model.CameraCalibration
	if err := db.Where("id = ?", id).First(&calibration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("calibration with id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get calibration: %w", err)
	}
	return &calibration, nil
}

// activate выполняется внутри транзакции
func activate(tx *gorm.DB, id uint) error {
	err := tx.Model(&model.CameraCalibration{}).
		Where("is_active = ? AND id <> ?", true, id).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate calibrations: %w", err)
	}

	err = tx.Model(&model.CameraCalibration{}).
		Where("id = ?", id).
		Update("is_active", true).Error
	if err != nil {
		return fmt.Errorf("failed to activate calibration %d: %w", id, err)
	}
	return nil
}
