package repository

import "errors"

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrLastCalibration нельзя удалить единственную калибровку
	ErrLastCalibration = errors.New("cannot delete the only calibration")
)
