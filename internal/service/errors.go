package service

import "errors"

var (
	// ErrNoActiveCalibration нет активной калибровки или ее масштаб непригоден
	ErrNoActiveCalibration = errors.New("no active camera calibration, calibrate the camera first")
	// ErrInvalidInput входные данные не прошли проверку
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidPassword неверный пароль страницы регистрации
	ErrInvalidPassword = errors.New("invalid password")
	// ErrStorage ошибка записи файлов эталонных изображений
	ErrStorage = errors.New("reference image storage failure")
)
