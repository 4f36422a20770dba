package geometry

import (
	"errors"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r2"
)

// Разрешения, которые являются частью контракта с системой контроля
const (
	// NativeWidth и NativeHeight - разрешение сенсора промышленной камеры
	NativeWidth  = 5488
	NativeHeight = 3672

	// CalibrationWidth и CalibrationHeight - разрешение кадра мастера калибровки
	CalibrationWidth  = 1920
	CalibrationHeight = 1080
)

var (
	ErrInvalidReferenceLength = errors.New("reference length must be positive")
	ErrInvalidScale           = errors.New("pixels per cm must be positive")
	ErrInvalidResolution      = errors.New("resolution must be positive")
)

// Point точка на изображении (в процентах или пикселях, в зависимости от контекста)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Resolution размеры кадра в пикселях
type Resolution struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid сообщает, известны ли обе стороны кадра
func (r Resolution) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// PercentToPixel переводит процентные координаты (0-100) в абсолютные пиксели кадра
func PercentToPixel(p Point, frame Resolution) Point {
	return Point{
		X: (p.X / 100) * float64(frame.Width),
		Y: (p.Y / 100) * float64(frame.Height),
	}
}

// Distance евклидово расстояние между двумя точками
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(r2.Vec{X: b.X, Y: b.Y}, r2.Vec{X: a.X, Y: a.Y}))
}

// ScaleFactors коэффициенты перехода из кадра захвата в нативное разрешение.
// Если кадр захвата неизвестен, масштабирование не выполняется.
func ScaleFactors(capture, native Resolution) (scaleX, scaleY float64) {
	scaleX, scaleY = 1, 1
	if capture.Width > 0 {
		scaleX = float64(native.Width) / float64(capture.Width)
	}
	if capture.Height > 0 {
		scaleY = float64(native.Height) / float64(capture.Height)
	}
	return scaleX, scaleY
}

// ToNative переводит точку кадра захвата в целочисленные пиксели нативного разрешения
func ToNative(p Point, scaleX, scaleY float64) [2]int {
	return [2]int{
		int(math.Round(p.X * scaleX)),
		int(math.Round(p.Y * scaleY)),
	}
}

// roundCm округляет сантиметры до 2 знаков половиной от нуля (формат хранения и отображения).
// Произведение v*100 сначала приводится к 15 значащим цифрам, поэтому 1.005 дает 1.01, а не 1.
func roundCm(v float64) float64 {
	return scalar.Round(preRound(v*100), 0) / 100
}

// preRound убирает ошибку представления float64 в последних разрядах
func preRound(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
