package geometry

import (
	"fmt"
)

// Calculator выполняет вычисления калибровки и аннотаций.
// Разрешения задаются при создании и не зависят от HTTP или хранилища.
type Calculator struct {
	calibrationFrame Resolution
	native           Resolution
}

// NewCalculator создает новый калькулятор
func NewCalculator(calibrationFrame, native Resolution) *Calculator {
	return &Calculator{
		calibrationFrame: calibrationFrame,
		native:           native,
	}
}

// NewDefaultCalculator создает калькулятор с разрешениями мастера калибровки и промышленной камеры
func NewDefaultCalculator() *Calculator {
	return NewCalculator(
		Resolution{Width: CalibrationWidth, Height: CalibrationHeight},
		Resolution{Width: NativeWidth, Height: NativeHeight},
	)
}

// CalibrationFrame возвращает разрешение кадра калибровки
func (c *Calculator) CalibrationFrame() Resolution {
	return c.calibrationFrame
}

// Native возвращает нативное разрешение камеры
func (c *Calculator) Native() Resolution {
	return c.native
}

// CalibrationResult результат калибровки по двум точкам
type CalibrationResult struct {
	Pixel1        Point
	Pixel2        Point
	PixelDistance float64
	PixelsPerCm   float64
}

// ResolveCalibration вычисляет количество пикселей на сантиметр по двум точкам
// (в процентах кадра калибровки) и известной длине эталона
func (c *Calculator) ResolveCalibration(point1, point2 Point, referenceLengthCm float64) (*CalibrationResult, error) {
	return ResolveCalibration(point1, point2, referenceLengthCm, c.calibrationFrame)
}

// ResolveCalibration вычисляет калибровку на кадре заданного разрешения
func ResolveCalibration(point1, point2 Point, referenceLengthCm float64, frame Resolution) (*CalibrationResult, error) {
	if referenceLengthCm <= 0 {
		return nil, ErrInvalidReferenceLength
	}
	if !frame.Valid() {
		return nil, fmt.Errorf("calibration frame %dx%d: %w", frame.Width, frame.Height, ErrInvalidResolution)
	}

	pixel1 := PercentToPixel(point1, frame)
	pixel2 := PercentToPixel(point2, frame)
	pixelDistance := Distance(pixel1, pixel2)

	return &CalibrationResult{
		Pixel1:        pixel1,
		Pixel2:        pixel2,
		PixelDistance: pixelDistance,
		PixelsPerCm:   pixelDistance / referenceLengthCm,
	}, nil
}

// AnnotationGeometry результат пересчета точек аннотации
type AnnotationGeometry struct {
	// CaptureKeypoints точки в пикселях кадра захвата, используются только для расстояний
	CaptureKeypoints []Point
	// NativeKeypoints точки в нативном разрешении для системы контроля
	NativeKeypoints [][2]int
	// TargetDistances расстояния пар в сантиметрах по номеру пары (с 1)
	TargetDistances map[int]float64
	ScaleX          float64
	ScaleY          float64
	// Capture фактически использованный кадр захвата
	Capture Resolution
	// Degraded - размеры кадра захвата неизвестны, масштабирование не выполнялось
	Degraded bool
	// IgnoredTrailing - последняя точка без пары отброшена
	IgnoredTrailing bool
}

// AnnotationGeometry пересчитывает точки аннотации в пиксели и вычисляет расстояния пар
func (c *Calculator) AnnotationGeometry(points []Point, capture Resolution, pixelsPerCm float64) (*AnnotationGeometry, error) {
	return ComputeAnnotationGeometry(points, capture, c.native, c.calibrationFrame, pixelsPerCm)
}

// ComputeAnnotationGeometry пересчитывает процентные точки в пиксели кадра захвата и нативного
// разрешения и вычисляет расстояния для последовательных пар точек.
//
// Расстояния считаются только в пикселях кадра захвата: pixelsPerCm задан в этом пространстве. Если кадр захвата неизвестен, точки переводятся в пиксели кадра калибровки,
// а нативные точки совпадают с ними (масштаб 1).
func ComputeAnnotationGeometry(points []Point, capture, native, calibrationFrame Resolution, pixelsPerCm float64) (*AnnotationGeometry, error) {
	if pixelsPerCm <= 0 {
		return nil, ErrInvalidScale
	}

	result := &AnnotationGeometry{
		CaptureKeypoints: make([]Point, 0, len(points)),
		NativeKeypoints:  make([][2]int, 0, len(points)),
		TargetDistances:  make(map[int]float64),
		Capture:          capture,
	}

	if capture.Valid() {
		result.ScaleX, result.ScaleY = ScaleFactors(capture, native)
	} else {
		result.Degraded = true
		result.Capture = calibrationFrame
		result.ScaleX, result.ScaleY = 1, 1
	}

	for _, p := range points {
		capturePoint := PercentToPixel(p, result.Capture)
		result.CaptureKeypoints = append(result.CaptureKeypoints, capturePoint)
		result.NativeKeypoints = append(result.NativeKeypoints, ToNative(capturePoint, result.ScaleX, result.ScaleY))
	}

	// Пары (0,1), (2,3), ...; точка без пары игнорируется
	for i := 0; i+1 < len(result.CaptureKeypoints); i += 2 {
		pixelDistance := Distance(result.CaptureKeypoints[i], result.CaptureKeypoints[i+1])
		result.TargetDistances[i/2+1] = roundCm(pixelDistance / pixelsPerCm)
	}
	result.IgnoredTrailing = len(points)%2 == 1

	return result, nil
}

// PairCount количество полных пар среди точек
func PairCount(n int) int {
	return n / 2
}
