package models

// AnnotationPoint точка, отмеченная оператором на превью (координаты в процентах 0-100)
type AnnotationPoint struct {
	X     float64 `json:"x"`               // Горизонталь, % ширины кадра
	Y     float64 `json:"y"`               // Вертикаль, % высоты кадра
	Label string  `json:"label,omitempty"` // Подпись точки
}

// MeasurementFormat формат аннотации для измерительной системы на станции контроля
type MeasurementFormat struct {
	Keypoints       [][2]int        `json:"keypoints"`        // Точки в нативном разрешении камеры
	TargetDistances map[int]float64 `json:"target_distances"` // Эталонные расстояния пар, см
	PlacementBox    []int           `json:"placement_box"`    // Зона укладки [x1, y1, x2, y2]
	AnnotationDate  string          `json:"annotation_date"`  // Дата аннотации (RFC 3339)
}
