package service

import (
	"errors"
	"testing"
	"time"

	"garment-qc-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCalibrationService_Save(t *testing.T) {
	env := newTestEnv(t)
	env.calibrations.now = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }

	resp, err := env.calibrations.Save(SaveCalibrationRequest{
		Points:            [2][2]float64{{10, 50}, {90, 50}},
		ReferenceLengthCm: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Calibration 2025-03-01 09:30:00", resp.Name)
	assert.InDelta(t, 153.6, resp.PixelsPerCm, 1e-9)
	assert.Equal(t, 1536, resp.PixelDistance)
	assert.True(t, resp.IsActive)

	active, err := env.calibrations.GetActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, resp.ID, active.ID)
	assert.Equal(t, [2][2]float64{{10, 50}, {90, 50}}, active.CalibrationPoints)
}

func TestCalibrationService_SaveRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		points [2][2]float64
		length float64
	}{
		{"нулевая длина", [2][2]float64{{10, 50}, {90, 50}}, 0},
		{"отрицательная длина", [2][2]float64{{10, 50}, {90, 50}}, -5},
		{"совпадающие точки", [2][2]float64{{40, 40}, {40, 40}}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.calibrations.Save(SaveCalibrationRequest{Points: tt.points, ReferenceLengthCm: tt.length})
			assert.ErrorIs(t, err, ErrInvalidInput)

			list, err := env.calibrations.List()
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestCalibrationService_NewestSaveBecomesActive(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.calibrations.Save(SaveCalibrationRequest{Name: "A", Points: [2][2]float64{{0, 0}, {100, 0}}, ReferenceLengthCm: 100})
	require.NoError(t, err)
	second, err := env.calibrations.Save(SaveCalibrationRequest{Name: "B", Points: [2][2]float64{{0, 0}, {50, 0}}, ReferenceLengthCm: 100})
	require.NoError(t, err)

	scale, err := env.calibrations.ActiveScale()
	require.NoError(t, err)
	assert.InDelta(t, 9.6, scale, 1e-9)

	require.NoError(t, env.calibrations.Activate(first.ID))
	scale, err = env.calibrations.ActiveScale()
	require.NoError(t, err)
	assert.InDelta(t, 19.2, scale, 1e-9)

	list, err := env.calibrations.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	active := 0
	for _, c := range list {
		if c.IsActive {
			active++
			assert.Equal(t, first.ID, c.ID)
		}
	}
	assert.Equal(t, 1, active)

	assert.ErrorIs(t, env.calibrations.Activate(second.ID+100), repository.ErrNotFound)
}

func TestCalibrationService_Delete(t *testing.T) {
	env := newTestEnv(t)

	only, err := env.calibrations.Save(SaveCalibrationRequest{Points: [2][2]float64{{0, 0}, {100, 0}}, ReferenceLengthCm: 100})
	require.NoError(t, err)
	assert.ErrorIs(t, env.calibrations.Delete(only.ID), repository.ErrLastCalibration)

	second, err := env.calibrations.Save(SaveCalibrationRequest{Points: [2][2]float64{{0, 0}, {50, 0}}, ReferenceLengthCm: 100})
	require.NoError(t, err)
	require.NoError(t, env.calibrations.Delete(second.ID))

	active, err := env.calibrations.GetActive()
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, only.ID, active.ID)
}

func TestCalibrationService_ActiveScaleWithoutCalibration(t *testing.T) {
	env := newTestEnv(t)

	active, err := env.calibrations.GetActive()
	require.NoError(t, err)
	assert.Nil(t, active)

	_, err = env.calibrations.ActiveScale()
	assert.ErrorIs(t, err, ErrNoActiveCalibration)
}

func TestCalibrationService_SaveLeavesNothingWhenActivationFails(t *testing.T) {
	env := newTestEnv(t)
	err := env.db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("update rejected"))
	})
	require.NoError(t, err)

	_, err = env.calibrations.Save(SaveCalibrationRequest{Points: [2][2]float64{{10, 50}, {90, 50}}, ReferenceLengthCm: 10})
	require.Error(t, err)

	list, err := env.calibrations.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}
