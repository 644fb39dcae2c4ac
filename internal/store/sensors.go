package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"active-rooms-backend/internal/model"
)

// ListSensors returns all sensors, optionally scoped to one map, each
// joined with its room description and the room's area name.
func (s *gormStore) ListSensors(ctx context.Context, mapCode string) ([]SensorView, error) {
	q := s.db.WithContext(ctx).
		Table("sensors s").
		Select("s.id, s.x, s.y, s.room_id, s.status, s.map_code, r.description AS room_description, a.name AS area_name").
		Joins("LEFT JOIN rooms r ON s.room_id = r.id").
		Joins("LEFT JOIN areas a ON r.area = a.id")
	if mapCode = normalizeMapCode(mapCode); mapCode != "" {
		q = q.Where("s.map_code = ?", mapCode)
	}

	var sensors []SensorView
	if err := q.Order("s.id").Scan(&sensors).Error; err != nil {
		return nil, fmt.Errorf("failed to list sensors: %w", err)
	}
	return sensors, nil
}

// SensorExists reports whether a sensor with the id exists. Sensor ids are
// unique case-insensitively across all maps.
func (s *gormStore) SensorExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Sensor{}).
		Where("UPPER(id) = UPPER(?)", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateSensor inserts the sensor.
func (s *gormStore) CreateSensor(ctx context.Context, sensor *model.Sensor) error {
	sensor.MapCode = normalizeMapCode(sensor.MapCode)
	if err := s.db.WithContext(ctx).Create(sensor).Error; err != nil {
		return fmt.Errorf("failed to create sensor %s: %w", sensor.ID, err)
	}
	return nil
}

// UpdateSensor applies a partial update and returns the updated record.
func (s *gormStore) UpdateSensor(ctx context.Context, id string, p SensorPatch) (*model.Sensor, error) {
	var sensor model.Sensor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&sensor).Error; err != nil {
			return translate(err)
		}

		updates := map[string]any{}
		if p.X != nil {
			updates["x"] = *p.X
		}
		if p.Y != nil {
			updates["y"] = *p.Y
		}
		if p.Status != nil {
			updates["status"] = *p.Status
		}
		if p.RoomIDSet {
			updates["room_id"] = p.RoomID
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model.Sensor{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update sensor %s: %w", id, err)
		}
		return tx.Where("id = ?", id).Take(&sensor).Error
	})
	if err != nil {
		return nil, err
	}
	return &sensor, nil
}

// DeleteSensor removes the sensor row. Deleting a sensor has no cascading
// side effects.
func (s *gormStore) DeleteSensor(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Sensor{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete sensor %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
