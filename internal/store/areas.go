package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"active-rooms-backend/internal/model"
)

// ListAreas returns all areas, optionally scoped to one map, ordered by name.
func (s *gormStore) ListAreas(ctx context.Context, mapCode string) ([]model.Area, error) {
	q := s.db.WithContext(ctx).Model(&model.Area{})
	if mapCode = normalizeMapCode(mapCode); mapCode != "" {
		q = q.Where("map_code = ?", mapCode)
	}

	var areas []model.Area
	if err := q.Order("name").Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	return areas, nil
}

// AreaExists reports whether an area with the id exists.
func (s *gormStore) AreaExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Area{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateArea inserts the area, keeping a caller-supplied id when set.
func (s *gormStore) CreateArea(ctx context.Context, area *model.Area) error {
	area.MapCode = normalizeMapCode(area.MapCode)
	if err := s.db.WithContext(ctx).Create(area).Error; err != nil {
		return fmt.Errorf("failed to create area: %w", err)
	}
	return nil
}

// UpdateArea replaces the area's name and description and returns the
// updated record.
func (s *gormStore) UpdateArea(ctx context.Context, id int64, name string, description *string) (*model.Area, error) {
	var area model.Area
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&area).Error; err != nil {
			return translate(err)
		}
		if err := tx.Model(&area).Updates(map[string]any{
			"name":        name,
			"description": description,
		}).Error; err != nil {
			return fmt.Errorf("failed to update area %d: %w", id, err)
		}
		return tx.Where("id = ?", id).Take(&area).Error
	})
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// DeleteArea removes the area after detaching its rooms: association rows
// go first, then the rooms' area reference is nulled, then the area row.
// Rooms themselves survive.
func (s *gormStore) DeleteArea(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var area model.Area
		if err := tx.Where("id = ?", id).Take(&area).Error; err != nil {
			return translate(err)
		}

		if err := tx.Where("area_id = ?", id).Delete(&model.AreaRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete association rows for area %d: %w", id, err)
		}
		if err := tx.Model(&model.Room{}).Where("area = ?", id).
			Update("area", nil).Error; err != nil {
			return fmt.Errorf("failed to detach rooms from area %d: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Area{}).Error; err != nil {
			return fmt.Errorf("failed to delete area %d: %w", id, err)
		}
		return nil
	})
}
