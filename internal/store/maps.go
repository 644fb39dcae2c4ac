package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"active-rooms-backend/internal/model"
)

// ProtectedMapCode is the default map; it can never be deleted.
const ProtectedMapCode = "HIT"

// ListZones returns every map record, newest first.
func (s *gormStore) ListZones(ctx context.Context) ([]model.Zone, error) {
	var zones []model.Zone
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&zones).Error; err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	return zones, nil
}

// GetZone returns the map record for one code.
func (s *gormStore) GetZone(ctx context.Context, mapCode string) (*model.Zone, error) {
	var zone model.Zone
	if err := s.db.WithContext(ctx).Where("map_code = ?", mapCode).Take(&zone).Error; err != nil {
		return nil, translate(err)
	}
	return &zone, nil
}

// UpsertZone inserts or replaces the map record for an uploaded image and
// returns the previous stored path when the image was replaced, so the
// caller can clean up the old file.
func (s *gormStore) UpsertZone(ctx context.Context, mapCode, path string) (string, error) {
	mapCode = normalizeMapCode(mapCode)
	if mapCode == "" {
		return "", ErrEmptyMapCode
	}

	var replaced string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Zone
		err := tx.Where("map_code = ?", mapCode).Take(&existing).Error
		switch {
		case err == nil:
			if existing.Path != path {
				replaced = existing.Path
			}
		case err != gorm.ErrRecordNotFound:
			return err
		}

		zone := model.Zone{MapCode: mapCode, Path: path}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "map_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"path", "updated_at"}),
		}).Create(&zone).Error; err != nil {
			return fmt.Errorf("failed to upsert map %s: %w", mapCode, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return replaced, nil
}

// CountDependents counts the rows scoped to one map code, one independent
// count per table. Read-only.
func (s *gormStore) CountDependents(ctx context.Context, mapCode string) (Dependents, error) {
	mapCode = normalizeMapCode(mapCode)

	var deps Dependents
	db := s.db.WithContext(ctx)
	counts := []struct {
		m   any
		dst *int64
	}{
		{&model.Room{}, &deps.Rooms},
		{&model.Area{}, &deps.Areas},
		{&model.Sensor{}, &deps.Sensors},
		{&model.Zone{}, &deps.Zones},
	}
	for _, c := range counts {
		if err := db.Model(c.m).Where("map_code = ?", mapCode).Count(c.dst).Error; err != nil {
			return Dependents{}, fmt.Errorf("failed to count dependents of map %s: %w", mapCode, err)
		}
	}
	return deps, nil
}

// DeleteMap deletes a map and everything scoped to it.
//
// The code is normalized to uppercase; the protected default map is
// rejected before any counting. Nonzero dependents without force return a
// *DependencyError carrying the counts so the caller can confirm and
// retry. The deletion itself runs as one transaction in a fixed order:
// sensors, association rows, rooms, areas, then the zone record. The stored
// image path is looked up inside the transaction and returned so the
// caller can unlink the file after commit; file removal is never part of
// the transaction.
func (s *gormStore) DeleteMap(ctx context.Context, mapCode string, force bool) (Dependents, string, error) {
	mapCode = normalizeMapCode(mapCode)
	if mapCode == "" {
		return Dependents{}, "", ErrEmptyMapCode
	}
	if mapCode == ProtectedMapCode {
		return Dependents{}, "", ErrProtectedMap
	}

	deps, err := s.CountDependents(ctx, mapCode)
	if err != nil {
		return Dependents{}, "", err
	}
	if deps.Total() > 0 && !force {
		return Dependents{}, "", &DependencyError{Deps: deps}
	}

	var imagePath string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zone model.Zone
		err := tx.Where("map_code = ?", mapCode).Take(&zone).Error
		switch {
		case err == nil:
			imagePath = zone.Path
		case err != gorm.ErrRecordNotFound:
			return err
		}

		if err := tx.Where("map_code = ?", mapCode).Delete(&model.Sensor{}).Error; err != nil {
			return fmt.Errorf("failed to delete sensors of map %s: %w", mapCode, err)
		}

		roomIDs := tx.Model(&model.Room{}).Select("id").Where("map_code = ?", mapCode)
		areaIDs := tx.Model(&model.Area{}).Select("id").Where("map_code = ?", mapCode)
		if err := tx.Where("room_id IN (?) OR area_id IN (?)", roomIDs, areaIDs).
			Delete(&model.AreaRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete association rows of map %s: %w", mapCode, err)
		}

		if err := tx.Where("map_code = ?", mapCode).Delete(&model.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete rooms of map %s: %w", mapCode, err)
		}
		if err := tx.Where("map_code = ?", mapCode).Delete(&model.Area{}).Error; err != nil {
			return fmt.Errorf("failed to delete areas of map %s: %w", mapCode, err)
		}
		if err := tx.Where("map_code = ?", mapCode).Delete(&model.Zone{}).Error; err != nil {
			return fmt.Errorf("failed to delete map record %s: %w", mapCode, err)
		}
		return nil
	})
	if err != nil {
		return Dependents{}, "", err
	}
	return deps, imagePath, nil
}
