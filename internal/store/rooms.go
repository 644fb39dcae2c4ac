package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"active-rooms-backend/internal/model"
)

// ListRooms returns all rooms, optionally scoped to one map, each joined
// with its area name. Ordering by length then value sorts numeric ids
// numerically without an integer cast, which would fail on postgres for
// alphanumeric ids.
func (s *gormStore) ListRooms(ctx context.Context, mapCode string) ([]RoomView, error) {
	q := s.db.WithContext(ctx).
		Table("rooms r").
		Select("r.id, r.description, r.area, r.x, r.y, r.floor, r.room_name, r.map_code, a.name AS area_name").
		Joins("LEFT JOIN areas a ON r.area = a.id")
	if mapCode = normalizeMapCode(mapCode); mapCode != "" {
		q = q.Where("r.map_code = ?", mapCode)
	}

	var rooms []RoomView
	if err := q.Order("length(r.id), r.id").Scan(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// GetRoom returns one room joined with its area name.
func (s *gormStore) GetRoom(ctx context.Context, id string) (*RoomView, error) {
	var room RoomView
	err := s.db.WithContext(ctx).
		Table("rooms r").
		Select("r.id, r.description, r.area, r.x, r.y, r.floor, r.room_name, r.map_code, a.name AS area_name").
		Joins("LEFT JOIN areas a ON r.area = a.id").
		Where("r.id = ?", id).
		Take(&room).Error
	if err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// RoomExists reports whether a room with the exact id exists. Room ids are
// compared byte-exact, unlike sensor ids.
func (s *gormStore) RoomExists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RoomNumberTaken reports whether another room already holds the composite
// key. A non-empty excludeID skips the record being updated. An empty
// MapCode or a nil Floor leaves that column out of the comparison, the
// scope the dashboard's update form actually sends.
func (s *gormStore) RoomNumberTaken(ctx context.Context, key RoomNumberKey, excludeID string) (bool, error) {
	q := s.db.WithContext(ctx).Model(&model.Room{}).
		Where("room_name = ?", key.RoomName)
	if code := normalizeMapCode(key.MapCode); code != "" {
		q = q.Where("map_code = ?", code)
	}
	if key.Floor != nil {
		q = q.Where("floor = ?", *key.Floor)
	}
	if key.Area != nil {
		q = q.Where("area = ?", *key.Area)
	} else {
		q = q.Where("area IS NULL")
	}
	if excludeID != "" {
		q = q.Where("id != ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateRoom inserts the room and writes its association row in the same
// transaction.
func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	room.MapCode = normalizeMapCode(room.MapCode)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return fmt.Errorf("failed to create room %s: %w", room.ID, err)
		}
		return syncAreaRoom(tx, room.ID, room.Area, room.RoomName)
	})
}

// UpdateRoom applies a partial update and keeps the association row in
// sync: a set area upserts the row, a cleared area removes it, and a name
// change alone renames it in place.
func (s *gormStore) UpdateRoom(ctx context.Context, id string, p RoomPatch) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Where("id = ?", id).Take(&room).Error; err != nil {
			return translate(err)
		}

		updates := map[string]any{}
		if p.Description != nil {
			updates["description"] = *p.Description
		}
		if p.AreaSet {
			updates["area"] = p.Area
		}
		if p.X != nil {
			updates["x"] = *p.X
		}
		if p.Y != nil {
			updates["y"] = *p.Y
		}
		if p.FloorSet {
			updates["floor"] = p.Floor
		}
		if p.RoomName != nil {
			updates["room_name"] = *p.RoomName
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&model.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update room %s: %w", id, err)
		}

		name := room.RoomName
		if p.RoomName != nil {
			name = *p.RoomName
		}

		switch {
		case p.AreaSet:
			return syncAreaRoom(tx, id, p.Area, name)
		case p.RoomName != nil && room.Area != nil:
			if err := tx.Model(&model.AreaRoom{}).Where("room_id = ?", id).
				Update("room_name", name).Error; err != nil {
				return fmt.Errorf("failed to rename association row for room %s: %w", id, err)
			}
		}
		return nil
	})
}

// DeleteRoom detaches the room's sensors, removes its association row and
// deletes the room, all in one transaction.
func (s *gormStore) DeleteRoom(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.Where("id = ?", id).Take(&room).Error; err != nil {
			return translate(err)
		}

		if err := tx.Model(&model.Sensor{}).Where("room_id = ?", id).
			Update("room_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach sensors from room %s: %w", id, err)
		}
		if err := tx.Where("room_id = ?", id).Delete(&model.AreaRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete association row for room %s: %w", id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&model.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete room %s: %w", id, err)
		}
		return nil
	})
}

// syncAreaRoom is the only writer of the association table. With a non-nil
// area it upserts the room's row; without one it deletes any row the room
// still has.
func syncAreaRoom(tx *gorm.DB, roomID string, area *int64, roomName string) error {
	if area == nil {
		if err := tx.Where("room_id = ?", roomID).Delete(&model.AreaRoom{}).Error; err != nil {
			return fmt.Errorf("failed to delete association row for room %s: %w", roomID, err)
		}
		return nil
	}

	row := model.AreaRoom{RoomID: roomID, AreaID: *area, RoomName: roomName}
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "room_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"area_id", "room_name"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert association row for room %s: %w", roomID, err)
	}
	return nil
}
