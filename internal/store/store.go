package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"active-rooms-backend/internal/model"
)

// Sentinel errors shared by all store operations.
var (
	// ErrNotFound reports that the targeted record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrProtectedMap reports a deletion attempt on the default map.
	ErrProtectedMap = errors.New("cannot delete default map HIT")
	// ErrEmptyMapCode reports a map operation without a map code.
	ErrEmptyMapCode = errors.New("missing map_code")
)

// DependencyError blocks a non-forced map deletion. It carries the counts
// the caller shows to a human before retrying with force; it is a
// confirmation checkpoint, not a fatal failure.
type DependencyError struct {
	Deps Dependents
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("map has dependent records: %d rooms, %d areas, %d sensors, %d zones",
		e.Deps.Rooms, e.Deps.Areas, e.Deps.Sensors, e.Deps.Zones)
}

// Store defines the interface for all database operations.
type Store interface {
	// Rooms
	ListRooms(ctx context.Context, mapCode string) ([]RoomView, error)
	GetRoom(ctx context.Context, id string) (*RoomView, error)
	RoomExists(ctx context.Context, id string) (bool, error)
	RoomNumberTaken(ctx context.Context, key RoomNumberKey, excludeID string) (bool, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	UpdateRoom(ctx context.Context, id string, p RoomPatch) error
	DeleteRoom(ctx context.Context, id string) error

	// Areas
	ListAreas(ctx context.Context, mapCode string) ([]model.Area, error)
	AreaExists(ctx context.Context, id int64) (bool, error)
	CreateArea(ctx context.Context, area *model.Area) error
	UpdateArea(ctx context.Context, id int64, name string, description *string) (*model.Area, error)
	DeleteArea(ctx context.Context, id int64) error

	// Sensors
	ListSensors(ctx context.Context, mapCode string) ([]SensorView, error)
	SensorExists(ctx context.Context, id string) (bool, error)
	CreateSensor(ctx context.Context, sensor *model.Sensor) error
	UpdateSensor(ctx context.Context, id string, p SensorPatch) (*model.Sensor, error)
	DeleteSensor(ctx context.Context, id string) error

	// Maps
	ListZones(ctx context.Context) ([]model.Zone, error)
	GetZone(ctx context.Context, mapCode string) (*model.Zone, error)
	UpsertZone(ctx context.Context, mapCode, path string) (replacedPath string, err error)
	CountDependents(ctx context.Context, mapCode string) (Dependents, error)
	DeleteMap(ctx context.Context, mapCode string, force bool) (deleted Dependents, imagePath string, err error)

	// Users
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
	EnsureUser(ctx context.Context, user *model.User) error

	// DB exposes the underlying handle for router wiring and tests.
	DB() *gorm.DB
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// translate maps gorm's not-found to the store's sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// normalizeMapCode folds a map code to its canonical uppercase form. Map
// codes compare case-insensitively, so every write, filter and count goes
// through this before touching a map_code column.
func normalizeMapCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
