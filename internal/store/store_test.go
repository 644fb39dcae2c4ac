package store

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"active-rooms-backend/internal/db"
	"active-rooms-backend/internal/model"
)

// newSQLiteStore opens a per-test in-memory database with the full schema.
func newSQLiteStore(t *testing.T) Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestRoomNumberTaken(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	area := model.Area{Name: "East Wing", MapCode: "TEST"}
	require.NoError(t, s.CreateArea(ctx, &area))

	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R1", RoomName: "101", Floor: intPtr(1), Area: &area.ID, MapCode: "TEST",
	}))
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R2", RoomName: "101", Floor: intPtr(2), Area: &area.ID, MapCode: "TEST",
	}))
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R3", RoomName: "102", Floor: intPtr(1), MapCode: "TEST",
	}))

	testCases := []struct {
		name      string
		key       RoomNumberKey
		excludeID string
		taken     bool
	}{
		{
			name:  "same name, floor and area is taken",
			key:   RoomNumberKey{RoomName: "101", Floor: intPtr(1), Area: &area.ID, MapCode: "TEST"},
			taken: true,
		},
		{
			name:  "same name on a free floor is available",
			key:   RoomNumberKey{RoomName: "101", Floor: intPtr(3), Area: &area.ID, MapCode: "TEST"},
			taken: false,
		},
		{
			name:  "nil area matches only arealess rooms",
			key:   RoomNumberKey{RoomName: "102", Floor: intPtr(1), MapCode: "TEST"},
			taken: true,
		},
		{
			name:  "nil area does not match rooms with an area",
			key:   RoomNumberKey{RoomName: "101", Floor: intPtr(1), MapCode: "TEST"},
			taken: false,
		},
		{
			name:      "excluding the record under update frees its own key",
			key:       RoomNumberKey{RoomName: "101", Floor: intPtr(1), Area: &area.ID, MapCode: "TEST"},
			excludeID: "R1",
			taken:     false,
		},
		{
			name:  "nil floor matches any floor",
			key:   RoomNumberKey{RoomName: "101", Area: &area.ID, MapCode: "TEST"},
			taken: true,
		},
		{
			name:  "other map is a separate scope",
			key:   RoomNumberKey{RoomName: "101", Floor: intPtr(1), Area: &area.ID, MapCode: "OTHER"},
			taken: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			taken, err := s.RoomNumberTaken(ctx, tc.key, tc.excludeID)
			assert.NoError(t, err)
			assert.Equal(t, tc.taken, taken)
		})
	}
}

func TestRoomAssociationSync(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	gdb := s.DB()

	area := model.Area{Name: "North Wing", MapCode: "TEST"}
	require.NoError(t, s.CreateArea(ctx, &area))
	other := model.Area{Name: "South Wing", MapCode: "TEST"}
	require.NoError(t, s.CreateArea(ctx, &other))

	assocRows := func() []model.AreaRoom {
		var rows []model.AreaRoom
		require.NoError(t, gdb.Find(&rows).Error)
		return rows
	}

	// Creating a room with an area writes the association row.
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R1", RoomName: "201", Area: &area.ID, MapCode: "TEST",
	}))
	rows := assocRows()
	require.Len(t, rows, 1)
	assert.Equal(t, model.AreaRoom{RoomID: "R1", AreaID: area.ID, RoomName: "201"}, rows[0])

	// A name-only update renames the row in place.
	require.NoError(t, s.UpdateRoom(ctx, "R1", RoomPatch{RoomName: strPtr("201B")}))
	rows = assocRows()
	require.Len(t, rows, 1)
	assert.Equal(t, "201B", rows[0].RoomName)

	// Moving the room to another area rewrites the same row, never a second one.
	require.NoError(t, s.UpdateRoom(ctx, "R1", RoomPatch{AreaSet: true, Area: &other.ID}))
	rows = assocRows()
	require.Len(t, rows, 1)
	assert.Equal(t, other.ID, rows[0].AreaID)

	// Clearing the area removes the row.
	require.NoError(t, s.UpdateRoom(ctx, "R1", RoomPatch{AreaSet: true}))
	assert.Empty(t, assocRows())

	// A room without an area never gets a row.
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R2", RoomName: "202", MapCode: "TEST",
	}))
	assert.Empty(t, assocRows())
}

func TestDeleteRoomDetachesSensors(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	area := model.Area{Name: "West Wing", MapCode: "TEST"}
	require.NoError(t, s.CreateArea(ctx, &area))
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R1", RoomName: "301", Area: &area.ID, MapCode: "TEST",
	}))
	require.NoError(t, s.CreateSensor(ctx, &model.Sensor{
		ID: "S1", X: 10, Y: 20, RoomID: strPtr("R1"), Status: model.SensorStatusAvailable, MapCode: "TEST",
	}))

	require.NoError(t, s.DeleteRoom(ctx, "R1"))

	// The sensor survives, detached.
	var sensor model.Sensor
	require.NoError(t, s.DB().Where("id = ?", "S1").Take(&sensor).Error)
	assert.Nil(t, sensor.RoomID)

	var assocCount int64
	require.NoError(t, s.DB().Model(&model.AreaRoom{}).Count(&assocCount).Error)
	assert.Zero(t, assocCount)

	_, err := s.GetRoom(ctx, "R1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.DeleteRoom(ctx, "R1"), ErrNotFound)
}

func TestDeleteAreaKeepsRooms(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	area := model.Area{Name: "Annex", MapCode: "TEST"}
	require.NoError(t, s.CreateArea(ctx, &area))
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R1", RoomName: "401", Area: &area.ID, MapCode: "TEST",
	}))

	require.NoError(t, s.DeleteArea(ctx, area.ID))

	room, err := s.GetRoom(ctx, "R1")
	require.NoError(t, err)
	assert.Nil(t, room.Area)
	assert.Nil(t, room.AreaName)

	var assocCount int64
	require.NoError(t, s.DB().Model(&model.AreaRoom{}).Count(&assocCount).Error)
	assert.Zero(t, assocCount)

	assert.ErrorIs(t, s.DeleteArea(ctx, area.ID), ErrNotFound)
}

func TestSensorExistsIsCaseInsensitive(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateSensor(ctx, &model.Sensor{
		ID: "Sensor-A", X: 1, Y: 2, Status: model.SensorStatusAvailable, MapCode: "TEST",
	}))

	for _, id := range []string{"Sensor-A", "sensor-a", "SENSOR-A"} {
		exists, err := s.SensorExists(ctx, id)
		assert.NoError(t, err)
		assert.True(t, exists, id)
	}

	exists, err := s.SensorExists(ctx, "Sensor-B")
	assert.NoError(t, err)
	assert.False(t, exists)

	// Deletion by id stays byte-exact.
	assert.ErrorIs(t, s.DeleteSensor(ctx, "sensor-b"), ErrNotFound)
}

func seedMap(t *testing.T, s Store, mapCode string) {
	t.Helper()
	ctx := context.Background()

	_, err := s.UpsertZone(ctx, mapCode, strings.ToLower(mapCode)+"-plan.png")
	require.NoError(t, err)

	area := model.Area{Name: mapCode + " wing", MapCode: mapCode}
	require.NoError(t, s.CreateArea(ctx, &area))

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.CreateRoom(ctx, &model.Room{
			ID:       fmt.Sprintf("%s-R%d", mapCode, i),
			RoomName: fmt.Sprintf("%d01", i),
			Area:     &area.ID,
			MapCode:  mapCode,
		}))
	}
	for i := 1; i <= 2; i++ {
		require.NoError(t, s.CreateSensor(ctx, &model.Sensor{
			ID:      fmt.Sprintf("%s-S%d", mapCode, i),
			X:       i * 10,
			Y:       i * 20,
			Status:  model.SensorStatusAvailable,
			MapCode: mapCode,
		}))
	}
}

func TestDeleteMap(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	seedMap(t, s, "WEST")
	seedMap(t, s, "EAST")

	t.Run("without force returns the dependent counts", func(t *testing.T) {
		_, _, err := s.DeleteMap(ctx, "WEST", false)

		var depErr *DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, Dependents{Rooms: 3, Areas: 1, Sensors: 2, Zones: 1}, depErr.Deps)

		// A refused deletion leaves everything in place.
		deps, err := s.CountDependents(ctx, "WEST")
		require.NoError(t, err)
		assert.Equal(t, int64(7), deps.Total())
	})

	t.Run("force deletes everything scoped to the map", func(t *testing.T) {
		// Lowercase input normalizes to the stored code.
		deps, imagePath, err := s.DeleteMap(ctx, "west", true)
		require.NoError(t, err)
		assert.Equal(t, Dependents{Rooms: 3, Areas: 1, Sensors: 2, Zones: 1}, deps)
		assert.Equal(t, "west-plan.png", imagePath)

		after, err := s.CountDependents(ctx, "WEST")
		require.NoError(t, err)
		assert.Zero(t, after.Total())

		var assocCount int64
		require.NoError(t, s.DB().Model(&model.AreaRoom{}).
			Where("room_id LIKE ?", "WEST-%").Count(&assocCount).Error)
		assert.Zero(t, assocCount)

		// The other map is untouched.
		other, err := s.CountDependents(ctx, "EAST")
		require.NoError(t, err)
		assert.Equal(t, int64(7), other.Total())
	})

	t.Run("deleting a map without dependents needs no force", func(t *testing.T) {
		_, err := s.UpsertZone(ctx, "EMPTY", "empty-plan.png")
		require.NoError(t, err)
		// The zone record itself counts as a dependent, so force is
		// still required once the record exists.
		_, _, err = s.DeleteMap(ctx, "EMPTY", false)
		var depErr *DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, Dependents{Zones: 1}, depErr.Deps)

		deps, imagePath, err := s.DeleteMap(ctx, "EMPTY", true)
		require.NoError(t, err)
		assert.Equal(t, Dependents{Zones: 1}, deps)
		assert.Equal(t, "empty-plan.png", imagePath)
	})

	t.Run("the default map is protected regardless of case or force", func(t *testing.T) {
		seedMap(t, s, "HIT")
		for _, code := range []string{"HIT", "hit", " Hit "} {
			_, _, err := s.DeleteMap(ctx, code, true)
			assert.ErrorIs(t, err, ErrProtectedMap, code)
		}
		deps, err := s.CountDependents(ctx, "HIT")
		require.NoError(t, err)
		assert.Equal(t, int64(7), deps.Total())
	})

	t.Run("an empty map code is rejected", func(t *testing.T) {
		_, _, err := s.DeleteMap(ctx, "   ", true)
		assert.ErrorIs(t, err, ErrEmptyMapCode)
	})
}

// Map codes are case-insensitive: whatever casing a write arrives with, the
// stored code, the list filters and the dependency counts must all agree, or
// a forced map deletion would leave mixed-case rows behind.
func TestMapCodeNormalization(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	area := model.Area{Name: "West Wing", MapCode: "west"}
	require.NoError(t, s.CreateArea(ctx, &area))
	require.NoError(t, s.CreateRoom(ctx, &model.Room{
		ID: "R1", RoomName: "101", Area: &area.ID, MapCode: " west ",
	}))
	require.NoError(t, s.CreateSensor(ctx, &model.Sensor{
		ID: "S1", X: 1, Y: 2, Status: model.SensorStatusAvailable, MapCode: "West",
	}))

	rooms, err := s.ListRooms(ctx, "west")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "WEST", rooms[0].MapCode)

	areas, err := s.ListAreas(ctx, "WEST")
	require.NoError(t, err)
	assert.Len(t, areas, 1)

	sensors, err := s.ListSensors(ctx, "wEsT")
	require.NoError(t, err)
	assert.Len(t, sensors, 1)

	deps, err := s.CountDependents(ctx, "west")
	require.NoError(t, err)
	assert.Equal(t, Dependents{Rooms: 1, Areas: 1, Sensors: 1}, deps)

	deleted, _, err := s.DeleteMap(ctx, "west", true)
	require.NoError(t, err)
	assert.Equal(t, Dependents{Rooms: 1, Areas: 1, Sensors: 1}, deleted)

	after, err := s.CountDependents(ctx, "WEST")
	require.NoError(t, err)
	assert.Zero(t, after.Total())
	_, err = s.GetRoom(ctx, "R1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertZone(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	replaced, err := s.UpsertZone(ctx, "lab", "lab-v1.png")
	require.NoError(t, err)
	assert.Empty(t, replaced)

	zone, err := s.GetZone(ctx, "LAB")
	require.NoError(t, err)
	assert.Equal(t, "lab-v1.png", zone.Path)

	// Replacing the image reports the old path for cleanup.
	replaced, err = s.UpsertZone(ctx, "LAB", "lab-v2.png")
	require.NoError(t, err)
	assert.Equal(t, "lab-v1.png", replaced)

	// Re-writing the same path is not a replacement.
	replaced, err = s.UpsertZone(ctx, "LAB", "lab-v2.png")
	require.NoError(t, err)
	assert.Empty(t, replaced)

	zones, err := s.ListZones(ctx)
	require.NoError(t, err)
	assert.Len(t, zones, 1)

	_, err = s.UpsertZone(ctx, "  ", "x.png")
	assert.ErrorIs(t, err, ErrEmptyMapCode)
}

func TestUsers(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	admin := model.User{Username: "admin", Password: "secret", Role: model.RoleAdmin}
	require.NoError(t, s.EnsureUser(ctx, &admin))

	// Seeding again never overwrites an existing account.
	require.NoError(t, s.EnsureUser(ctx, &model.User{
		Username: "admin", Password: "other", Role: model.RoleUser,
	}))

	user, err := s.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	_, err = s.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrNotFound)
}

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// A failure partway through a forced map deletion must roll the whole
// transaction back; a map is never left half-deleted.
func TestDeleteMapRollsBackOnFailure(t *testing.T) {
	gormDB, mock := newMockDB(t)
	s := NewGormStore(gormDB)

	countRows := func(n int64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"count"}).AddRow(n)
	}
	mock.ExpectQuery(`SELECT count\(\*\) FROM "rooms"`).WithArgs("WEST").WillReturnRows(countRows(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "areas"`).WithArgs("WEST").WillReturnRows(countRows(1))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "sensors"`).WithArgs("WEST").WillReturnRows(countRows(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "zones"`).WithArgs("WEST").WillReturnRows(countRows(1))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "zones"`).WithArgs("WEST", Any{}).
		WillReturnRows(sqlmock.NewRows([]string{"map_code", "path"}).AddRow("WEST", "west-plan.png"))
	mock.ExpectExec(`DELETE FROM "sensors"`).WithArgs("WEST").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "area_rooms"`).WithArgs("WEST", "WEST").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "rooms"`).WithArgs("WEST").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err := s.DeleteMap(context.Background(), "WEST", true)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
