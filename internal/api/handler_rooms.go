package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"active-rooms-backend/internal/model"
	"active-rooms-backend/internal/store"
	"active-rooms-backend/internal/validate"
)

// ListRooms handles GET /api/rooms, optionally filtered by map_code.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context(), c.Query("map_code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rooms})
}

// CheckRoomID handles GET /api/rooms/check-id?id=.
func (h *Handler) CheckRoomID(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"exists": false, "message": "Missing id parameter"})
		return
	}
	exists, err := h.store.RoomExists(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"exists": false, "message": "DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// CreateRoom handles POST /api/rooms. Field validation runs first;
// existence and uniqueness checks only run once it passes, and no write
// happens unless every check passes.
func (h *Handler) CreateRoom(c *gin.Context) {
	var p validate.RoomCreatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if errs := validate.RoomCreate(p); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	ctx := c.Request.Context()
	var errs []string

	var areaID *int64
	if p.AreaID.Present && !p.AreaID.Null {
		exists, err := h.store.AreaExists(ctx, p.AreaID.Value)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding room"})
			return
		}
		if !exists {
			errs = append(errs, "Selected area does not exist")
		} else {
			v := p.AreaID.Value
			areaID = &v
		}
	}

	exists, err := h.store.RoomExists(ctx, p.ID.Value)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding room"})
		return
	}
	if exists {
		errs = append(errs, "Room ID already exists")
	}

	var floor *int
	if p.Floor.Present && !p.Floor.Null && p.Floor.Valid {
		v := p.Floor.Value
		floor = &v
	}
	mapCode := strings.ToUpper(strings.TrimSpace(p.MapCode.Value))
	roomNumber := strings.TrimSpace(p.RoomNumber.Value)

	taken, err := h.store.RoomNumberTaken(ctx, store.RoomNumberKey{
		RoomName: roomNumber,
		Floor:    floor,
		Area:     areaID,
		MapCode:  mapCode,
	}, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding room"})
		return
	}
	if taken {
		errs = append(errs, "Room number already exists for this floor/area")
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	room := model.Room{
		ID:          p.ID.Value,
		Description: p.Description.Value,
		Area:        areaID,
		X:           p.X.Value,
		Y:           p.Y.Value,
		Floor:       floor,
		RoomName:    roomNumber,
		MapCode:     mapCode,
	}
	if err := h.store.CreateRoom(ctx, &room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding room"})
		return
	}

	view, err := h.store.GetRoom(ctx, room.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error adding room"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Room added successfully", "data": view})
}

// UpdateRoom handles PUT /api/rooms/:id with partial-update semantics: an
// omitted field keeps its value, a null or empty area/floor clears it.
func (h *Handler) UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var p validate.RoomUpdatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if errs := validate.RoomUpdate(id, p); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": errs})
		return
	}

	ctx := c.Request.Context()

	if p.RoomName.Present && !p.RoomName.Null {
		var floor *int
		if p.Floor.Present && !p.Floor.Null && p.Floor.Valid {
			v := p.Floor.Value
			floor = &v
		}
		var area *int64
		if p.Area.Present && !p.Area.Null && p.Area.Valid {
			v := p.Area.Value
			area = &v
		}
		taken, err := h.store.RoomNumberTaken(ctx, store.RoomNumberKey{
			RoomName: strings.TrimSpace(p.RoomName.Value),
			Floor:    floor,
			Area:     area,
			MapCode:  strings.TrimSpace(p.MapCode.Value),
		}, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update room"})
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"errors":  []string{"Room number already exists for this floor/area"},
			})
			return
		}
	}

	var patch store.RoomPatch
	if p.Description.Present && !p.Description.Null {
		v := p.Description.Value
		patch.Description = &v
	}
	if p.Area.Present {
		patch.AreaSet = true
		if !p.Area.Null && p.Area.Valid {
			v := p.Area.Value
			patch.Area = &v
		}
	}
	if p.X.Present && p.X.Valid {
		v := p.X.Value
		patch.X = &v
	}
	if p.Y.Present && p.Y.Valid {
		v := p.Y.Value
		patch.Y = &v
	}
	if p.Floor.Present {
		patch.FloorSet = true
		if !p.Floor.Null && p.Floor.Valid {
			v := p.Floor.Value
			patch.Floor = &v
		}
	}
	if p.RoomName.Present && !p.RoomName.Null {
		v := strings.TrimSpace(p.RoomName.Value)
		patch.RoomName = &v
	}

	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No fields to update"})
		return
	}

	if err := h.store.UpdateRoom(ctx, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room updated successfully"})
}

// DeleteRoom handles DELETE /api/rooms/:id. Sensors pointing at the room
// are detached, not deleted.
func (h *Handler) DeleteRoom(c *gin.Context) {
	err := h.store.DeleteRoom(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Room not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete room"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Room deleted successfully"})
}
