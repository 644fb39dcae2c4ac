package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"active-rooms-backend/internal/model"
	"active-rooms-backend/internal/store"
	"active-rooms-backend/internal/validate"
)

// ListSensors handles GET /api/sensors, optionally filtered by map_code.
func (h *Handler) ListSensors(c *gin.Context) {
	sensors, err := h.store.ListSensors(c.Request.Context(), c.Query("map_code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching sensors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sensors})
}

// CheckSensorID handles GET /api/sensors/check-id?id=. The lookup is
// case-insensitive, matching the uniqueness rule.
func (h *Handler) CheckSensorID(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"exists": false, "message": "Missing id parameter"})
		return
	}
	exists, err := h.store.SensorExists(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"exists": false, "message": "DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

type createSensorRequest struct {
	validate.SensorPayload
	MapCode string `json:"map_code"`
}

// CreateSensor handles POST /api/sensors. A duplicate id, compared
// case-insensitively, is a 409; a dangling room reference is a 400.
func (h *Handler) CreateSensor(c *gin.Context) {
	var req createSensorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if errs := validate.Sensor(req.SensorPayload, false); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	ctx := c.Request.Context()
	id := req.ID.Value

	exists, err := h.store.SensorExists(ctx, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": fmt.Sprintf("Sensor %s already exists", id)})
		return
	}

	var roomID *string
	if !req.RoomID.Cleared() && req.RoomID.Present {
		v := req.RoomID.Value
		roomExists, err := h.store.RoomExists(ctx, v)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
			return
		}
		if !roomExists {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Room %s does not exist", v)})
			return
		}
		roomID = &v
	}

	status := model.SensorStatusAvailable
	if req.Status.Present && !req.Status.Null {
		status = req.Status.Value
	}

	mapCode := strings.TrimSpace(req.MapCode)
	if mapCode == "" {
		mapCode = strings.TrimSpace(c.Query("map_code"))
	}

	sensor := model.Sensor{
		ID:      id,
		X:       req.X.Value,
		Y:       req.Y.Value,
		RoomID:  roomID,
		Status:  status,
		MapCode: strings.ToUpper(mapCode),
	}
	if err := h.store.CreateSensor(ctx, &sensor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": fmt.Sprintf("Sensor %s added successfully", id),
		"data":    sensor,
	})
}

// UpdateSensor handles PUT /api/sensors/:id. Any subset of x, y, status
// and room_id may be sent; an empty room_id detaches the sensor.
func (h *Handler) UpdateSensor(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sensor ID in URL is required"})
		return
	}

	var p validate.SensorPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if !p.X.Present && !p.Y.Present && !p.Status.Present && !p.RoomID.Present {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "At least one field (x, y, status, room_id) must be provided for update",
		})
		return
	}

	if errs := validate.Sensor(p, true); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	ctx := c.Request.Context()

	var patch store.SensorPatch
	if p.X.Present {
		v := p.X.Value
		patch.X = &v
	}
	if p.Y.Present {
		v := p.Y.Value
		patch.Y = &v
	}
	if p.Status.Present {
		v := p.Status.Value
		patch.Status = &v
	}
	if p.RoomID.Present {
		patch.RoomIDSet = true
		if !p.RoomID.Cleared() {
			v := p.RoomID.Value
			roomExists, err := h.store.RoomExists(ctx, v)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
				return
			}
			if !roomExists {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": fmt.Sprintf("Room %s does not exist", v)})
				return
			}
			patch.RoomID = &v
		}
	}

	sensor, err := h.store.UpdateSensor(ctx, id, patch)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("Sensor %s not found", id)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Sensor %s updated successfully", id),
		"updated": sensor,
	})
}

// DeleteSensor handles DELETE /api/sensors/:id.
func (h *Handler) DeleteSensor(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sensor ID is required and must be a valid string"})
		return
	}
	if len(id) > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Sensor ID must be 50 characters or less"})
		return
	}

	err := h.store.DeleteSensor(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("Sensor %s not found", id)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": fmt.Sprintf("Sensor %s deleted successfully", id)})
}
