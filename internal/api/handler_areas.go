package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"active-rooms-backend/internal/model"
	"active-rooms-backend/internal/store"
	"active-rooms-backend/internal/validate"
)

// ListAreas handles GET /api/areas, optionally filtered by map_code.
func (h *Handler) ListAreas(c *gin.Context) {
	areas, err := h.store.ListAreas(c.Request.Context(), c.Query("map_code"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching areas"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": areas})
}

// CheckAreaID handles GET /api/areas/check-id?id=. A non-numeric id can
// never exist, so it reports false rather than an error.
func (h *Handler) CheckAreaID(c *gin.Context) {
	raw := c.Query("id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"exists": false, "message": "Missing id parameter"})
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"exists": false})
		return
	}
	exists, err := h.store.AreaExists(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"exists": false, "message": "DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

// CreateArea handles POST /api/areas. A numeric id may be supplied by the
// caller; otherwise the database assigns one.
func (h *Handler) CreateArea(c *gin.Context) {
	var p validate.AreaPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if errs := validate.Area(p, true); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	area := model.Area{
		Name:    strings.TrimSpace(p.Name.Value),
		MapCode: strings.ToUpper(strings.TrimSpace(p.MapCode.Value)),
	}
	if p.ID.Present && !p.ID.Null {
		exists, err := h.store.AreaExists(c.Request.Context(), p.ID.Value)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
			return
		}
		if exists {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Validation failed",
				"errors":  []string{"Area ID already exists"},
			})
			return
		}
		area.ID = p.ID.Value
	}
	if p.Description.Present && !p.Description.Cleared() {
		v := p.Description.Value
		area.Description = &v
	}

	if err := h.store.CreateArea(c.Request.Context(), &area); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Area added successfully",
		"data":    area,
	})
}

// UpdateArea handles PUT /api/areas/:id. The update replaces name and
// description; omitting the description clears it.
func (h *Handler) UpdateArea(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Area not found"})
		return
	}

	var p validate.AreaPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	if errs := validate.Area(p, false); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	var description *string
	if p.Description.Present && !p.Description.Cleared() {
		v := p.Description.Value
		description = &v
	}

	area, err := h.store.UpdateArea(c.Request.Context(), id, strings.TrimSpace(p.Name.Value), description)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Area not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Area updated successfully",
		"updated": area,
	})
}

// DeleteArea handles DELETE /api/areas/:id. Rooms assigned to the area
// are detached, not deleted.
func (h *Handler) DeleteArea(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Area not found"})
		return
	}

	err = h.store.DeleteArea(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Area not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Area deleted successfully"})
}
