package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"active-rooms-backend/internal/store"
)

// ListMaps handles GET /api/maps. The stored path is exposed as "filename"
// alongside a resolvable URL.
func (h *Handler) ListMaps(c *gin.Context) {
	zones, err := h.store.ListZones(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching maps"})
		return
	}

	base := requestBase(c)
	maps := make([]gin.H, 0, len(zones))
	for _, z := range zones {
		maps = append(maps, gin.H{
			"map_code":   z.MapCode,
			"filename":   z.Path,
			"url":        h.images.PublicURL(z.Path, base),
			"created_at": z.CreatedAt,
			"updated_at": z.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": maps})
}

// GetZones handles GET /api/zones?map=. Zones are the per-map records the
// dashboard uses to decide which floor plan to render.
func (h *Handler) GetZones(c *gin.Context) {
	mapCode := strings.TrimSpace(c.Query("map"))
	if mapCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing map parameter"})
		return
	}

	zone, err := h.store.GetZone(c.Request.Context(), strings.ToUpper(mapCode))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{}})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching zones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": []gin.H{{
		"map_code": zone.MapCode,
		"path":     zone.Path,
	}}})
}

// GetMapImage handles GET /api/maps/:map_code/image, resolving a map code
// to the URL of its stored floor plan.
func (h *Handler) GetMapImage(c *gin.Context) {
	mapCode := strings.ToUpper(strings.TrimSpace(c.Param("map_code")))

	zone, err := h.store.GetZone(c.Request.Context(), mapCode)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Map not found", "url": nil})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching map"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"url":     h.images.PublicURL(zone.Path, requestBase(c)),
	})
}

// UploadMap handles POST /api/maps/upload. The multipart request carries
// the image under "mapImage" and the code under "map_code". Re-uploading
// for an existing code replaces the stored image; the old file is removed
// after the record is committed.
func (h *Handler) UploadMap(c *gin.Context) {
	mapCode := strings.ToUpper(strings.TrimSpace(c.PostForm("map_code")))
	file, header, err := c.Request.FormFile("mapImage")
	if mapCode == "" || err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing map_code or file"})
		return
	}
	defer file.Close()

	filename, err := h.images.Save(file, mapCode, header.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store image"})
		return
	}

	replaced, err := h.store.UpsertZone(c.Request.Context(), mapCode, filename)
	if err != nil {
		if rmErr := h.images.Remove(filename); rmErr != nil {
			log.Printf("failed to remove orphaned image %s: %v", filename, rmErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save map"})
		return
	}
	if replaced != "" {
		if err := h.images.Remove(replaced); err != nil {
			log.Printf("failed to remove replaced image %s: %v", replaced, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Map uploaded and saved!",
		"map_code": mapCode,
		"filename": filename,
		"url":      h.images.PublicURL(filename, requestBase(c)),
	})
}

// DeleteMap handles DELETE /api/maps/:map_code. Without force the request
// is a dry run when dependents exist: the counts come back as a 409 and
// the client retries with ?force=true to confirm. The stored image is
// unlinked only after the database transaction commits.
func (h *Handler) DeleteMap(c *gin.Context) {
	mapCode := strings.TrimSpace(c.Param("map_code"))
	if mapCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing map_code"})
		return
	}
	force := c.Query("force") == "true"

	deps, imagePath, err := h.store.DeleteMap(c.Request.Context(), mapCode, force)

	var depErr *store.DependencyError
	switch {
	case errors.Is(err, store.ErrEmptyMapCode):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing map_code"})
		return
	case errors.Is(err, store.ErrProtectedMap):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cannot delete default map HIT"})
		return
	case errors.As(err, &depErr):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Map has dependent records",
			"deps": gin.H{
				"rooms":   depErr.Deps.Rooms,
				"areas":   depErr.Deps.Areas,
				"sensors": depErr.Deps.Sensors,
				"zones":   depErr.Deps.Zones,
			},
		})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete map"})
		return
	}

	if err := h.images.Remove(imagePath); err != nil {
		log.Printf("failed to remove image of deleted map %s: %v", mapCode, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Map deleted",
		"deleted": gin.H{
			"rooms":   deps.Rooms,
			"areas":   deps.Areas,
			"sensors": deps.Sensors,
			"zones":   deps.Zones,
		},
	})
}
