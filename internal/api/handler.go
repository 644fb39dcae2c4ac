package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"active-rooms-backend/internal/imagestore"
	"active-rooms-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	images *imagestore.Store
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, images *imagestore.Store) *Handler {
	return &Handler{
		store:  s,
		images: images,
	}
}

// Health handles the GET /api/health request.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Active Rooms Detection API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// requestBase reconstructs the scheme and host of the incoming request,
// used as the fallback base for image URLs.
func requestBase(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
