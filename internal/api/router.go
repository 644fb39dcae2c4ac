package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"active-rooms-backend/config"
	"active-rooms-backend/internal/imagestore"
	"active-rooms-backend/internal/mw"
	"active-rooms-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
//
// Reads are open except the sensor list; every mutation requires credential
// headers and the admin role. Map metadata reads sit behind a short response
// cache since floor plans change rarely.
func NewRouter(s store.Store, images *imagestore.Store, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, images)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	authed := mw.Authenticate(s)
	admin := mw.RequireAdmin()

	// Uploaded floor plan images.
	r.Static(imagestore.URLPrefix, images.Dir())

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/health", handler.Health)
		api.POST("/login", handler.Login)

		api.GET("/rooms", handler.ListRooms)
		api.GET("/rooms/check-id", handler.CheckRoomID)
		api.POST("/rooms", authed, admin, handler.CreateRoom)
		api.PUT("/rooms/:id", authed, admin, handler.UpdateRoom)
		api.DELETE("/rooms/:id", authed, admin, handler.DeleteRoom)

		api.GET("/areas", handler.ListAreas)
		api.GET("/areas/check-id", handler.CheckAreaID)
		api.POST("/areas", authed, admin, handler.CreateArea)
		api.PUT("/areas/:id", authed, admin, handler.UpdateArea)
		api.DELETE("/areas/:id", authed, admin, handler.DeleteArea)

		api.GET("/sensors", authed, handler.ListSensors)
		api.GET("/sensors/check-id", handler.CheckSensorID)
		api.POST("/sensors", authed, admin, handler.CreateSensor)
		api.PUT("/sensors/:id", authed, admin, handler.UpdateSensor)
		api.DELETE("/sensors/:id", authed, admin, handler.DeleteSensor)

		api.GET("/maps", caching, handler.ListMaps)
		api.GET("/zones", caching, handler.GetZones)
		api.GET("/maps/:map_code/image", caching, handler.GetMapImage)
		api.POST("/maps/upload", authed, admin, handler.UploadMap)
		api.DELETE("/maps/:map_code", authed, admin, handler.DeleteMap)
	}

	return r
}
