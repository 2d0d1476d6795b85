package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"room-booking-backend/config"
	"room-booking-backend/internal/auth"
	"room-booking-backend/internal/mw"
	"room-booking-backend/internal/notification"
	"room-booking-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, authSvc *auth.Service, webpushOptions *webpush.Options, pool *notification.WorkerPool) *gin.Engine {
	r := gin.Default()

	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		r.Use(cors.New(corsCfg))
	}

	handler := NewHandler(s, authSvc, webpushOptions, pool)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)

	r.GET("/healthz", handler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/auth/register", handler.Register)
		api.POST("/auth/login", handler.Login)

		// Room listings are public so anyone can browse availability.
		api.GET("/rooms", caching, handler.ListRooms)
		api.GET("/rooms/:room_code", caching, handler.GetRoom)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)

		authed := api.Group("")
		authed.Use(mw.RequireUser(authSvc))
		{
			authed.POST("/auth/logout", handler.Logout)

			authed.POST("/rooms", handler.CreateRoom)
			authed.PUT("/rooms/:room_code", handler.UpdateRoom)
			authed.DELETE("/rooms/:room_code", handler.DeleteRoom)

			authed.POST("/bookings", handler.CreateBooking)
			authed.DELETE("/bookings/:booking_uid", handler.CancelBooking)
			authed.GET("/bookings", handler.MyBookings)
			authed.GET("/bookings/all", handler.AllBookings)
		}
	}

	return r
}
