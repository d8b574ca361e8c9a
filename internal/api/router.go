package api

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/booking"
	bookingHttp "github.com/shareit/shareit-backend/internal/booking/http"
	"github.com/shareit/shareit-backend/internal/config"
	"github.com/shareit/shareit-backend/internal/item"
	itemHttp "github.com/shareit/shareit-backend/internal/item/http"
	"github.com/shareit/shareit-backend/internal/request"
	requestHttp "github.com/shareit/shareit-backend/internal/request/http"
	"github.com/shareit/shareit-backend/internal/user"
	userHttp "github.com/shareit/shareit-backend/internal/user/http"
)

// Config holds everything the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	Logger       zerolog.Logger
	RateLimit    config.RateLimitConfig

	// Identity establishes the caller for item, booking and request routes.
	Identity gin.HandlerFunc
	// TokenIssuer, when set, mounts POST /auth/token for development use.
	TokenIssuer userHttp.TokenIssuer
	// Health reports backing store liveness. Nil means always healthy.
	Health func(ctx context.Context) error

	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService request.Service
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, logging, metrics, rate limiting) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	// - RequestID / RequestLogger: Tags each request and writes one access log line.
	// - Metrics: Records request counts and latency per route.
	r.Use(gin.Recovery(), RequestID(), RequestLogger(cfg.Logger), Metrics())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = cfg.ProdOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", auth.HeaderUserID}
	corsConfig.ExposeHeaders = []string{HeaderRequestID}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", healthHandler(cfg.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	identity := cfg.Identity
	if identity == nil {
		identity = auth.HeaderRequired()
	}

	// The limiter runs after identity on protected routes so that buckets are
	// keyed by the authenticated user. One limiter backs both groups.
	var limit []gin.HandlerFunc
	if cfg.RateLimit.RPS > 0 {
		limit = append(limit, RateLimit(cfg.RateLimit))
	}
	public := r.Group("", limit...)
	protected := r.Group("", append([]gin.HandlerFunc{identity}, limit...)...)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.TokenIssuer)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)

	userHttp.RegisterRoutes(public, userHandler)
	itemHttp.RegisterRoutes(public, protected, itemHandler)
	bookingHttp.RegisterRoutes(protected, bookingHandler)
	requestHttp.RegisterRoutes(protected, requestHandler)

	return r
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(c.Request.Context()); err != nil {
				zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
