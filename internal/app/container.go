package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shareit/shareit-backend/internal/api"
	"github.com/shareit/shareit-backend/internal/auth"
	"github.com/shareit/shareit-backend/internal/booking"
	"github.com/shareit/shareit-backend/internal/config"
	"github.com/shareit/shareit-backend/internal/item"
	"github.com/shareit/shareit-backend/internal/request"
	"github.com/shareit/shareit-backend/internal/user"
	userHttp "github.com/shareit/shareit-backend/internal/user/http"
)

// Deps holds the external resources the application runs on.
// DBPool is required for postgres storage and ignored for memory storage.
// RedisClient is optional and enables the user lookup cache.
type Deps struct {
	Config      *config.Config
	Logger      zerolog.Logger
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router         *gin.Engine
	JWTManager     *auth.JWTManager
	UserService    user.Service
	ItemService    item.Service
	BookingService booking.Service
	RequestService request.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(deps Deps) (*Container, error) {
	cfg := deps.Config

	var (
		userRepo    user.Repository
		itemRepo    item.Repository
		bookingRepo booking.Repository
		requestRepo request.Repository
		health      func(ctx context.Context) error
	)

	switch cfg.Storage {
	case config.StorageMemory:
		userRepo = user.NewMemoryRepository()
		itemRepo = item.NewMemoryRepository()
		bookingRepo = booking.NewMemoryRepository(itemRepo, userRepo)
		requestRepo = request.NewMemoryRepository()
	case config.StoragePostgres:
		if deps.DBPool == nil {
			return nil, fmt.Errorf("postgres storage requires a database pool")
		}
		userRepo = user.NewPgxRepository(deps.DBPool)
		itemRepo = item.NewPgxRepository(deps.DBPool)
		bookingRepo = booking.NewPgxRepository(deps.DBPool)
		requestRepo = request.NewPgxRepository(deps.DBPool)
		health = deps.DBPool.Ping
	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	if deps.RedisClient != nil {
		userRepo = user.NewCachedRepository(userRepo, deps.RedisClient, cfg.Redis.TTL, deps.Logger)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	// User Module
	userService := user.NewService(userRepo)

	// Booking Module. Item lookups go straight to the item repository so that
	// the item service can in turn depend on bookings for its projections.
	bookingService := booking.NewService(bookingRepo, itemRepo, userService)

	// Request Module. Answers are read from the item repository as well.
	requestService := request.NewService(requestRepo, userService, itemRepo)

	// Item Module
	itemService := item.NewService(itemRepo, userService, bookingService, requestService)

	// POST /auth/token is only mounted in jwt mode outside production.
	var tokenIssuer userHttp.TokenIssuer
	if cfg.AuthMode == config.AuthModeJWT && !cfg.IsProduction {
		tokenIssuer = jwtManager
	}

	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         deps.Logger,
		RateLimit:      cfg.RateLimit,
		Identity:       auth.Identity(cfg.AuthMode, jwtManager),
		TokenIssuer:    tokenIssuer,
		Health:         health,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	})

	return &Container{
		Router:         router,
		JWTManager:     jwtManager,
		UserService:    userService,
		ItemService:    itemService,
		BookingService: bookingService,
		RequestService: requestService,
	}, nil
}
