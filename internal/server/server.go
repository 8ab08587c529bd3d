package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/foodgram/backend/config"
	"github.com/pageza/foodgram/backend/internal/api"
	"github.com/pageza/foodgram/backend/internal/database"
	"github.com/pageza/foodgram/backend/internal/logging"
	"github.com/pageza/foodgram/backend/internal/middleware"
	"github.com/pageza/foodgram/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New builds the router with the API mounted. redisClient may be nil.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, images storage.ImageStore) *Server {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(cfg.CORSOrigins),
	)

	s := &Server{
		cfg:    cfg,
		router: router,
		db:     db,
		redis:  redisClient,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	router.GET("/health", s.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if disk, ok := images.(*storage.DiskStore); ok {
		router.Static(strings.TrimSuffix(cfg.MediaURL, "/"), disk.Root())
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRecipeCreationRateLimiter(redisClient, cfg.RecipeRateLimit)
	}
	api.RegisterRoutes(router, api.NewServices(db, cfg, images, redisClient), api.Options{
		PageSize:      cfg.PageSize,
		RecipeLimiter: limiter,
	})

	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK
	if err := database.HealthCheck(ctx, s.db); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("database health check failed")
		status["status"], status["database"] = "degraded", "unavailable"
		code = http.StatusServiceUnavailable
	}
	if s.redis != nil {
		status["redis"] = "ok"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("redis health check failed")
			status["redis"] = "unavailable"
		}
	}
	c.JSON(code, status)
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown, including one that happened before Start ran.
func (s *Server) Start() error {
	logging.Info().Str("addr", s.http.Addr).Msg("server starting")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
