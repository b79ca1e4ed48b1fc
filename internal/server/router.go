package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/capitolwatch/capitolwatch-backend/internal/handlers"
	"github.com/capitolwatch/capitolwatch-backend/internal/logger"
	"github.com/capitolwatch/capitolwatch-backend/internal/middleware"
	"github.com/capitolwatch/capitolwatch-backend/internal/utils"
)

type RouterConfig struct {
	Log               *logger.Logger
	LegislatorHandler *handlers.LegislatorHandler
	VoteHandler       *handlers.VoteHandler
	PortraitHandler   *handlers.PortraitHandler
	JobsHandler       *handlers.JobsHandler
	AuthMiddleware    *middleware.AuthMiddleware
	TracingEnabled    bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.RequestLogger(cfg.Log))
	if cfg.TracingEnabled {
		router.Use(otelgin.Middleware("capitolwatch-backend"))
	}

	// Cors
	allowed, suffixes := corsOrigins(cfg.Log)
	router.Use(cors.New(cors.Config{
		AllowOrigins: allowed,
		AllowOriginFunc: func(origin string) bool {
			for _, suffix := range suffixes {
				if strings.HasSuffix(origin, suffix) {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Total-Count", "X-Request-Id"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.GET("/portraits/:filename", cfg.PortraitHandler.Get)
	api := router.Group("/api")
	{
		api.GET("/legislators", cfg.LegislatorHandler.List)
		api.GET("/legislators/:bioguide_id", cfg.LegislatorHandler.GetProfile)
		api.GET("/votes", cfg.VoteHandler.ListSessions)
		api.GET("/votes/:vote_id", cfg.VoteHandler.GetSession)
	}

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/jobs", cfg.JobsHandler.List)
	admin.POST("/jobs/:name/trigger", cfg.JobsHandler.Trigger)

	return router
}

// corsOrigins splits CORS_ALLOWED_ORIGINS into exact origins and
// wildcard suffix patterns ("*.example.com" matches any subdomain).
func corsOrigins(log *logger.Logger) ([]string, []string) {
	raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", log)
	var exact, suffixes []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if strings.HasPrefix(origin, "*.") {
			suffixes = append(suffixes, origin[1:])
			continue
		}
		exact = append(exact, origin)
	}
	return exact, suffixes
}
