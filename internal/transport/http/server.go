package http

import (
	stdhttp "net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/PolusVault/chess/internal/config"
	"github.com/PolusVault/chess/internal/core"
	"github.com/PolusVault/chess/internal/limiter"
)

// NewServer builds the HTTP server: heartbeat, SPA assets, and the
// game socket.
func NewServer(hub *core.Hub, conns *limiter.ConnLimiter, rates *limiter.RateLimiter, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/heartbeat", heartbeatHandler)

	ws := NewWSHandler(hub, conns, rates, cfg.MaxMessageBytes, logger)
	router.GET("/chess/socket", ws.Handle)

	if cfg.StaticDir != "" {
		indexPath := filepath.Join(cfg.StaticDir, "index.html")
		router.Static("/assets", filepath.Join(cfg.StaticDir, "assets"))
		// The SPA owns every other path.
		router.NoRoute(func(c *gin.Context) {
			c.File(indexPath)
		})
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func heartbeatHandler(c *gin.Context) {
	c.JSON(stdhttp.StatusOK, gin.H{"status": "healthy"})
}
