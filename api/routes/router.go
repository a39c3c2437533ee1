// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kioskd/internal/bridge"
	"kioskd/internal/catalog"
	"kioskd/internal/kiosk"
	"kioskd/internal/orders"
	"kioskd/internal/payment"
	"kioskd/internal/receipt"
	"kioskd/internal/session"
	"kioskd/internal/shared/config"
	"kioskd/internal/state"
	"kioskd/pkg/cache"
	"kioskd/pkg/logger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	log    *logger.Logger
	bridge *bridge.Client
	store  *state.Store
	cache  cache.Service

	sessions *session.Manager
	payments *payment.Manager
	catalog  catalog.Service
	orders   orders.Service
	kiosk    kiosk.Service
}

// NewRouter creates a new router instance and wires the kiosk services
func NewRouter(cfg *config.Config, log *logger.Logger, bridgeClient *bridge.Client, store *state.Store, cacheService cache.Service) *Router {
	r := &Router{
		config: cfg,
		log:    log,
		bridge: bridgeClient,
		store:  store,
		cache:  cacheService,
	}

	r.sessions = session.NewManager(store, bridgeClient, cfg.Kiosk, log)
	r.payments = payment.NewManager(store, bridgeClient, r.sessions, cfg.Kiosk, log)
	r.catalog = catalog.NewService(bridgeClient, cacheService, cfg.Redis.MenuTTL)

	printer := receipt.NewPrinter(bridgeClient)
	r.orders = orders.NewService(store, bridgeClient, printer, r.payments, r.sessions, cfg.Kiosk, log)
	r.kiosk = kiosk.NewService(store, r.sessions, r.payments, r.catalog, log)

	return r
}

// Sessions exposes the session manager for lifecycle hooks in main
func (r *Router) Sessions() *session.Manager {
	return r.sessions
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		kiosk.SetupKioskRoutes(api, kiosk.NewController(r.kiosk))
		catalog.SetupCatalogRoutes(api, catalog.NewController(r.catalog))
		orders.SetupOrderRoutes(api, orders.NewController(r.orders))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if !r.bridge.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     "order backend not ready",
				"timestamp": time.Now(),
				"service":   "kioskd",
			})
			return
		}

		status := gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "kioskd",
		}
		if r.cache != nil {
			if err := r.cache.Ping(c.Request.Context()); err != nil {
				status["cache"] = "unreachable"
			} else {
				status["cache"] = "ok"
			}
		}
		c.JSON(http.StatusOK, status)
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
