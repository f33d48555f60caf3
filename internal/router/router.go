package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/rodrigovasdev/prueba-desis/internal/config"
	"github.com/rodrigovasdev/prueba-desis/internal/dto"
	"github.com/rodrigovasdev/prueba-desis/internal/handler"
	"github.com/rodrigovasdev/prueba-desis/internal/middleware"
	"github.com/rodrigovasdev/prueba-desis/internal/repository"
	"github.com/rodrigovasdev/prueba-desis/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// Wrong verb on a known route answers 405 with the endpoint's envelope.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		aceptado := "GET"
		if strings.HasPrefix(c.Request.URL.Path, "/api/productos") {
			aceptado = "POST"
		}
		c.JSON(http.StatusMethodNotAllowed, dto.NewError("Método no permitido. Solo se acepta "+aceptado+"."))
	})

	// ── Repositories ─────────────────────────────────────────────────────────
	productoRepo := repository.NewProductoRepository(db)
	lookupRepo := repository.NewLookupRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	registroSvc := service.NewRegistroService(productoRepo)
	lookupSvc := service.NewLookupService(lookupRepo, rdb, time.Duration(cfg.LookupCacheTTLSecs)*time.Second)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productosH := handler.NewProductosHandler(registroSvc)
	lookupsH := handler.NewLookupsHandler(lookupSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	api := r.Group("/api")
	{
		api.POST("/productos", productosH.Registrar)
		api.GET("/bodegas", lookupsH.Bodegas)
		api.GET("/sucursales", lookupsH.Sucursales)
		api.GET("/monedas", lookupsH.Monedas)
		api.GET("/materiales", lookupsH.Materiales)
	}

	return r
}
