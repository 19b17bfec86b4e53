package router

import (
	"time"

	"github.com/45061/Hotelregistryapp/internal/config"
	"github.com/45061/Hotelregistryapp/internal/handler"
	"github.com/45061/Hotelregistryapp/internal/infra"
	"github.com/45061/Hotelregistryapp/internal/metrics"
	"github.com/45061/Hotelregistryapp/internal/middleware"
	"github.com/45061/Hotelregistryapp/internal/repository"
	"github.com/45061/Hotelregistryapp/internal/service"
	"github.com/45061/Hotelregistryapp/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// The report service is built by the caller because the worker pool shares it.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Metrics, reportes service.ReporteService, mailCB *infra.CircuitBreaker) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	libroRepo := repository.NewLibroRepository(db)
	habitacionRepo := repository.NewHabitacionRepository(db)
	viajeroRepo := repository.NewViajeroRepository(db)
	transaccionRepo := repository.NewTransaccionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cajaSvc := service.NewCajaService(cajaRepo, usuarioRepo, cfg.CashMethod, m)
	authSvc := service.NewAuthService(usuarioRepo, cajaSvc, cfg)
	habitacionSvc := service.NewHabitacionService(habitacionRepo)
	viajeroSvc := service.NewViajeroService(viajeroRepo)
	transaccionSvc := service.NewTransaccionService(transaccionRepo, usuarioRepo, m)
	adminSvc := service.NewAdminService(libroRepo, viajeroRepo, habitacionRepo, cfg.Location())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc, cfg.CookieSecure)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	habitacionesH := handler.NewHabitacionesHandler(habitacionSvc)
	viajerosH := handler.NewViajerosHandler(viajeroSvc)
	transaccionesH := handler.NewTransaccionesHandler(transaccionSvc)
	adminH := handler.NewAdminHandler(adminSvc, reportes)
	fallidosH := handler.NewFallidosHandler(worker.NewDeadLetterQueue(rdb))

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(handler.DBCheck(db), handler.RedisCheck(rdb), mailCB))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	jwtMW := middleware.JWTAuth(cfg.JWTSecret)

	// Session routes, available to users still pending authorization
	session := r.Group("/v1/auth", jwtMW)
	{
		session.POST("/logout", authH.Logout)
		session.GET("/me", authH.Me)
	}

	// Protected routes
	v1 := r.Group("/v1", jwtMW, middleware.RequireAutorizado())
	{
		cajas := v1.Group("/cajas")
		{
			cajas.GET("", cajaH.Listar)
			cajas.POST("", cajaH.Crear)
			cajas.GET("/activa", cajaH.Activa)
			// per-user transaction log, independent of the box cycles
			cajas.GET("/medios", transaccionesH.Medios)
			cajas.GET("/transacciones", transaccionesH.Listar)
			cajas.POST("/transacciones", transaccionesH.Registrar)
			cajas.GET("/:id", cajaH.Detalle)
			cajas.PUT("/:id", cajaH.Actualizar)
			cajas.DELETE("/:id", cajaH.Eliminar)
			cajas.POST("/:id/abrir", cajaH.Abrir)
			// any authorized user may close any box
			cajas.POST("/:id/cerrar", cajaH.Cerrar)
			cajas.POST("/:id/pagos", cajaH.RegistrarPago)
			cajas.POST("/:id/retiros", cajaH.RegistrarRetiro)
		}

		habitaciones := v1.Group("/habitaciones")
		{
			habitaciones.GET("", habitacionesH.Listar)
			habitaciones.POST("", habitacionesH.Crear)
			habitaciones.PUT("/:id", habitacionesH.Actualizar)
			habitaciones.PATCH("/:id/estado", habitacionesH.CambiarEstado)
		}

		viajeros := v1.Group("/viajeros")
		{
			viajeros.GET("", viajerosH.Listar)
			viajeros.POST("", viajerosH.Crear)
			viajeros.GET("/buscar", viajerosH.Buscar)
			viajeros.GET("/:id", viajerosH.Obtener)
			viajeros.PUT("/:id", viajerosH.Actualizar)
			viajeros.DELETE("/:id", viajerosH.Eliminar)
			viajeros.POST("/:id/acompanantes", viajerosH.AgregarAcompanante)
		}

		admin := v1.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/pagos", adminH.ResumenPagos)
			admin.GET("/ventas", adminH.ResumenVentas)
			admin.GET("/enviar-reporte", adminH.EnviarReporte)
			admin.GET("/reportes-fallidos", fallidosH.ReportesFallidos)
		}

		usuarios := v1.Group("/admin/usuarios", middleware.RequireSuperUsuario())
		{
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.ActualizarPermisos)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
