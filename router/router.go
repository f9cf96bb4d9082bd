package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/controllers"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/events"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/middlewares"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/policy"
	"github.com/KevinCastro25/Sistema-Distribuido-Reserva-en-restaurantes/services"
)

func SetupRouter(db *gorm.DB, bus *events.Bus) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Servicios de dominio
	mesaSvc := services.NewMesaService(db, bus)
	reservaSvc := services.NewReservaService(db, mesaSvc, bus)

	// Controllers
	usuarioCtrl := controllers.NewUsuarioController(db)
	mesaCtrl := controllers.NewMesaController(mesaSvc)
	reservaCtrl := controllers.NewReservaController(reservaSvc)
	adminCtrl := controllers.NewAdminController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Login y registro con límite estricto
	public := api.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", usuarioCtrl.Register)
		public.POST("/login", usuarioCtrl.Login)
	}

	// -- RESERVAS (sin autenticación, como el despliegue de referencia) --
	api.POST("/reservas", reservaCtrl.CrearReserva)
	api.GET("/reservas", reservaCtrl.GetReservas)
	api.GET("/mesas", mesaCtrl.GetAllMesas)

	// -- RUTAS AUTENTICADAS --
	auth := api.Group("/")
	auth.Use(middlewares.AuthMiddleware(db))
	{
		auth.GET("/perfil", usuarioCtrl.GetPerfil)
		auth.PUT("/perfil", usuarioCtrl.ActualizarPerfil)
		auth.POST("/logout", usuarioCtrl.Logout)
	}

	// -- PANEL DE ADMINISTRACIÓN --
	admin := api.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(db))
	admin.Use(middlewares.RequireCapability(policy.Admin))
	{
		admin.GET("/usuarios", usuarioCtrl.GetAllUsuarios)
		admin.PUT("/usuarios/:user_id", usuarioCtrl.ActualizarUsuario)
		admin.DELETE("/usuarios/:user_id", usuarioCtrl.EliminarUsuario)

		admin.GET("/mesas", mesaCtrl.GetAllMesas)
		admin.POST("/mesas", mesaCtrl.CrearMesa)
		admin.PUT("/mesas/:mesa_id", mesaCtrl.ActualizarEstadoMesa)

		admin.GET("/reservas", reservaCtrl.GetReservas)
		admin.PUT("/reservas/:reserva_id", reservaCtrl.ActualizarReserva)
		admin.DELETE("/reservas/:reserva_id", reservaCtrl.EliminarReserva)

		admin.GET("/estadisticas", adminCtrl.GetEstadisticas)
	}

	return r
}
