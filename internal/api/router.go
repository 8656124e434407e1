package api

import (
	"parking_reservation/internal/api/handler"
	"parking_reservation/internal/api/middleware"
	"parking_reservation/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires every HTTP endpoint. Role gating: space writes are
// admin-only, the gate workflow is for guards (admins may stand in), incident
// reads are guard/admin, everything else only needs a valid token.
func SetupRouter(
	auth *service.AuthService,
	registry *service.RegistryService,
	scheduler *service.SchedulerService,
	tracker *service.TrackerService,
	vehicles *service.VehicleService,
	incidents *service.IncidentService,
	clock service.Clock,
	authMw *middleware.AuthMiddleware,
	wsManager *handler.WebSocketManager,
) *gin.Engine {
	r := gin.Default()
	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Availability board feed; no auth on the socket itself.
	wsHandler := handler.NewWebSocketHandler(wsManager)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(auth)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		v1.GET("/profile", authHandler.Profile)

		spaceH := handler.NewSpaceHandler(registry)
		spaceRoutes := v1.Group("/spaces")
		{
			spaceRoutes.POST("", authMw.AuthorizeRole("admin"), spaceH.CreateSpace)
			spaceRoutes.GET("", spaceH.ListSpaces)
			spaceRoutes.GET("/:id", spaceH.GetSpace)
			spaceRoutes.PUT("/:id/status", authMw.AuthorizeRole("admin"), spaceH.SetSpaceStatus)
		}

		resH := handler.NewReservationHandler(scheduler)
		resRoutes := v1.Group("/reservations")
		{
			resRoutes.POST("", resH.Book)
			resRoutes.GET("", resH.ListMine)
			resRoutes.POST("/:id/cancel", resH.Cancel)
		}

		vehicleH := handler.NewVehicleHandler(vehicles)
		vehicleRoutes := v1.Group("/vehicles")
		{
			vehicleRoutes.POST("", vehicleH.Register)
			vehicleRoutes.GET("", vehicleH.ListMine)
			vehicleRoutes.DELETE("/:id", vehicleH.Delete)
		}

		incidentH := handler.NewIncidentHandler(incidents)
		incidentRoutes := v1.Group("/incidents")
		incidentRoutes.Use(authMw.AuthorizeRole("guard", "admin"))
		{
			incidentRoutes.POST("", incidentH.Report)
			incidentRoutes.GET("", incidentH.List)
		}

		guardH := handler.NewGuardHandler(scheduler, tracker, clock)
		guardRoutes := v1.Group("/guard")
		guardRoutes.Use(authMw.AuthorizeRole("guard", "admin"))
		{
			guardRoutes.POST("/validate-plate", guardH.ValidatePlate)
			guardRoutes.POST("/reservations/:id/entry", guardH.RecordEntry)
			guardRoutes.POST("/reservations/:id/exit", guardH.RecordExit)
			guardRoutes.GET("/departures", guardH.ListDepartures)
		}
	}
	return r
}
