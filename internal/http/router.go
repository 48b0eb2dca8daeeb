package api

import (
	"log"
	stdhttp "net/http"

	intconfig "bikerental/internal/config"
	"bikerental/internal/domain"
	h "bikerental/internal/http/handlers"
	"bikerental/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. deps with nil stores uses the MySQL repositories.
func NewRouter(env intconfig.Env, deps h.Handler) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	manager := middleware.RequireRoles(domain.RoleManager)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/register", deps.Register)
		api.POST("/login", deps.Login)

		authed := api.Group("", middleware.Auth(deps.Authenticator()))
		authed.GET("/db-check", deps.DBCheck)

		// Users
		users := authed.Group("/users", manager)
		users.GET("", deps.GetUsers)
		users.POST("", deps.CreateUser)
		users.PUT("/:id", deps.UpdateUser)
		users.DELETE("/:id", deps.DeleteUser)
		users.GET("/:id/bikes", deps.GetUserBikes)

		// Bikes
		bikes := authed.Group("/bikes")
		bikes.GET("", deps.GetBikes)
		bikes.GET("/:id", deps.GetBike)
		bikes.POST("", manager, deps.CreateBike)
		bikes.PUT("/:id", manager, deps.UpdateBike)
		bikes.DELETE("/:id", manager, deps.DeleteBike)
		bikes.GET("/:id/users", manager, deps.GetBikeUsers)
		authed.GET("/availableBikes", deps.GetAvailableBikes)

		// Reservations
		reservations := authed.Group("/reservations")
		reservations.GET("", deps.GetReservations)
		reservations.POST("", deps.CreateReservation)
		reservations.DELETE("/:id", deps.DeleteReservation)
		reservations.GET("/:id/receipt", deps.GetReservationReceipt)
		authed.PUT("/rate/:id", deps.RateReservation)
	}

	return r
}
