package http

import (
	"net/http"

	"github.com/cphbikes/bikeshare-backend/internal/config"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Router struct {
	router *gin.Engine
}

func NewRouter(
	cfg *config.HTTP,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
	authHandler *AuthHandler,
	bikeHandler *BikeHandler,
	reservationHandler *ReservationHandler,
	rentalHandler *RentalHandler,
	adminHandler *AdminHandler,
) (*Router, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CorrelationIDMiddleware())
	router.Use(RequestLoggingMiddleware(logger, metrics))

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", correlationHeader},
		ExposeHeaders:    []string{"Content-Length", correlationHeader},
		AllowCredentials: true,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.POST("/auth/login", authHandler.Login)
	router.GET("/bikes", bikeHandler.GetAvailableBikes)

	// Reservation routes
	reservations := router.Group("/reservations")
	reservations.Use(AuthMiddleware(tokenService))
	{
		reservations.POST("", reservationHandler.CreateReservation)
	}

	// Rental routes
	rentals := router.Group("/rentals")
	rentals.Use(AuthMiddleware(tokenService))
	{
		rentals.POST("/start", rentalHandler.StartRental)
		rentals.POST("/end", rentalHandler.EndRental)
	}

	// Admin routes
	admin := router.Group("/admin")
	admin.Use(AuthMiddleware(tokenService), AdminMiddleware())
	{
		admin.POST("/inventory", adminHandler.UpdateInventory)
	}

	return &Router{router: router}, nil
}

func (r *Router) Serve(addr string) error {
	return r.router.Run(addr)
}

func (r *Router) Engine() *gin.Engine {
	return r.router
}
