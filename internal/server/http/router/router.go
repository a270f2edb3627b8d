package router

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/fideleatome/loyalty/internal/config"
	"github.com/fideleatome/loyalty/internal/domain/model"
	"github.com/fideleatome/loyalty/internal/server/http/handlers"
	"github.com/fideleatome/loyalty/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.LoyaltyFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientOrigin},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	customerHandler := handlers.NewCustomerHandler(facade)
	businessHandler := handlers.NewBusinessHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register/customer", authHandler.RegisterCustomer)
	auth.POST("/register/business", authHandler.RegisterBusiness)
	auth.POST("/login", authHandler.Login)

	customer := api.Group("/customer")
	customer.Use(middleware.AuthRequired(facade, model.RoleCustomer))
	customer.GET("/profile", customerHandler.Profile)
	customer.GET("/qrcode", customerHandler.QRCode)
	customer.GET("/loyalty", customerHandler.Loyalty)
	customer.GET("/history", customerHandler.History)
	customer.GET("/rewards", customerHandler.Rewards)

	business := api.Group("/business")
	business.Use(middleware.AuthRequired(facade, model.RoleBusiness))
	business.GET("/profile", businessHandler.Profile)
	business.POST("/scan", businessHandler.Scan)
	business.POST("/points", businessHandler.AddPoints)
	business.GET("/customers", businessHandler.Customers)
	business.GET("/stats", businessHandler.Stats)
	business.GET("/stats/sales", businessHandler.Sales)
	business.GET("/stats/top", businessHandler.Top)

	return engine
}
