package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lamji/crud-api-mern-sub001/configs"
	"github.com/lamji/crud-api-mern-sub001/controllers"
	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/middlewares"
	"github.com/lamji/crud-api-mern-sub001/pkg/cache"
	"github.com/lamji/crud-api-mern-sub001/pkg/paymongo"
	"github.com/lamji/crud-api-mern-sub001/repository"
	"github.com/lamji/crud-api-mern-sub001/services"
	"github.com/lamji/crud-api-mern-sub001/ws"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, log *zap.SugaredLogger) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"success": true}) })

	db := configs.DB()

	// Repositories and collaborators
	orderRepo := repository.NewOrderRepository(db)
	cashierRepo := repository.NewCashierRepository(db)
	productRepo := repository.NewProductRepository(db)
	redisCache := cache.NewRedisCache(cfg.RedisAddr)
	payments := paymongo.NewClient(cfg.PayMongoBaseURL, cfg.PayMongoSecretKey)

	// Status feed
	hub := ws.NewOrderFeedHub(log)
	go hub.Run()

	// Services
	orderSvc := services.NewOrderService(
		orderRepo, productRepo, cashierRepo, redisCache, payments, log,
		cfg.DefaultDeliveryFee, cfg.Currency,
	)
	orderSvc.Feed = hub
	authSvc := services.NewAuthService(cashierRepo, cfg.JWTSecret, cfg.JWTTTL, log)

	// Controllers
	orderCtrl := controllers.NewOrderController(orderSvc)
	authCtrl := controllers.NewAuthController(authSvc)
	productCtrl := controllers.NewProductController(productRepo)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Auth
	r.POST("/auth/login", authCtrl.Login)
	r.POST("/logout", auth, middlewares.RequireCapability(entity.CapUpdateOrderStatus), authCtrl.Logout)
	r.POST("/force-logout", auth, middlewares.RequireCapability(entity.CapForceLogout), authCtrl.ForceLogout)

	// Orders — create and single read are public (guest checkout)
	r.POST("/orders", orderCtrl.Create)
	r.GET("/orders/:orderId", orderCtrl.Get)
	r.GET("/orders", auth, middlewares.RequireCapability(entity.CapListOrders), orderCtrl.List)
	r.PATCH("/orders/:orderId/status", auth, middlewares.RequireCapability(entity.CapUpdateOrderStatus), orderCtrl.UpdateStatus)
	r.PUT("/orders/:orderId/status", auth, middlewares.RequireCapability(entity.CapUpdateOrderStatus), orderCtrl.UpdateStatus)

	// Catalog
	r.GET("/products", productCtrl.List)
	r.POST("/products", auth, middlewares.RequireCapability(entity.CapManageProducts), productCtrl.Create)

	// Live status feed for POS dashboards
	r.GET("/ws/orders", hub.Handle)
}
