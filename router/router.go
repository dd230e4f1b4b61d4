package router

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/alessioferri/trattoria-app/config"
	"github.com/alessioferri/trattoria-app/controllers"
	"github.com/alessioferri/trattoria-app/middlewares"
	"github.com/alessioferri/trattoria-app/repository"
	"github.com/alessioferri/trattoria-app/services"
)

// SetupRouter wires repositories, services and controllers and registers
// every route.
func SetupRouter(db *gorm.DB, mdb *mongo.Database, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.IdentityMiddleware())

	// Uploaded menu images are served straight from disk.
	r.Static("/uploads/menu_images", cfg.UploadDir)

	translateSvc := services.NewTranslateService(
		repository.NewTranslationRepo(mdb),
		services.NewGoogleTranslator(cfg.TranslateEndpoint, cfg.TranslateAPIKey),
	)
	catalogSvc := services.NewCatalogService(repository.NewMenuRepo(mdb), translateSvc)
	cartSvc := services.NewCartService(repository.NewCartRepo(mdb), catalogSvc)
	notifySvc := services.NewNotifyService(cfg.OrderConfirmationURL)
	checkoutSvc := services.NewCheckoutService(db, cartSvc, notifySvc, cfg.Currency)
	adminSvc := services.NewAdminService(db)
	imageSvc := services.NewImageService(
		repository.NewImageRepo(mdb),
		services.NewDiskStore(cfg.UploadDir, "/uploads/menu_images"),
	)

	authCtrl := controllers.NewAuthController(db)
	menuCtrl := controllers.NewMenuController(catalogSvc, translateSvc, cfg)
	cartCtrl := controllers.NewCartController(cartSvc, checkoutSvc)
	orderCtrl := controllers.NewOrderController(db)
	adminCtrl := controllers.NewAdminController(adminSvc, imageSvc, notifySvc)

	r.GET("/api/status", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "API online"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	api := r.Group("/api")
	{
		api.GET("/menu", menuCtrl.GetMenu)
		api.POST("/translate", menuCtrl.TranslateText)

		api.GET("/cart", cartCtrl.GetCart)
		api.POST("/cart/items", cartCtrl.AddItem)
		api.PATCH("/cart/items/:line_id", cartCtrl.UpdateLine)
		api.DELETE("/cart/items/:line_id", cartCtrl.RemoveLine)
		api.POST("/cart/clear", cartCtrl.ClearCart)

		authed := api.Group("/")
		authed.Use(middlewares.AuthRequired())
		{
			authed.POST("/cart/checkout", cartCtrl.CheckoutCart)
			authed.GET("/orders", orderCtrl.GetMyOrders)
			authed.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		}
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AdminRequired())
	{
		admin.GET("/orders", adminCtrl.GetOrders)
		admin.GET("/orders/:order_id", adminCtrl.GetOrderByID)
		admin.PATCH("/orders/:order_id/status", adminCtrl.UpdateOrderStatus)
		admin.POST("/orders/:order_id/notify", adminCtrl.ResendConfirmation)

		admin.GET("/images", adminCtrl.GetImageLibrary)
		admin.POST("/images", adminCtrl.UploadImage)
		admin.POST("/images/:image_id/hide", adminCtrl.HideImage)
		admin.DELETE("/images/:image_id", adminCtrl.DeleteImage)
		admin.POST("/homepage-slots", adminCtrl.SetHomepageSlots)
	}

	return r
}
