package routes

import (
	"moi-backend/configs"
	"moi-backend/controllers"
	"moi-backend/middlewares"
	"moi-backend/pkg/push"
	"moi-backend/repository"
	"moi-backend/services"
	"moi-backend/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, hub *ws.EventHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	cartStore := repository.NewRedisCartStore(configs.Redis())

	// Services
	gateway := push.NewClient(cfg.PushURL, cfg.PushDryRun)
	notifier := services.NewNotificationService(userRepo, gateway)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(menuRepo)
	cartSvc := services.NewCartService(cartStore, menuRepo, hub)
	orderSvc := services.NewOrderService(db, orderRepo, cartSvc, notifier, hub)
	bookingSvc := services.NewBookingService(bookingRepo, notifier, hub)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	bookingCtrl := controllers.NewBookingController(bookingSvc)
	adminCtrl := controllers.NewAdminController(orderSvc, bookingSvc)

	auth := func(roles ...string) gin.HandlerFunc {
		return middlewares.AuthMiddleware(cfg.JWTSecret, roles...)
	}

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", auth())
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
		aAuth.POST("/push-token", authCtrl.RegisterPushToken)
	}

	// Menu (public)
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)

	// Cart
	cart := r.Group("/cart", auth())
	{
		cart.GET("", cartCtrl.Get)
		cart.DELETE("", cartCtrl.Clear)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id", cartCtrl.SetQuantity)
		cart.POST("/items/:id/increase", cartCtrl.Increase)
		cart.POST("/items/:id/decrease", cartCtrl.Decrease)
		cart.DELETE("/items/:id", cartCtrl.RemoveItem)
	}

	// Orders (user)
	u := r.Group("/", auth())
	{
		u.POST("/orders", orderCtrl.Place)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.DELETE("/orders/:id", orderCtrl.Delete)

		u.POST("/bookings", bookingCtrl.Create)
		u.GET("/bookings", bookingCtrl.ListForMe)
		u.PATCH("/bookings/:id", bookingCtrl.Update)
		u.POST("/bookings/:id/cancel", bookingCtrl.Cancel)
	}

	// Live events
	r.GET("/ws/events", auth(), hub.HandleWebSocket)

	// Admin (admin only)
	admin := r.Group("/admin", auth("admin"))
	{
		admin.GET("/orders", adminCtrl.ListOrders)
		admin.PATCH("/orders/:id/status", adminCtrl.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderCtrl.Delete)

		admin.GET("/bookings", adminCtrl.ListBookings)
		admin.POST("/bookings/:id/confirm", adminCtrl.ConfirmBooking)
		admin.POST("/bookings/:id/complete", adminCtrl.CompleteBooking)

		admin.POST("/menu", menuCtrl.Create)
		admin.PATCH("/menu/:id", menuCtrl.Update)
		admin.DELETE("/menu/:id", menuCtrl.Delete)
	}
}
