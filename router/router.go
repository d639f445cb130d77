package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mealshop/config"
	"mealshop/controllers"
	"mealshop/middlewares"
	"mealshop/models"
	"mealshop/services"
)

// SetupRouter wires every route of the meal shop. Ordering and profile
// routes require authentication; each administrative route is gated on its
// own permission flag.
func SetupRouter(db *gorm.DB, cfg *config.Config, reminders *services.ReminderService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db, cfg, reminders)
	optionCtrl := controllers.NewMenuOptionController(db)
	orderCtrl := controllers.NewOrderController(db, cfg)

	// Public routes
	r.GET("/", menuCtrl.Index)
	r.GET("/menu/:uuid", menuCtrl.ShowMenu)

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Authenticated routes
	auth := r.Group("/")
	auth.Use(middlewares.AuthRequired())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		// Employee ordering workflow
		auth.GET("/menus/:menu_id/choose_menu", orderCtrl.ChooseMenu)
		auth.POST("/menus/:menu_id/add_order", orderCtrl.AddOrder)
		auth.POST("/orders/:order_id/add_order_customizations", orderCtrl.AddOrderCustomizations)

		// Administration, one permission flag per route
		auth.GET("/view_orders", middlewares.RequirePermission(models.PermViewOrder), orderCtrl.ViewOrders)

		auth.GET("/create_menu", middlewares.RequirePermission(models.PermAddMenu), menuCtrl.CreateMenu)
		auth.POST("/add_menu", middlewares.RequirePermission(models.PermAddMenu), menuCtrl.AddMenu)
		auth.GET("/daily_menu", middlewares.RequirePermission(models.PermAddMenu), menuCtrl.DailyMenu)
		auth.GET("/menus/:menu_id/create_reminder", middlewares.RequirePermission(models.PermAddMenu), menuCtrl.CreateReminder)
		auth.GET("/menus/:menu_id/update_daily_menu", middlewares.RequirePermission(models.PermChangeMenu), menuCtrl.UpdateDailyMenu)

		auth.GET("/menu_options", middlewares.RequirePermission(models.PermAddMenuOption), optionCtrl.ListMenuOptions)
		auth.POST("/add_menu_option", middlewares.RequirePermission(models.PermAddMenuOption), optionCtrl.AddMenuOption)
		auth.GET("/menu_options/:menu_option_id", middlewares.RequirePermission(models.PermChangeMenuOption), optionCtrl.GetMenuOption)
		auth.POST("/menu_options/:menu_option_id/add_customization", middlewares.RequirePermission(models.PermChangeMenuOption), optionCtrl.AddCustomization)
	}

	return r
}
