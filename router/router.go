package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-pos/controllers"
	"github.com/yeremiapane/restaurant-pos/kds"
	"github.com/yeremiapane/restaurant-pos/middlewares"
	"github.com/yeremiapane/restaurant-pos/services"
)

type Deps struct {
	DB             *gorm.DB
	Floor          *services.FloorService
	Hub            *kds.Hub
	CurrencySymbol string
	AllowedOrigin  string
	RateLimiter    *middlewares.RateLimiter
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(d.AllowedOrigin))
	if d.RateLimiter != nil {
		r.Use(d.RateLimiter.RateLimit())
	}

	userCtrl := controllers.NewUserController(d.DB)
	tableCtrl := controllers.NewTableController(d.Floor)
	orderCtrl := controllers.NewOrderController(d.Floor)
	customerCtrl := controllers.NewCustomerController(d.Floor)
	menuCtrl := controllers.NewMenuController(d.Floor)
	paymentCtrl := controllers.NewPaymentController(d.Floor)
	receiptCtrl := controllers.NewReceiptController(d.Floor, d.CurrencySymbol)
	cleanLogCtrl := controllers.NewCleaningLogController(d.Floor)
	adminCtrl := controllers.NewAdminController(d.Floor)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.POST("/login", middlewares.NewStrictRateLimiter(), userCtrl.Login)

	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/categories", menuCtrl.GetAllCategories)
	r.GET("/modifier-groups", menuCtrl.GetModifierGroups)
	r.GET("/tables", tableCtrl.GetAllTables)

	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), controllers.FloorSocketHandler(d.Hub))

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/users", userCtrl.GetAllUsers)
	auth.POST("/users", middlewares.RequireRoles("admin"), userCtrl.Register)

	// TABLES
	auth.GET("/tables", tableCtrl.GetAllTables)
	auth.GET("/tables/:table_id", tableCtrl.GetTableByID)
	auth.PATCH("/tables/:table_id/position", tableCtrl.UpdateTablePosition)
	auth.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
	auth.POST("/tables/:table_id/items", tableCtrl.AddItem)
	auth.PATCH("/tables/:table_id/items/:item_id", tableCtrl.UpdateItem)
	auth.DELETE("/tables/:table_id/items", tableCtrl.ClearCart)
	auth.PATCH("/tables/:table_id/clean", middlewares.RequireRoles("cleaner", "staff"), tableCtrl.MarkTableClean)

	// GLOBAL CART (takeaway)
	auth.GET("/cart", orderCtrl.GetCart)
	auth.POST("/cart/items", orderCtrl.AddCartItem)
	auth.PATCH("/cart/items/:item_id", orderCtrl.UpdateCartItem)
	auth.DELETE("/cart", orderCtrl.ClearCart)

	// CUSTOMERS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.POST("/customers", customerCtrl.CreateCustomer)
	auth.GET("/customers/search", customerCtrl.SearchByPhone)
	auth.GET("/customers/:customer_id", customerCtrl.GetCustomerByID)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.POST("/orders/:order_id/void", middlewares.RequireRoles("staff"), orderCtrl.VoidOrder)

	// PAYMENT FLOW
	pay := auth.Group("/payment")
	pay.Use(middlewares.RequireRoles("staff"), middlewares.PaymentRateLimiter(), middlewares.LogPaymentRequest())
	{
		pay.GET("", paymentCtrl.GetPaymentState)
		pay.POST("/table", paymentCtrl.SetActiveTable)
		pay.DELETE("/table", paymentCtrl.ClearActiveTable)
		pay.POST("/checkout", paymentCtrl.BeginCheckout)
		pay.POST("/customer", paymentCtrl.AttachCustomer)
		pay.POST("/method", paymentCtrl.SelectMethod)
		pay.POST("/process", paymentCtrl.Process)
		pay.POST("/complete", paymentCtrl.Complete)
		pay.POST("/cancel", paymentCtrl.Cancel)
	}
	auth.GET("/payments", paymentCtrl.GetAllPayments)

	// RECEIPTS
	receipts := auth.Group("/receipts")
	receipts.Use(middlewares.ReceiptLoggerMiddleware())
	{
		receipts.GET("/:receipt_id", receiptCtrl.GetReceiptByID)
		receipts.GET("/:receipt_id/pdf", receiptCtrl.GetReceiptPDF)
	}

	auth.GET("/cleaning-logs", cleanLogCtrl.GetAllCleaningLogs)

	auth.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	auth.GET("/dashboard/sales-by-method", middlewares.RequireRoles("staff"), adminCtrl.GetSalesByMethod)

	return r
}
