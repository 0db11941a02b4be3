package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meatmarket/internal/domain/model"
	"github.com/polkiloo/meatmarket/internal/server/http/handlers"
	"github.com/polkiloo/meatmarket/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	basketHandler := handlers.NewBasketHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	deliveryHandler := handlers.NewDeliveryHandler(facade)
	promoHandler := handlers.NewPromoHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	financeHandler := handlers.NewFinanceHandler(facade)
	chatHandler := handlers.NewChatHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", catalogHandler.Get)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	customer := authed.Group("")
	customer.Use(middleware.RequireRole(model.RoleCustomer))
	customer.GET("/basket", basketHandler.Get)
	customer.POST("/basket/items", basketHandler.AddItem)
	customer.PUT("/basket/items/:id", basketHandler.UpdateItem)
	customer.DELETE("/basket/items/:id", basketHandler.RemoveItem)
	customer.GET("/basket/quote", basketHandler.Quote)
	customer.POST("/orders", orderHandler.Checkout)
	customer.GET("/orders", orderHandler.List)
	customer.GET("/orders/:id", orderHandler.Get)
	customer.POST("/orders/:id/cancel", orderHandler.Cancel)
	customer.GET("/orders/:id/tracking", deliveryHandler.Track)
	customer.GET("/wallet", walletHandler.Balance)
	customer.POST("/wallet/topup", walletHandler.TopUp)
	customer.GET("/wallet/transactions", walletHandler.History)
	customer.GET("/loyalty", walletHandler.Loyalty)
	customer.POST("/loyalty/redeem", walletHandler.Redeem)
	customer.GET("/chat", chatHandler.Conversation)

	chat := authed.Group("/chat")
	chat.Use(middleware.RequireRole(model.RoleCustomer, model.RoleAdmin))
	chat.POST("/:id/messages", chatHandler.SendMessage)
	chat.GET("/:id/messages", chatHandler.Messages)
	chat.GET("/:id/unread", chatHandler.Unread)

	authed.GET("/notifications", chatHandler.Notifications)
	authed.POST("/notifications/:id/read", chatHandler.MarkNotificationRead)

	driver := authed.Group("/driver")
	driver.Use(middleware.RequireRole(model.RoleDriver))
	driver.GET("/deliveries", deliveryHandler.ListMine)
	driver.PATCH("/deliveries/:id/status", deliveryHandler.UpdateStatus)
	driver.POST("/deliveries/:id/location", deliveryHandler.ReportLocation)

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/users", authHandler.RegisterStaff)
	admin.GET("/drivers", authHandler.Drivers)
	admin.POST("/products", catalogHandler.Create)
	admin.PUT("/products/:id", catalogHandler.Update)
	admin.GET("/products/:id/stock", catalogHandler.Stock)
	admin.POST("/products/:id/stock", catalogHandler.AdjustStock)
	admin.GET("/orders", orderHandler.AdminList)
	admin.GET("/orders/:id", orderHandler.AdminGet)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/deliveries", deliveryHandler.Assign)
	admin.GET("/promos", promoHandler.List)
	admin.POST("/promos", promoHandler.Create)
	admin.PUT("/promos/:id", promoHandler.Update)
	admin.GET("/finance/balances", financeHandler.Balances)
	admin.GET("/finance/transactions", financeHandler.Transactions)
	admin.POST("/finance/expenses", financeHandler.AddExpense)
	admin.GET("/finance/expenses", financeHandler.Expenses)
	admin.GET("/finance/reports/pnl", financeHandler.ProfitAndLoss)
	admin.GET("/finance/reports/cashflow", financeHandler.CashFlow)
	admin.GET("/finance/reports/vat", financeHandler.VATReport)
	admin.GET("/chats", chatHandler.OpenConversations)
	admin.POST("/chats/:id/close", chatHandler.Close)

	return engine
}
