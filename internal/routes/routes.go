package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/franciscosanchezn/gin-momo-api/internal/auth"
	"github.com/franciscosanchezn/gin-momo-api/internal/controllers"
	"github.com/franciscosanchezn/gin-momo-api/internal/middleware"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Auth          *controllers.AuthController
	Menu          controllers.MenuController
	Cart          *controllers.CartController
	Order         *controllers.OrderController
	Notification  *controllers.NotificationController
	User          *controllers.UserController
	Client        *controllers.ClientController
	OAuth         *auth.OAuthService
	Sessions      *auth.SessionManager
	Users         middleware.UserResolver
	EnableSwagger bool
}

// SetupRoutes registers the API under /api. Identity is resolved once for
// every request, then each group states what it requires.
func SetupRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")
	api.Use(middleware.Authenticate(h.Sessions, h.Users, h.OAuth.Tokens()))

	api.GET("/health", healthCheckHandler)

	authApi := api.Group("/auth")
	{
		authApi.POST("/signup", h.Auth.SignUp)
		authApi.POST("/signin", h.Auth.SignIn)
		authApi.POST("/signout", h.Auth.SignOut)
		authApi.GET("/me", middleware.RequireAuth(), h.Auth.Me)
		authApi.POST("/forgot-password", h.Auth.ForgotPassword)
		authApi.POST("/reset-password", h.Auth.ResetPassword)
	}

	menu := api.Group("/menu")
	{
		menu.GET("", h.Menu.ListMenu)
		menu.GET("/:id", h.Menu.GetMenuItem)

		admin := menu.Group("", middleware.RequireAdmin())
		admin.POST("", h.Menu.CreateMenuItem)
		admin.PUT("/:id", h.Menu.UpdateMenuItem)
		admin.DELETE("/:id", h.Menu.DeleteMenuItem)
	}

	cart := api.Group("/cart", middleware.RequireAuth())
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddItem)
		cart.PUT("/items/:menuItemId", h.Cart.UpdateItem)
		cart.DELETE("/items/:menuItemId", h.Cart.RemoveItem)
	}

	orders := api.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", h.Order.PlaceOrder)
		orders.GET("", h.Order.ListOrders)
		orders.GET("/:id", h.Order.GetOrder)
		orders.GET("/:id/history", h.Order.GetHistory)
		orders.PUT("/:id/status", middleware.RequireAdmin(), h.Order.UpdateStatus)
	}

	notifications := api.Group("/notifications", middleware.RequireAuth())
	{
		notifications.GET("", h.Notification.ListNotifications)
		notifications.GET("/unread-count", h.Notification.UnreadCount)
		notifications.PUT("/read-all", h.Notification.MarkAllRead)
		notifications.PUT("/:id/read", h.Notification.MarkRead)
		notifications.DELETE("/:id", h.Notification.DeleteNotification)
		notifications.POST("", middleware.RequireAdmin(), h.Notification.Broadcast)
	}

	users := api.Group("/users", middleware.RequireAdmin())
	{
		users.GET("", h.User.ListUsers)
		users.GET("/:id", h.User.GetUser)
	}

	api.POST("/oauth/token", h.OAuth.HandleToken)

	clients := api.Group("/clients", middleware.RequireAdmin())
	{
		clients.POST("", h.Client.CreateClient)
		clients.GET("", h.Client.ListClients)
		clients.DELETE("/:id", h.Client.DeleteClient)
	}

	if h.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-momo-api",
	})
}
