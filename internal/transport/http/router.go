package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/mkhaliddev/foodrush/internal/handlers"
)

type Deps struct {
	DB            *gorm.DB
	AuthHandler   *handlers.AuthHandler
	FoodHandler   *handlers.FoodHandler
	OrderHandler  *handlers.OrderHandler
	SearchHandler *handlers.SearchHandler
	UploadDir     string
}

// Register wires the route table. Paths mirror the original client contract,
// including the POST seller-orders lookup and the "complete" patch verbs.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "Healthy") })

	e.Static("/uploads", d.UploadDir)

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)
	api.POST("/refresh", d.AuthHandler.Refresh)
	api.POST("/logout", d.AuthHandler.Logout)

	api.POST("/add-food", d.FoodHandler.AddFood)
	api.GET("/seller-foods/:sellerId", d.FoodHandler.SellerFoods)
	api.GET("/food/:foodid", d.FoodHandler.GetFood)
	api.PUT("/update-food/:foodid", d.FoodHandler.UpdateFood)
	api.DELETE("/delete-food/:id", d.FoodHandler.DeleteFood)
	api.GET("/get-foods", d.FoodHandler.GetFoods)
	api.GET("/search-foods", d.SearchHandler.Search)

	api.POST("/orders", d.OrderHandler.CreateOrder)
	api.PATCH("/orders/:orderId/complete", d.OrderHandler.CompleteOrder)
	api.POST("/seller-orders", d.OrderHandler.SellerOrders)
	api.GET("/seller-completed-orders/:sellerId", d.OrderHandler.SellerCompletedOrders)
	api.GET("/customer-orders/:buyerId", d.OrderHandler.CustomerOrders)

	api.GET("/rider-orders", d.OrderHandler.RiderOrders)
	api.PATCH("/rider-orders/:orderId/complete", d.OrderHandler.RiderCompleteOrder)
	api.GET("/rider-orders/:orderId/qrcode", d.OrderHandler.PickupQRCode)
	api.GET("/rider-orders/:riderId", d.OrderHandler.RiderCompletedOrders)
}
