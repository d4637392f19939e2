package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mkhaliddev/foodrush/internal/service/lifecycle"
)

// CreateOrder receives a buyer's purchase request. Validation happens before
// any store write; the stored record, id included, is echoed back.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req lifecycle.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "All fields are required"})
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		switch status := statusFor(err); status {
		case http.StatusBadRequest:
			return c.JSON(status, echo.Map{"error": "All fields are required"})
		case http.StatusGatewayTimeout:
			return c.JSON(status, echo.Map{"error": "Request timed out"})
		default:
			return c.JSON(status, echo.Map{"error": "Internal server error"})
		}
	}

	h.publish(c, order.ID, map[string]any{
		"type":     "order_created",
		"orderID":  order.ID,
		"sellerID": order.SellerID,
		"buyerID":  order.BuyerID,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Order created successfully",
		"order":   order,
	})
}

// CustomerOrders returns the buyer's records from each lifecycle stage as
// three separate lists; the in-transit list keeps its historical
// "madeOrders" name on the wire.
func (h *OrderHandler) CustomerOrders(c echo.Context) error {
	buyerID := c.Param("buyerId")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	orders, made, completed, err := h.Svc.BuyerOrders(ctx, buyerID)
	if err != nil {
		if statusFor(err) == http.StatusGatewayTimeout {
			return c.JSON(http.StatusGatewayTimeout, echo.Map{"message": "Request timed out"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server Error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"orders":          orders,
		"madeOrders":      made,
		"completedOrders": completed,
	})
}
