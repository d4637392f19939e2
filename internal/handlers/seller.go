package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SellerOrders lists a seller's pending orders. The seller id arrives in the
// body, a quirk of the original client kept for compatibility.
func (h *OrderHandler) SellerOrders(c echo.Context) error {
	var req struct {
		SellerID string `json:"sellerId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Seller ID is required"})
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	orders, err := h.Svc.SellerOrders(ctx, req.SellerID)
	if err != nil {
		switch status := statusFor(err); status {
		case http.StatusBadRequest:
			return c.JSON(status, echo.Map{"error": "Seller ID is required"})
		case http.StatusGatewayTimeout:
			return c.JSON(status, echo.Map{"error": "Request timed out"})
		default:
			return c.JSON(status, echo.Map{"error": "Internal server error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"orders": orders})
}

// CompleteOrder is the seller fulfillment endpoint: the pending order moves
// to the in-transit store. Acknowledgment only, no echoed record.
func (h *OrderHandler) CompleteOrder(c echo.Context) error {
	orderID := c.Param("orderId")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	if err := h.Svc.CompleteOrder(ctx, orderID); err != nil {
		switch status := statusFor(err); status {
		case http.StatusNotFound:
			return c.JSON(status, echo.Map{"message": "Order not found"})
		case http.StatusGatewayTimeout:
			return c.JSON(status, echo.Map{"message": "Request timed out"})
		default:
			return c.JSON(status, echo.Map{"message": "Internal Server Error"})
		}
	}

	h.publish(c, orderID, map[string]any{
		"type":    "order_fulfilled",
		"orderID": orderID,
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "Order completed successfully"})
}

func (h *OrderHandler) SellerCompletedOrders(c echo.Context) error {
	sellerID := c.Param("sellerId")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	completed, err := h.Svc.SellerCompletedOrders(ctx, sellerID)
	if err != nil {
		if statusFor(err) == http.StatusGatewayTimeout {
			return c.JSON(http.StatusGatewayTimeout, echo.Map{"message": "Request timed out"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server Error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"completedOrders": completed})
}
