package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RiderOrders lists every in-transit order with buyer and seller contact
// detail, for riders choosing a pickup.
func (h *OrderHandler) RiderOrders(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	views, err := h.Svc.ActiveDeliveries(ctx)
	if err != nil {
		if statusFor(err) == http.StatusGatewayTimeout {
			return c.JSON(http.StatusGatewayTimeout, echo.Map{"success": false, "message": "Request timed out"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": views})
}

// RiderCompleteOrder is the delivery transition. riderId is taken from the
// body as-is, absent included, matching the original wire contract.
func (h *OrderHandler) RiderCompleteOrder(c echo.Context) error {
	orderID := c.Param("orderId")

	var req struct {
		RiderID string `json:"riderId"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid request body"})
	}

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	if err := h.Svc.DeliverOrder(ctx, orderID, req.RiderID); err != nil {
		switch status := statusFor(err); status {
		case http.StatusNotFound:
			return c.JSON(status, echo.Map{"success": false, "message": "Order not found"})
		case http.StatusGatewayTimeout:
			return c.JSON(status, echo.Map{"success": false, "message": "Request timed out"})
		default:
			return c.JSON(status, echo.Map{"success": false, "message": "Internal server error"})
		}
	}

	h.publish(c, orderID, map[string]any{
		"type":    "order_delivered",
		"orderID": orderID,
		"riderID": req.RiderID,
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Order marked as complete"})
}

// RiderCompletedOrders lists the deliveries attributed to one rider.
func (h *OrderHandler) RiderCompletedOrders(c echo.Context) error {
	riderID := c.Param("riderId")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	views, err := h.Svc.RiderDeliveries(ctx, riderID)
	if err != nil {
		if statusFor(err) == http.StatusGatewayTimeout {
			return c.JSON(http.StatusGatewayTimeout, echo.Map{"success": false, "message": "Request timed out"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": views})
}

// PickupQRCode renders a PNG the rider shows at the seller to confirm the
// handoff of an in-transit order.
func (h *OrderHandler) PickupQRCode(c echo.Context) error {
	orderID := c.Param("orderId")

	ctx, cancel := withTimeout(c, h.Timeout)
	defer cancel()

	made, err := h.Svc.MadeOrder(ctx, orderID)
	if err != nil {
		switch status := statusFor(err); status {
		case http.StatusNotFound:
			return c.JSON(status, echo.Map{"success": false, "message": "Order not found"})
		case http.StatusGatewayTimeout:
			return c.JSON(status, echo.Map{"success": false, "message": "Request timed out"})
		default:
			return c.JSON(status, echo.Map{"success": false, "message": "Internal server error"})
		}
	}

	png, err := h.QR.PickupCode(made.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
