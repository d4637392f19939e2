package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mkhaliddev/foodrush/internal/mykafka"
	"github.com/mkhaliddev/foodrush/internal/service/lifecycle"
	"github.com/mkhaliddev/foodrush/internal/service/qr"
)

// OrderHandler exposes the order lifecycle over HTTP. All state decisions
// live in the lifecycle service; handlers bind, call and map errors.
type OrderHandler struct {
	Svc      *lifecycle.Service
	Producer *mykafka.Producer
	QR       qr.Generator
	Timeout  time.Duration
}

func (h *OrderHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}
