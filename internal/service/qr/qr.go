package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Generator produces pickup-confirmation QR codes for in-transit orders.
// A rider scans the code at the seller to confirm the handoff.
type Generator struct {
	BaseURL string
}

func (g Generator) PickupCode(orderID string) ([]byte, error) {
	data := fmt.Sprintf("%s/api/rider-orders/%s/pickup", g.BaseURL, orderID)
	return qrcode.Encode(data, qrcode.Medium, 256)
}
