package catalog

import (
	"context"
	"fmt"

	"ghorerbazar.top/organic/storefront/pkg/models"
)

func (c *Client) CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.post(ctx, "/api/orders/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus patches only the status field of an existing order.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status string) error {
	body := map[string]string{"status": status}
	return c.patch(ctx, fmt.Sprintf("/api/orders/%d/", orderID), body, nil)
}

func (c *Client) CreatePayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.post(ctx, "/api/payments/", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// VerifyPayment forwards a verification payload; the storefront itself never
// verifies transactions, that is the API's job.
func (c *Client) VerifyPayment(ctx context.Context, paymentID int, payload map[string]interface{}) error {
	return c.patch(ctx, fmt.Sprintf("/api/payments/%d/verify/", paymentID), payload, nil)
}
