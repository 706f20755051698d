package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// OrderClient wraps the order endpoints, including the role-scoped listing
type OrderClient struct {
	client *Client
	orders *Resource[models.Order]
}

// NewOrderClient creates an order accessor on client
func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{
		client: client,
		orders: NewResource[models.Order](client, KindOrders),
	}
}

// ListAll fetches every order (GET /api/orders, admin only on the server)
func (c *OrderClient) ListAll(ctx context.Context) ([]models.Order, error) {
	return c.orders.List(ctx)
}

// ListMine fetches the orders of the authenticated user. Filtering happens on
// the server so customers cannot enumerate other customers' orders.
func (c *OrderClient) ListMine(ctx context.Context) ([]models.Order, error) {
	return c.orders.ListAt(ctx, "my-orders")
}

// Place submits a new order; the server snapshots names and prices and computes the total
func (c *OrderClient) Place(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	return c.orders.Create(ctx, req)
}

// UpdateStatus sets the status of an order
func (c *OrderClient) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	path := KindOrders.Path() + "/" + url.PathEscape(id) + "/status"
	if err := c.client.Do(ctx, http.MethodPut, path, models.StatusUpdateRequest{Status: status}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete removes an order
func (c *OrderClient) Delete(ctx context.Context, id string) error {
	return c.orders.Remove(ctx, id)
}
