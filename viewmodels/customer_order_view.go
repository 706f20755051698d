package viewmodels

import (
	"context"
	"log/slog"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// CustomerOrderView shows the session's own orders and places new ones
type CustomerOrderView struct {
	orderList
	repo    OrderRepository
	catalog *CatalogView
}

// NewCustomerOrderView creates the customer variant. catalog backs the stock check
// done before an order is sent.
func NewCustomerOrderView(repo OrderRepository, catalog *CatalogView, log *slog.Logger) *CustomerOrderView {
	return &CustomerOrderView{
		orderList: orderList{
			role:  models.RoleCustomer,
			fetch: repo.ListMine,
			log:   log.With("view", "customer_orders"),
		},
		repo:    repo,
		catalog: catalog,
	}
}

// Catalog returns the catalog used for placement
func (v *CustomerOrderView) Catalog() *CatalogView {
	return v.catalog
}

// PlaceOrder checks the request against the loaded catalog, then submits it.
// Local check failures send nothing. On success both the order list and the
// catalog are reloaded; a server rejection is returned as-is and changes nothing.
func (v *CustomerOrderView) PlaceOrder(ctx context.Context, productID string, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, &InvalidQuantityError{Quantity: quantity}
	}
	available, ok := v.catalog.AvailableQuantity(productID)
	if !ok {
		return nil, &UnknownProductError{ProductID: productID}
	}
	if quantity > available {
		return nil, &InsufficientStockError{ProductID: productID, Available: available, Requested: quantity}
	}

	order, err := v.repo.Place(ctx, models.PlaceOrderRequest{
		Items: []models.PlaceOrderItem{{ProductID: productID, Quantity: quantity}},
	})
	if err != nil {
		v.list.fail(err)
		v.log.Warn("Failed to place order", "product_id", productID, "quantity", quantity, "error", err)
		return nil, err
	}

	v.log.Info("Order placed", "order_id", order.ID, "total", order.TotalAmount.String())

	// Reload failures are recorded on each view; the order itself went through
	_ = v.LoadOrders(ctx)
	_ = v.catalog.LoadCatalog(ctx)

	return order, nil
}
