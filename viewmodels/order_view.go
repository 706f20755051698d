package viewmodels

import (
	"context"
	"log/slog"
	"sort"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// OrderRepository is the order capability shared by both view variants.
// services.OrderClient implements it.
type OrderRepository interface {
	ListAll(ctx context.Context) ([]models.Order, error)
	ListMine(ctx context.Context) ([]models.Order, error)
	Place(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
	Delete(ctx context.Context, id string) error
}

// OrderView is the read side common to AdminOrderView and CustomerOrderView
type OrderView interface {
	Role() models.Role
	LoadOrders(ctx context.Context) error
	Orders() []models.Order
	Loading() bool
	LastError() error
}

// NewOrderView picks the view variant for role. The catalog is only used by the
// customer variant.
func NewOrderView(role models.Role, repo OrderRepository, catalog *CatalogView, log *slog.Logger) (OrderView, error) {
	switch role {
	case models.RoleAdmin:
		return NewAdminOrderView(repo, log), nil
	case models.RoleCustomer:
		return NewCustomerOrderView(repo, catalog, log), nil
	default:
		return nil, ErrRoleUnresolved
	}
}

// orderList is the state both variants share: the sorted list, its staleness
// guard and the role-scoped fetch.
type orderList struct {
	role  models.Role
	fetch func(ctx context.Context) ([]models.Order, error)
	log   *slog.Logger
	list  snapshot[models.Order]
}

// Role returns the role this view was built for
func (l *orderList) Role() models.Role {
	return l.role
}

// LoadOrders fetches the role-scoped order list and replaces the current one,
// newest first. A response older than the one already shown is dropped.
func (l *orderList) LoadOrders(ctx context.Context) error {
	seq := l.list.begin()

	orders, err := l.fetch(ctx)
	if err == nil {
		sortNewestFirst(orders)
	}

	if !l.list.finish(seq, orders, err) && err == nil {
		l.log.Debug("Discarded stale order list", "seq", seq)
	}
	if err != nil {
		l.log.Warn("Failed to load orders", "role", l.role, "error", err)
	}
	return err
}

// Orders returns a copy of the current list
func (l *orderList) Orders() []models.Order {
	return l.list.get()
}

// Loading reports whether any load is outstanding
func (l *orderList) Loading() bool {
	return l.list.loading()
}

// LastError returns the failure of the latest load or mutation, nil after a successful load
func (l *orderList) LastError() error {
	return l.list.err()
}

// sortNewestFirst orders by CreatedAt descending; equal timestamps keep arrival order
func sortNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
