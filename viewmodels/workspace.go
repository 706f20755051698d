package viewmodels

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// Sources are the repositories a workspace reads from
type Sources struct {
	Orders  OrderRepository
	Catalog CatalogSource
}

// Workspace is the set of views mounted for one logged-in session. The role
// decides the order view variant once, here. Unmount must be called on logout.
type Workspace struct {
	role      models.Role
	orders    OrderView
	catalog   *CatalogView
	dashboard *DashboardView
	log       *slog.Logger

	unmountOnce sync.Once
}

// Mount builds the views for role and does the initial loads. Admin workspaces
// also start polling the order list every pollInterval. Load failures are kept
// on the views and do not fail the mount.
func Mount(ctx context.Context, role models.Role, src Sources, pollInterval time.Duration, log *slog.Logger) (*Workspace, error) {
	catalog := NewCatalogView(src.Catalog, log)
	orders, err := NewOrderView(role, src.Orders, catalog, log)
	if err != nil {
		return nil, err
	}

	w := &Workspace{
		role:    role,
		orders:  orders,
		catalog: catalog,
		log:     log,
	}

	_ = orders.LoadOrders(ctx)
	_ = catalog.LoadCatalog(ctx)

	if admin, ok := orders.(*AdminOrderView); ok {
		w.dashboard = NewDashboardView(src.Orders, src.Catalog, log)
		admin.StartPolling(pollInterval)
	}

	log.Info("Workspace mounted", "role", role)
	return w, nil
}

// Role returns the role the workspace was mounted for
func (w *Workspace) Role() models.Role {
	return w.role
}

// Orders returns the order view of either variant
func (w *Workspace) Orders() OrderView {
	return w.orders
}

// Catalog returns the catalog view
func (w *Workspace) Catalog() *CatalogView {
	return w.catalog
}

// Admin returns the admin order view; ok is false for customer workspaces
func (w *Workspace) Admin() (view *AdminOrderView, ok bool) {
	view, ok = w.orders.(*AdminOrderView)
	return view, ok
}

// Customer returns the customer order view; ok is false for admin workspaces
func (w *Workspace) Customer() (view *CustomerOrderView, ok bool) {
	view, ok = w.orders.(*CustomerOrderView)
	return view, ok
}

// Dashboard returns the dashboard view; nil for customer workspaces
func (w *Workspace) Dashboard() *DashboardView {
	return w.dashboard
}

// Unmount stops polling. It is safe to call more than once.
func (w *Workspace) Unmount() {
	w.unmountOnce.Do(func() {
		if admin, ok := w.Admin(); ok {
			admin.StopPolling()
		}
		w.log.Info("Workspace unmounted", "role", w.role)
	})
}
