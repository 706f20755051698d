package viewmodels

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// LowStockThreshold is the quantity below which a product is flagged
	LowStockThreshold = 10
	// RecentOrderLimit is how many orders the summary lists
	RecentOrderLimit = 5
)

// Summary is the landing view's statistics
type Summary struct {
	ProductCount     int              `json:"productCount"`
	OrderCount       int              `json:"orderCount"`
	SupplierCount    int              `json:"supplierCount"`
	Revenue          decimal.Decimal  `json:"revenue"`
	PendingCount     int              `json:"pendingCount"`
	ShippedCount     int              `json:"shippedCount"`
	DeliveredCount   int              `json:"deliveredCount"`
	LowStockProducts []models.Product `json:"lowStockProducts"`
	RecentOrders     []models.Order   `json:"recentOrders"`
	GeneratedAt      time.Time        `json:"generatedAt"`
}

// Aggregate derives the summary from loaded collections. Any of them may be
// empty; the inputs are not modified.
func Aggregate(orders []models.Order, products []models.Product, suppliers []models.Supplier) Summary {
	s := Summary{
		ProductCount:     len(products),
		OrderCount:       len(orders),
		SupplierCount:    len(suppliers),
		Revenue:          decimal.Zero,
		LowStockProducts: []models.Product{},
		RecentOrders:     []models.Order{},
	}

	for _, o := range orders {
		s.Revenue = s.Revenue.Add(o.TotalAmount)
		switch o.Status {
		case models.StatusPending:
			s.PendingCount++
		case models.StatusShipped:
			s.ShippedCount++
		case models.StatusDelivered:
			s.DeliveredCount++
		}
	}

	for _, p := range products {
		if p.AvailableQuantity() < LowStockThreshold {
			s.LowStockProducts = append(s.LowStockProducts, p)
		}
	}

	recent := make([]models.Order, len(orders))
	copy(recent, orders)
	sortNewestFirst(recent)
	if len(recent) > RecentOrderLimit {
		recent = recent[:RecentOrderLimit]
	}
	s.RecentOrders = append(s.RecentOrders, recent...)

	return s
}

// DashboardView loads the three collections and keeps the latest summary
type DashboardView struct {
	orders  OrderRepository
	catalog CatalogSource
	log     *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	summary *Summary
}

// NewDashboardView creates a dashboard over the admin order scope and the catalog
func NewDashboardView(orders OrderRepository, catalog CatalogSource, log *slog.Logger) *DashboardView {
	return &DashboardView{
		orders:  orders,
		catalog: catalog,
		log:     log.With("view", "dashboard"),
		now:     time.Now,
	}
}

// Load fetches products, orders and suppliers in parallel and aggregates them.
// A collection that fails to load counts as empty, so a summary is always produced
// unless ctx is done.
func (v *DashboardView) Load(ctx context.Context) (Summary, error) {
	var (
		products  []models.Product
		orders    []models.Order
		suppliers []models.Supplier
		g         errgroup.Group
	)

	g.Go(func() error {
		list, err := v.catalog.ListProducts(ctx)
		products = orEmpty(v.log, "products", list, err)
		return nil
	})
	g.Go(func() error {
		list, err := v.orders.ListAll(ctx)
		orders = orEmpty(v.log, "orders", list, err)
		return nil
	})
	g.Go(func() error {
		list, err := v.catalog.ListSuppliers(ctx)
		suppliers = orEmpty(v.log, "suppliers", list, err)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}

	summary := Aggregate(orders, products, suppliers)
	summary.GeneratedAt = v.now()

	v.mu.Lock()
	v.summary = &summary
	v.mu.Unlock()

	return summary, nil
}

// Latest returns the last computed summary, if any
func (v *DashboardView) Latest() (Summary, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.summary == nil {
		return Summary{}, false
	}
	return *v.summary, true
}

// orEmpty logs a failed dashboard collection and treats it as empty
func orEmpty[T any](log *slog.Logger, collection string, list []T, err error) []T {
	if err != nil {
		log.Warn("Dashboard collection failed, using empty list", "collection", collection, "error", err)
		return nil
	}
	return list
}
