package viewmodels

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmptyCollections(t *testing.T) {
	tests := []struct {
		name      string
		orders    []models.Order
		products  []models.Product
		suppliers []models.Supplier
	}{
		{name: "nil"},
		{name: "empty", orders: []models.Order{}, products: []models.Product{}, suppliers: []models.Supplier{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Aggregate(tt.orders, tt.products, tt.suppliers)

			assert.Zero(t, s.ProductCount)
			assert.Zero(t, s.OrderCount)
			assert.Zero(t, s.SupplierCount)
			assert.True(t, s.Revenue.IsZero())
			assert.Zero(t, s.PendingCount)
			assert.Zero(t, s.ShippedCount)
			assert.Zero(t, s.DeliveredCount)
			assert.NotNil(t, s.LowStockProducts)
			assert.Empty(t, s.LowStockProducts)
			assert.NotNil(t, s.RecentOrders)
			assert.Empty(t, s.RecentOrders)
		})
	}
}

func TestAggregate(t *testing.T) {
	orders := []models.Order{
		orderAt("o1", 1, models.StatusPending, "100.50"),
		orderAt("o2", 2, models.StatusShipped, "20"),
		orderAt("o3", 3, models.StatusDelivered, "30.25"),
		orderAt("o4", 4, models.StatusPending, "5"),
		orderAt("o5", 5, models.StatusDelivered, "10"),
		orderAt("o6", 6, models.StatusPending, "4.25"),
	}
	products := []models.Product{
		productWithStock("plenty", 50),
		productWithStock("edge", 10),
		productWithStock("low", 9),
		{ID: "no-stock", Name: "No stock"},
	}
	suppliers := []models.Supplier{{ID: "s1"}, {ID: "s2"}}

	s := Aggregate(orders, products, suppliers)

	assert.Equal(t, 4, s.ProductCount)
	assert.Equal(t, 6, s.OrderCount)
	assert.Equal(t, 2, s.SupplierCount)
	assert.Equal(t, "170", s.Revenue.String())
	assert.Equal(t, 3, s.PendingCount)
	assert.Equal(t, 1, s.ShippedCount)
	assert.Equal(t, 2, s.DeliveredCount)

	lowIDs := []string{}
	for _, p := range s.LowStockProducts {
		lowIDs = append(lowIDs, p.ID)
	}
	assert.Equal(t, []string{"low", "no-stock"}, lowIDs)

	require.Len(t, s.RecentOrders, RecentOrderLimit)
	assert.Equal(t, "o6", s.RecentOrders[0].ID)
	assert.Equal(t, "o2", s.RecentOrders[4].ID)

	// Input order is left alone
	assert.Equal(t, "o1", orders[0].ID)
}

func TestDashboardLoadToleratesFailedCollection(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.all = []models.Order{orderAt("o1", 1, models.StatusPending, "10")}
	catalog := &fakeCatalog{
		products:    []models.Product{productWithStock("p1", 2)},
		suppliers:   []models.Supplier{{ID: "s1"}},
		productsErr: &fakeErr{"products down"},
	}

	view := NewDashboardView(repo, catalog, utils.DiscardLogger())
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	view.now = func() time.Time { return fixed }

	_, ok := view.Latest()
	assert.False(t, ok)

	s, err := view.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.ProductCount)
	assert.Equal(t, 1, s.OrderCount)
	assert.Equal(t, 1, s.SupplierCount)
	assert.Equal(t, fixed, s.GeneratedAt)

	latest, ok := view.Latest()
	assert.True(t, ok)
	assert.Equal(t, s.OrderCount, latest.OrderCount)
}

func TestDashboardLoadCanceled(t *testing.T) {
	view := NewDashboardView(newFakeOrderRepo(), &fakeCatalog{}, utils.DiscardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := view.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboardAgainstFakeAPI(t *testing.T) {
	env := newAPIEnv(t)
	env.api.FailNext(http.MethodGet, "/api/suppliers", http.StatusInternalServerError, "db down")

	view := NewDashboardView(env.adminOrders, env.adminCatalog, utils.DiscardLogger())
	s, err := view.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, s.ProductCount)
	assert.Equal(t, 0, s.SupplierCount)
	assert.Equal(t, 1, env.api.CallCount(http.MethodGet, "/api/products"))
	assert.Equal(t, 1, env.api.CallCount(http.MethodGet, "/api/orders"))
	assert.Equal(t, 1, env.api.CallCount(http.MethodGet, "/api/suppliers"))
}

type fakeErr struct{ msg string }

func (e *fakeErr) Error() string { return e.msg }
