package viewmodels

import (
	"context"
	"testing"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMountUnresolvedRole(t *testing.T) {
	repo := newFakeOrderRepo()
	_, err := Mount(context.Background(), models.RoleUnresolved, Sources{Orders: repo, Catalog: &fakeCatalog{}}, time.Hour, utils.DiscardLogger())

	assert.ErrorIs(t, err, ErrRoleUnresolved)
	assert.Equal(t, 0, repo.count("ListAll"))
	assert.Equal(t, 0, repo.count("ListMine"))
}

func TestMountAdminStartsPollingAndUnmountStops(t *testing.T) {
	repo := newFakeOrderRepo()
	w, err := Mount(context.Background(), models.RoleAdmin, Sources{Orders: repo, Catalog: &fakeCatalog{}}, 10*time.Millisecond, utils.DiscardLogger())
	require.NoError(t, err)

	admin, ok := w.Admin()
	require.True(t, ok)
	_, ok = w.Customer()
	assert.False(t, ok)
	assert.NotNil(t, w.Dashboard())
	assert.Equal(t, models.RoleAdmin, w.Role())

	assert.Eventually(t, func() bool { return repo.count("ListAll") >= 3 }, time.Second, 5*time.Millisecond)
	assert.True(t, admin.Polling())

	w.Unmount()
	assert.False(t, admin.Polling())

	after := repo.count("ListAll")
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, after, repo.count("ListAll"))

	w.Unmount()
}

func TestMountCustomerLoadsOwnOrdersAndCatalog(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.mine = []models.Order{orderAt("mine", 1, models.StatusPending, "10")}
	catalog := &fakeCatalog{products: []models.Product{productWithStock("p1", 3), productWithStock("p2", 0)}}

	w, err := Mount(context.Background(), models.RoleCustomer, Sources{Orders: repo, Catalog: catalog}, time.Hour, utils.DiscardLogger())
	require.NoError(t, err)
	defer w.Unmount()

	customer, ok := w.Customer()
	require.True(t, ok)
	assert.Same(t, w.Catalog(), customer.Catalog())
	assert.Nil(t, w.Dashboard())
	assert.Len(t, w.Orders().Orders(), 1)
	assert.Len(t, w.Catalog().Available(), 1)
	assert.Equal(t, 0, repo.count("ListAll"))
}
