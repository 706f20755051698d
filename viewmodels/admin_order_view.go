package viewmodels

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
)

// DefaultPollInterval is the admin order list refresh cadence
const DefaultPollInterval = 5 * time.Second

// Confirm is asked before an irreversible action; only true lets it proceed
type Confirm func(ctx context.Context, orderID string) bool

// AdminOrderView shows every order and can change or delete them
type AdminOrderView struct {
	orderList
	repo OrderRepository

	pollMu sync.Mutex
	poll   *PollHandle
}

// NewAdminOrderView creates the admin variant
func NewAdminOrderView(repo OrderRepository, log *slog.Logger) *AdminOrderView {
	return &AdminOrderView{
		orderList: orderList{
			role:  models.RoleAdmin,
			fetch: repo.ListAll,
			log:   log.With("view", "admin_orders"),
		},
		repo: repo,
	}
}

// UpdateStatus sets the status of an order and reloads the whole list.
// Any of the three statuses may be set; transition order is the server's concern.
// Once the server accepts the change the call succeeds; a failed reload is left
// in LastError.
func (v *AdminOrderView) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return &InvalidStatusError{Status: string(status)}
	}

	if _, err := v.repo.UpdateStatus(ctx, orderID, status); err != nil {
		v.list.fail(err)
		v.log.Warn("Failed to update order status", "order_id", orderID, "status", status, "error", err)
		return err
	}

	v.log.Info("Order status updated", "order_id", orderID, "status", status)
	v.reload(ctx, "status update")
	return nil
}

// DeleteOrder asks confirm first and sends the delete only on a yes.
// A nil confirm counts as a no. As with UpdateStatus, a failed reload after an
// accepted delete is left in LastError.
func (v *AdminOrderView) DeleteOrder(ctx context.Context, orderID string, confirm Confirm) error {
	if confirm == nil || !confirm(ctx, orderID) {
		return ErrConfirmationDeclined
	}

	if err := v.repo.Delete(ctx, orderID); err != nil {
		v.list.fail(err)
		v.log.Warn("Failed to delete order", "order_id", orderID, "error", err)
		return err
	}

	v.log.Info("Order deleted", "order_id", orderID)
	v.reload(ctx, "delete")
	return nil
}

func (v *AdminOrderView) reload(ctx context.Context, after string) {
	if err := v.LoadOrders(ctx); err != nil {
		v.log.Warn("Failed to reload orders", "after", after, "error", err)
	}
}

// StartPolling reloads the order list every interval until the returned handle is
// stopped. A poll already running on this view is stopped first.
func (v *AdminOrderView) StartPolling(interval time.Duration) *PollHandle {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	v.pollMu.Lock()
	defer v.pollMu.Unlock()

	if v.poll != nil {
		v.poll.Stop()
	}
	v.poll = startPolling(interval, func(ctx context.Context) {
		_ = v.LoadOrders(ctx)
	})
	v.log.Debug("Order polling started", "interval", interval)
	return v.poll
}

// StopPolling stops the active poll, if any
func (v *AdminOrderView) StopPolling() {
	v.pollMu.Lock()
	defer v.pollMu.Unlock()

	if v.poll != nil {
		v.poll.Stop()
		v.poll = nil
		v.log.Debug("Order polling stopped")
	}
}

// Polling reports whether a poll is active
func (v *AdminOrderView) Polling() bool {
	v.pollMu.Lock()
	defer v.pollMu.Unlock()
	return v.poll != nil && !v.poll.Stopped()
}
