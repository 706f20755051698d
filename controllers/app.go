package controllers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kendall-kelly/inventory-dashboard/models"
	"github.com/kendall-kelly/inventory-dashboard/services"
	"github.com/kendall-kelly/inventory-dashboard/session"
	"github.com/kendall-kelly/inventory-dashboard/utils"
	"github.com/kendall-kelly/inventory-dashboard/viewmodels"
)

// Options configures an App
type Options struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PollInterval   time.Duration
	CurrencySymbol string

	// Inspector validates stored tokens locally; nil disables the check
	Inspector *services.TokenInspector
	// Archive receives dashboard exports; nil disables export
	Archive services.SnapshotArchive

	Log *slog.Logger
}

// App owns the process-wide session and the workspace mounted for it
type App struct {
	session   *session.Session
	store     *session.Store
	auth      *services.AuthService
	orders    *services.OrderClient
	catalog   *services.CatalogClient
	inspector *services.TokenInspector
	archive   services.SnapshotArchive

	pollInterval time.Duration
	currency     string
	log          *slog.Logger

	// lifecycle serializes session changes so that unmount, set, save and
	// mount run as one step and at most one workspace is ever mounted
	lifecycle sync.Mutex

	mu        sync.Mutex
	workspace *viewmodels.Workspace
}

// NewApp wires the session, upstream clients and store together
func NewApp(store *session.Store, opts Options) *App {
	log := opts.Log
	if log == nil {
		log = utils.DiscardLogger()
	}
	currency := opts.CurrencySymbol
	if currency == "" {
		currency = utils.DefaultCurrencySymbol
	}

	sess := session.New()
	client := services.NewClient(opts.APIBaseURL, opts.RequestTimeout, sess, log)

	return &App{
		session:      sess,
		store:        store,
		auth:         services.NewAuthService(client),
		orders:       services.NewOrderClient(client),
		catalog:      services.NewCatalogClient(client),
		inspector:    opts.Inspector,
		archive:      opts.Archive,
		pollInterval: opts.PollInterval,
		currency:     currency,
		log:          log,
	}
}

// Session returns the process-wide session
func (a *App) Session() *session.Session {
	return a.session
}

// Inspector returns the token inspector, or nil
func (a *App) Inspector() *services.TokenInspector {
	return a.inspector
}

// Workspace returns the mounted workspace, if any
func (a *App) Workspace() (*viewmodels.Workspace, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.workspace, a.workspace != nil
}

// Restore reads the durable session and mounts it. A stored token that fails
// inspection is cleared instead.
func (a *App) Restore(ctx context.Context) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	state, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	if !state.Authenticated() {
		a.log.Info("No stored session")
		return nil
	}

	if a.inspector != nil {
		inspected, err := a.inspector.Inspect(ctx, state.Token)
		if err != nil {
			a.log.Warn("Stored session rejected, clearing it", "error", err)
			return a.store.Clear(ctx)
		}
		state = withClaims(state, inspected)
	}

	a.session.Set(state)
	a.log.Info("Session restored", "role", state.Role, "email", state.Email)
	return a.mount(ctx, state.Role)
}

// startSession replaces the current session with state, persists it and mounts it
func (a *App) startSession(ctx context.Context, state session.State) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	a.unmount()

	a.session.Set(state)
	if err := a.store.Save(ctx, state); err != nil {
		return err
	}
	return a.mount(ctx, state.Role)
}

// Logout stops polling, then forgets the session in memory and in storage
func (a *App) Logout(ctx context.Context) error {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	a.unmount()
	a.session.Clear()
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear stored session: %w", err)
	}
	a.log.Info("Logged out")
	return nil
}

// Shutdown unmounts the workspace without touching storage
func (a *App) Shutdown() {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()

	a.unmount()
}

func (a *App) mount(ctx context.Context, role models.Role) error {
	if role == models.RoleUnresolved {
		a.log.Warn("Session role unresolved, order views not mounted")
		return nil
	}

	w, err := viewmodels.Mount(ctx, role, viewmodels.Sources{Orders: a.orders, Catalog: a.catalog}, a.pollInterval, a.log)
	if err != nil {
		return err
	}

	a.mu.Lock()
	replaced := a.workspace
	a.workspace = w
	a.mu.Unlock()

	if replaced != nil {
		replaced.Unmount()
	}
	return nil
}

func (a *App) unmount() {
	a.mu.Lock()
	w := a.workspace
	a.workspace = nil
	a.mu.Unlock()

	if w != nil {
		w.Unmount()
	}
}

// withClaims fills the role and email from token claims when the state lacks them
func withClaims(state session.State, inspected *services.InspectedToken) session.State {
	if state.Role == models.RoleUnresolved {
		state.Role = inspected.Role
	}
	if state.Email == "" {
		state.Email = inspected.Email
	}
	return state
}
