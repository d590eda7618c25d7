package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                 []OnInit
	onShutdown             []OnShutdown
	onOwnerRegistered      []OnOwnerRegistered
	onTransferRecorded     []OnTransferRecorded
	onCompensationTransfer []OnCompensationTransfer
	onStatementBuilt       []OnStatementBuilt
	onPlanCreated          []OnPlanCreated
	onCooperationChanged   []OnCooperationChanged
	onPriceCalculated      []OnPriceCalculated
	pricingStrategies      map[string]PricingStrategy
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:            slog.Default(),
		pricingStrategies: make(map[string]PricingStrategy),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnOwnerRegistered); ok {
		r.onOwnerRegistered = append(r.onOwnerRegistered, v)
	}
	if v, ok := p.(OnTransferRecorded); ok {
		r.onTransferRecorded = append(r.onTransferRecorded, v)
	}
	if v, ok := p.(OnCompensationTransfer); ok {
		r.onCompensationTransfer = append(r.onCompensationTransfer, v)
	}
	if v, ok := p.(OnStatementBuilt); ok {
		r.onStatementBuilt = append(r.onStatementBuilt, v)
	}
	if v, ok := p.(OnPlanCreated); ok {
		r.onPlanCreated = append(r.onPlanCreated, v)
	}
	if v, ok := p.(OnCooperationChanged); ok {
		r.onCooperationChanged = append(r.onCooperationChanged, v)
	}
	if v, ok := p.(OnPriceCalculated); ok {
		r.onPriceCalculated = append(r.onPriceCalculated, v)
	}
	if v, ok := p.(PricingStrategy); ok {
		r.pricingStrategies[v.StrategyName()] = v
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnOwnerRegistered)(nil)).Elem(), "OnOwnerRegistered")
	checkInterface(reflect.TypeOf((*OnTransferRecorded)(nil)).Elem(), "OnTransferRecorded")
	checkInterface(reflect.TypeOf((*OnCompensationTransfer)(nil)).Elem(), "OnCompensationTransfer")
	checkInterface(reflect.TypeOf((*OnStatementBuilt)(nil)).Elem(), "OnStatementBuilt")
	checkInterface(reflect.TypeOf((*OnPlanCreated)(nil)).Elem(), "OnPlanCreated")
	checkInterface(reflect.TypeOf((*OnCooperationChanged)(nil)).Elem(), "OnCooperationChanged")
	checkInterface(reflect.TypeOf((*OnPriceCalculated)(nil)).Elem(), "OnPriceCalculated")
	checkInterface(reflect.TypeOf((*PricingStrategy)(nil)).Elem(), "PricingStrategy")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitOwnerRegistered emits an owner registered event.
func (r *Registry) EmitOwnerRegistered(ctx context.Context, o *account.Owner) {
	r.mu.RLock()
	plugins := r.onOwnerRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnOwnerRegistered(ctx, o)
		}); err != nil {
			r.logger.Warn("plugin OnOwnerRegistered failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransferRecorded emits a transfer recorded event.
func (r *Registry) EmitTransferRecorded(ctx context.Context, t *transfer.Transfer) {
	r.mu.RLock()
	plugins := r.onTransferRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransferRecorded(ctx, t)
		}); err != nil {
			r.logger.Warn("plugin OnTransferRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitCompensationTransfer emits a compensation transfer event.
func (r *Registry) EmitCompensationTransfer(ctx context.Context, t *transfer.Transfer) {
	r.mu.RLock()
	plugins := r.onCompensationTransfer
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCompensationTransfer(ctx, t)
		}); err != nil {
			r.logger.Warn("plugin OnCompensationTransfer failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitStatementBuilt emits a statement built event.
func (r *Registry) EmitStatementBuilt(ctx context.Context, accountID id.AccountID, rows int) {
	r.mu.RLock()
	plugins := r.onStatementBuilt
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnStatementBuilt(ctx, accountID, rows)
		}); err != nil {
			r.logger.Warn("plugin OnStatementBuilt failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPlanCreated emits a plan created event.
func (r *Registry) EmitPlanCreated(ctx context.Context, p *plan.Plan) {
	r.mu.RLock()
	plugins := r.onPlanCreated
	r.mu.RUnlock()

	for _, pl := range plugins {
		if err := r.callWithTimeout(ctx, pl.Name(), func() error {
			return pl.OnPlanCreated(ctx, p)
		}); err != nil {
			r.logger.Warn("plugin OnPlanCreated failed",
				"plugin", pl.Name(),
				"error", err,
			)
		}
	}
}

// EmitCooperationChanged emits a cooperation membership change event.
func (r *Registry) EmitCooperationChanged(ctx context.Context, planID id.PlanID, coopID id.CooperationID) {
	r.mu.RLock()
	plugins := r.onCooperationChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnCooperationChanged(ctx, planID, coopID)
		}); err != nil {
			r.logger.Warn("plugin OnCooperationChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPriceCalculated emits a price calculated event.
func (r *Registry) EmitPriceCalculated(ctx context.Context, planID id.PlanID, price types.Value) {
	r.mu.RLock()
	plugins := r.onPriceCalculated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPriceCalculated(ctx, planID, price)
		}); err != nil {
			r.logger.Warn("plugin OnPriceCalculated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// GetPricingStrategy returns a pricing strategy by name.
func (r *Registry) GetPricingStrategy(name string) PricingStrategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pricingStrategies[name]
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the accounting pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
