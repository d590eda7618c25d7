// Package plugin provides an extensible plugin system for Ledger.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized. The ledger engine is
// passed as interface{} to avoid an import cycle.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Accounting hooks
// ──────────────────────────────────────────────────

// OnOwnerRegistered is called when a new account owner is registered.
type OnOwnerRegistered interface {
	Plugin
	OnOwnerRegistered(ctx context.Context, o *account.Owner) error
}

// OnTransferRecorded is called after a transfer is persisted.
type OnTransferRecorded interface {
	Plugin
	OnTransferRecorded(ctx context.Context, t *transfer.Transfer) error
}

// OnCompensationTransfer is called after the compensation engine writes a
// transfer. The transfer's type tells the direction.
type OnCompensationTransfer interface {
	Plugin
	OnCompensationTransfer(ctx context.Context, t *transfer.Transfer) error
}

// OnStatementBuilt is called after an account statement is assembled.
type OnStatementBuilt interface {
	Plugin
	OnStatementBuilt(ctx context.Context, accountID id.AccountID, rows int) error
}

// ──────────────────────────────────────────────────
// Plan and cooperation hooks
// ──────────────────────────────────────────────────

// OnPlanCreated is called when a new plan is created.
type OnPlanCreated interface {
	Plugin
	OnPlanCreated(ctx context.Context, p *plan.Plan) error
}

// OnCooperationChanged is called when a plan joins or leaves a cooperation.
// A Nil cooperation id means the plan left.
type OnCooperationChanged interface {
	Plugin
	OnCooperationChanged(ctx context.Context, planID id.PlanID, coopID id.CooperationID) error
}

// OnPriceCalculated is called after a cooperative price calculation that
// produced a defined price.
type OnPriceCalculated interface {
	Plugin
	OnPriceCalculated(ctx context.Context, planID id.PlanID, price types.Value) error
}

// ──────────────────────────────────────────────────
// Pricing strategies
// ──────────────────────────────────────────────────

// PricingStrategy computes the single per-unit price shared by all plans of
// a cooperation. Implementations must weight the member plans so that total
// revenue at the shared price equals total production cost.
type PricingStrategy interface {
	Plugin
	StrategyName() string

	// Compute returns the shared price over the cooperating plans. ok is
	// false when the price is undefined, e.g. when the combined amount
	// produced is zero.
	Compute(plans []*plan.Plan) (price types.Value, ok bool)
}
