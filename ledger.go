package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plugin"
	"github.com/coopnet/ledger/statement"
	"github.com/coopnet/ledger/store"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Ledger is the accounting engine. It records immutable transfers, derives
// balances and statements from them, and resolves cooperative pricing and
// compensation. The store provides the transaction boundary; the engine holds
// no locks of its own.
type Ledger struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Configuration
	pricing plugin.PricingStrategy
}

// New creates a new Ledger instance.
func New(s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:   s,
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		pricing: AverageCostPricing{},
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithPricingStrategy sets the cooperative pricing strategy and registers it
// as a plugin.
func WithPricingStrategy(s plugin.PricingStrategy) Option {
	return func(l *Ledger) {
		l.pricing = s
		_ = l.plugins.Register(s) //nolint:errcheck // best-effort plugin registration during init
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("ledger started",
		"pricing_strategy", l.pricing.StrategyName(),
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	ctx := context.Background()
	l.plugins.EmitShutdown(ctx)

	return l.store.Close()
}

// Plugins returns the plugin registry.
func (l *Ledger) Plugins() *plugin.Registry { return l.plugins }

// ──────────────────────────────────────────────────
// Transfer recording
// ──────────────────────────────────────────────────

// RecordTransfer appends an already-decided value movement to the ledger.
// Whether the movement should occur is the caller's decision; the engine only
// validates the type whitelist and the non-negative value.
func (l *Ledger) RecordTransfer(ctx context.Context, t *transfer.Transfer) error {
	if !t.Type.Valid() {
		return ErrUnknownTransferType
	}
	if t.Value.IsNegative() {
		return ErrNegativeValue
	}
	if t.ID.IsNil() {
		t.ID = id.NewTransferID()
	}
	if t.Date.IsZero() {
		t.Date = time.Now().UTC()
	}

	if err := l.store.CreateTransfer(ctx, t); err != nil {
		return err
	}

	l.logger.Debug("transfer recorded",
		"transfer_id", t.ID.String(),
		"type", string(t.Type),
		"value", t.Value.String(),
	)
	l.plugins.EmitTransferRecorded(ctx, t)

	return nil
}

// GetTransfer returns a transfer by id.
func (l *Ledger) GetTransfer(ctx context.Context, transferID id.TransferID) (*transfer.Transfer, error) {
	return l.store.GetTransfer(ctx, transferID)
}

// ──────────────────────────────────────────────────
// Statements and balances
// ──────────────────────────────────────────────────

// AccountTransfers builds the statement of an account: every transfer
// touching it, signed from its viewpoint, with the counterparty resolved and
// members anonymized, ordered by date descending. An unknown account yields
// an empty statement, not an error.
func (l *Ledger) AccountTransfers(ctx context.Context, accountID id.AccountID) ([]statement.AccountTransfer, error) {
	rows, err := l.store.TransfersForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	st := statement.Build(rows, accountID)
	l.plugins.EmitStatementBuilt(ctx, accountID, len(st))
	return st, nil
}

// AccountBalance returns the derived balance of an account: the sum of its
// credits minus the sum of its debits. An account with no transfers has a
// balance of zero.
func (l *Ledger) AccountBalance(ctx context.Context, accountID id.AccountID) (types.Value, error) {
	return l.store.AccountBalance(ctx, accountID)
}

// ──────────────────────────────────────────────────
// Cooperative pricing
// ──────────────────────────────────────────────────

// CooperativePrice returns the per-unit price shared by all plans in the
// given plan's cooperation, or nil when the plan is not cooperating or the
// cooperation's combined amount produced is zero. Callers fall back to the
// plan's own price in the nil case. The price is computed from the current
// membership at every call, never cached.
func (l *Ledger) CooperativePrice(ctx context.Context, planID id.PlanID) (*types.Value, error) {
	p, err := l.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !p.IsCooperating() {
		return nil, nil
	}

	members, err := l.store.ListCooperatingPlans(ctx, p.CooperationID)
	if err != nil {
		return nil, err
	}

	price, ok := l.pricing.Compute(members)
	if !ok {
		return nil, nil
	}

	l.plugins.EmitPriceCalculated(ctx, planID, price)
	return &price, nil
}

// ──────────────────────────────────────────────────
// Compensation engine
// ──────────────────────────────────────────────────

// CreateCompensationTransfer reconciles the difference between the
// cooperative price and a plan's own price for one consumption event. When
// the plan's own price exceeds the shared price, the cooperation account
// refunds the planner's product account; in the opposite case the planner
// pays the surplus into the cooperation account. A zero difference creates
// nothing and returns the Nil id.
func (l *Ledger) CreateCompensationTransfer(
	ctx context.Context,
	coopPrice, planPrice types.Value,
	consumedAmount int64,
	plannerProductAccount, cooperationAccount id.AccountID,
) (id.TransferID, error) {
	difference := coopPrice.Sub(planPrice)
	if difference.IsZero() {
		return id.Nil, nil
	}

	value := difference.Abs().MulInt(consumedAmount)

	var t *transfer.Transfer
	if difference.IsNegative() {
		// The plan cost more than the shared price it sold at; the pool
		// refunds the shortfall.
		t = transfer.New(time.Now().UTC(), cooperationAccount, plannerProductAccount, value, transfer.TypeCompensationForCompany)
	} else {
		// The plan under-cost the shared price; the surplus subsidizes
		// the pool.
		t = transfer.New(time.Now().UTC(), plannerProductAccount, cooperationAccount, value, transfer.TypeCompensationForCoop)
	}

	if err := l.store.CreateTransfer(ctx, t); err != nil {
		return id.Nil, err
	}

	l.logger.Debug("compensation transfer created",
		"transfer_id", t.ID.String(),
		"type", string(t.Type),
		"value", value.String(),
	)
	l.plugins.EmitCompensationTransfer(ctx, t)

	return t.ID, nil
}
