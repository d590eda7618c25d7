package store

import (
	"context"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Store is the unified storage interface for all Ledger entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
//
// Transfers are append-only: no update or delete method exists for them, on
// any backend. Unknown accounts are not errors on read paths; they yield
// empty slices and zero balances.
type Store interface {
	// Transfer methods
	CreateTransfer(ctx context.Context, t *transfer.Transfer) error
	GetTransfer(ctx context.Context, transferID id.TransferID) (*transfer.Transfer, error)
	// TransfersForAccount returns every transfer where the account is
	// debtor or creditor, joined with both resolved owners, from a single
	// consistent read.
	TransfersForAccount(ctx context.Context, accountID id.AccountID) ([]transfer.Joined, error)
	AccountBalance(ctx context.Context, accountID id.AccountID) (types.Value, error)

	// Owner methods
	CreateOwner(ctx context.Context, o *account.Owner) error
	GetOwner(ctx context.Context, ownerID id.AnyID) (*account.Owner, error)
	OwnerOfAccount(ctx context.Context, accountID id.AccountID) (*account.Owner, error)

	// Plan methods
	CreatePlan(ctx context.Context, p *plan.Plan) error
	GetPlan(ctx context.Context, planID id.PlanID) (*plan.Plan, error)
	SetPlanCooperation(ctx context.Context, planID id.PlanID, coopID id.CooperationID) error
	ListCooperatingPlans(ctx context.Context, coopID id.CooperationID) ([]*plan.Plan, error)

	// Cooperation methods
	CreateCooperation(ctx context.Context, c *plan.Cooperation) error
	GetCooperation(ctx context.Context, coopID id.CooperationID) (*plan.Cooperation, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
