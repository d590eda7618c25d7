// Package mongo implements store.Store on MongoDB via the Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	ledger "github.com/coopnet/ledger"
	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	ledgerstore "github.com/coopnet/ledger/store"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Collection name constants.
const (
	colTransfers    = "ledger_transfers"
	colOwners       = "ledger_owners"
	colAccounts     = "ledger_accounts"
	colPlans        = "ledger_plans"
	colCooperations = "ledger_cooperations"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all ledger collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("ledger/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Transfer Store ====================

func (s *Store) CreateTransfer(ctx context.Context, t *transfer.Transfer) error {
	if !t.Type.Valid() {
		return ledger.ErrUnknownTransferType
	}
	if t.Value.IsNegative() {
		return ledger.ErrNegativeValue
	}

	m := toTransferModel(t)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create transfer: %w", err)
	}
	return nil
}

func (s *Store) GetTransfer(ctx context.Context, transferID id.TransferID) (*transfer.Transfer, error) {
	var m transferModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": transferID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrTransferNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get transfer: %w", err)
	}
	return fromTransferModel(&m)
}

func (s *Store) TransfersForAccount(ctx context.Context, accountID id.AccountID) ([]transfer.Joined, error) {
	acct := accountID.String()

	var models []transferModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"$or": bson.A{
			bson.M{"debit_account": acct},
			bson.M{"credit_account": acct},
		}}).
		Sort(bson.D{{Key: "date", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: transfers for account: %w", err)
	}
	if len(models) == 0 {
		return []transfer.Joined{}, nil
	}

	// Both owners of every row come from one $in query over the denormalized
	// account documents, never a lookup per transfer.
	seen := make(map[string]struct{})
	acctIDs := make(bson.A, 0, len(models)*2)
	for i := range models {
		for _, a := range []string{models[i].DebitAccount, models[i].CreditAccount} {
			if _, ok := seen[a]; !ok {
				seen[a] = struct{}{}
				acctIDs = append(acctIDs, a)
			}
		}
	}

	var accts []accountModel
	err = s.mdb.NewFind(&accts).
		Filter(bson.M{"_id": bson.M{"$in": acctIDs}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: resolve account owners: %w", err)
	}

	ownerByAcct := make(map[string]*account.Owner, len(accts))
	for i := range accts {
		o, err := ownerIdentityFromAccount(&accts[i])
		if err != nil {
			return nil, err
		}
		ownerByAcct[accts[i].ID] = o
	}

	result := make([]transfer.Joined, 0, len(models))
	for i := range models {
		t, err := fromTransferModel(&models[i])
		if err != nil {
			return nil, err
		}
		debtor, ok := ownerByAcct[models[i].DebitAccount]
		if !ok {
			return nil, ledger.ErrAccountNotFound
		}
		creditor, ok := ownerByAcct[models[i].CreditAccount]
		if !ok {
			return nil, ledger.ErrAccountNotFound
		}
		result = append(result, transfer.Joined{
			Transfer: *t,
			Debtor:   *debtor,
			Creditor: *creditor,
		})
	}
	return result, nil
}

// AccountBalance sums the account's transfers in Go. Values live as decimal
// strings in the documents, so the aggregation pipeline cannot add them
// without losing exactness.
func (s *Store) AccountBalance(ctx context.Context, accountID id.AccountID) (types.Value, error) {
	acct := accountID.String()

	var models []transferModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"$or": bson.A{
			bson.M{"debit_account": acct},
			bson.M{"credit_account": acct},
		}}).
		Scan(ctx)
	if err != nil {
		return types.ZeroValue, fmt.Errorf("ledger/mongo: account balance: %w", err)
	}

	balance := types.ZeroValue
	for i := range models {
		v, err := types.ParseValue(models[i].Value)
		if err != nil {
			return types.ZeroValue, err
		}
		if models[i].CreditAccount == acct {
			balance = balance.Add(v)
		}
		if models[i].DebitAccount == acct {
			balance = balance.Sub(v)
		}
	}
	return balance, nil
}

// ==================== Owner Store ====================

func (s *Store) CreateOwner(ctx context.Context, o *account.Owner) error {
	om, accts := toOwnerModels(o)
	if _, err := s.mdb.NewInsert(om).Exec(ctx); err != nil {
		return fmt.Errorf("ledger/mongo: create owner: %w", err)
	}
	if _, err := s.mdb.NewInsert(&accts).Exec(ctx); err != nil {
		return fmt.Errorf("ledger/mongo: create owner accounts: %w", err)
	}
	return nil
}

func (s *Store) GetOwner(ctx context.Context, ownerID id.AnyID) (*account.Owner, error) {
	var m ownerModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": ownerID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrOwnerNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get owner: %w", err)
	}

	var accts []accountModel
	err = s.mdb.NewFind(&accts).
		Filter(bson.M{"owner_id": ownerID.String()}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: get owner accounts: %w", err)
	}
	return fromOwnerModel(&m, accts)
}

func (s *Store) OwnerOfAccount(ctx context.Context, accountID id.AccountID) (*account.Owner, error) {
	var m accountModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": accountID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: owner of account: %w", err)
	}

	ownerID, err := id.ParseAny(m.OwnerID)
	if err != nil {
		return nil, err
	}
	return s.GetOwner(ctx, ownerID)
}

// ==================== Plan Store ====================

func (s *Store) CreatePlan(ctx context.Context, p *plan.Plan) error {
	m := toPlanModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create plan: %w", err)
	}
	return nil
}

func (s *Store) GetPlan(ctx context.Context, planID id.PlanID) (*plan.Plan, error) {
	var m planModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": planID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrPlanNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get plan: %w", err)
	}
	return fromPlanModel(&m)
}

func (s *Store) SetPlanCooperation(ctx context.Context, planID id.PlanID, coopID id.CooperationID) error {
	coop := ""
	if !coopID.IsNil() {
		if _, err := s.GetCooperation(ctx, coopID); err != nil {
			return err
		}
		coop = coopID.String()
	}

	res, err := s.mdb.NewUpdate((*planModel)(nil)).
		Filter(bson.M{"_id": planID.String()}).
		Set("cooperation_id", coop).
		Set("updated_at", now()).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: set plan cooperation: %w", err)
	}
	if res.MatchedCount() == 0 {
		return ledger.ErrPlanNotFound
	}
	return nil
}

func (s *Store) ListCooperatingPlans(ctx context.Context, coopID id.CooperationID) ([]*plan.Plan, error) {
	var models []planModel
	err := s.mdb.NewFind(&models).
		Filter(bson.M{"cooperation_id": coopID.String()}).
		Sort(bson.D{{Key: "created_at", Value: 1}}).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: list cooperating plans: %w", err)
	}

	result := make([]*plan.Plan, len(models))
	for i := range models {
		p, err := fromPlanModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

// ==================== Cooperation Store ====================

func (s *Store) CreateCooperation(ctx context.Context, c *plan.Cooperation) error {
	m := toCooperationModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create cooperation: %w", err)
	}
	return nil
}

func (s *Store) GetCooperation(ctx context.Context, coopID id.CooperationID) (*plan.Cooperation, error) {
	var m cooperationModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": coopID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrCooperationNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get cooperation: %w", err)
	}
	return fromCooperationModel(&m)
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all ledger collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colTransfers: {
			{Keys: bson.D{{Key: "debit_account", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "credit_account", Value: 1}, {Key: "date", Value: 1}}},
		},
		colOwners: {
			{Keys: bson.D{{Key: "kind", Value: 1}}},
		},
		colAccounts: {
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		colPlans: {
			{Keys: bson.D{{Key: "planner_id", Value: 1}}},
			{
				Keys:    bson.D{{Key: "cooperation_id", Value: 1}},
				Options: options.Index().SetSparse(true),
			},
		},
		colCooperations: {},
	}
}
