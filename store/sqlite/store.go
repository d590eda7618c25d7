// Package sqlite implements store.Store on SQLite via the Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

	ledger "github.com/coopnet/ledger"
	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	ledgerstore "github.com/coopnet/ledger/store"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("ledger/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("ledger/sqlite: migration failed: %w", err)
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetTransfer(ctx context.Context, transferID id.TransferID) (*transfer.Transfer, error) {
	m := new(transferModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", transferID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, ledger.ErrTransferNotFound
		}
		return nil, err
	}
	return fromTransferModel(m)
}

func (s *Store) TransfersForAccount(ctx context.Context, accountID id.AccountID) ([]transfer.Joined, error) {
	var models []transferModel
	err := s.sdb.NewSelect(&models).
		Where("debit_account = ? OR credit_account = ?", accountID.String(), accountID.String()).
		OrderExpr("date ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(models) == 0 {
		return []transfer.Joined{}, nil
	}

	// Both owners of every row come from one IN query over the denormalized
	// account rows, never a lookup per transfer.
	seen := make(map[string]struct{})
	acctIDs := make([]any, 0, len(models)*2)
	for i := range models {
		for _, a := range []string{models[i].DebitAccount, models[i].CreditAccount} {
			if _, ok := seen[a]; !ok {
				seen[a] = struct{}{}
				acctIDs = append(acctIDs, a)
			}
		}
	}

	var accts []accountModel
	err = s.sdb.NewSelect(&accts).
		Where("id IN ("+placeholders(len(acctIDs))+")", acctIDs...).
		Scan(ctx)
	if err != nil {
		return nil, err
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

// AccountBalance sums in Go rather than in SQL. Values are stored as
// canonical decimal text, so summing on the decimal type keeps labour-time
// amounts exact at any precision.
func (s *Store) AccountBalance(ctx context.Context, accountID id.AccountID) (types.Value, error) {
	var models []transferModel
	err := s.sdb.NewSelect(&models).
		Where("debit_account = ? OR credit_account = ?", accountID.String(), accountID.String()).
		Scan(ctx)
	if err != nil {
		return types.ZeroValue, err
	}

	acct := accountID.String()
	balance := types.ZeroValue
	for i := range models {
		if models[i].CreditAccount == acct {
			balance = balance.Add(models[i].Value)
		}
		if models[i].DebitAccount == acct {
			balance = balance.Sub(models[i].Value)
		}
	}
	return balance, nil
}

// ==================== Owner Store ====================

func (s *Store) CreateOwner(ctx context.Context, o *account.Owner) error {
	om, accts := toOwnerModels(o)
	if _, err := s.sdb.NewInsert(om).Exec(ctx); err != nil {
		return err
	}
	_, err := s.sdb.NewInsert(&accts).Exec(ctx)
	return err
}

func (s *Store) GetOwner(ctx context.Context, ownerID id.AnyID) (*account.Owner, error) {
	m := new(ownerModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", ownerID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, ledger.ErrOwnerNotFound
		}
		return nil, err
	}

	var accts []accountModel
	err = s.sdb.NewSelect(&accts).
		Where("owner_id = ?", ownerID.String()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return fromOwnerModel(m, accts)
}

func (s *Store) OwnerOfAccount(ctx context.Context, accountID id.AccountID) (*account.Owner, error) {
	m := new(accountModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", accountID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, ledger.ErrAccountNotFound
		}
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetPlan(ctx context.Context, planID id.PlanID) (*plan.Plan, error) {
	m := new(planModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", planID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, ledger.ErrPlanNotFound
		}
		return nil, err
	}
	return fromPlanModel(m)
}

func (s *Store) SetPlanCooperation(ctx context.Context, planID id.PlanID, coopID id.CooperationID) error {
	coop := ""
	if !coopID.IsNil() {
		if _, err := s.GetCooperation(ctx, coopID); err != nil {
			return err
		}
		coop = coopID.String()
	}

	res, err := s.sdb.NewUpdate((*planModel)(nil)).
		Set("cooperation_id = ?", coop).
		Set("updated_at = ?", now()).
		Where("id = ?", planID.String()).
		Exec(ctx)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ledger.ErrPlanNotFound
	}
	return nil
}

func (s *Store) ListCooperatingPlans(ctx context.Context, coopID id.CooperationID) ([]*plan.Plan, error) {
	var models []planModel
	err := s.sdb.NewSelect(&models).
		Where("cooperation_id = ?", coopID.String()).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
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
	_, err := s.sdb.NewInsert(m).Exec(ctx)
	return err
}

func (s *Store) GetCooperation(ctx context.Context, coopID id.CooperationID) (*plan.Cooperation, error) {
	m := new(cooperationModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", coopID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, ledger.ErrCooperationNotFound
		}
		return nil, err
	}
	return fromCooperationModel(m)
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// placeholders returns n comma-separated query placeholders.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
