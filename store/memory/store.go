// Package memory provides an in-memory Store for tests and examples.
package memory

import (
	"context"
	"sync"

	"github.com/coopnet/ledger"
	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

type Store struct {
	mu sync.RWMutex

	// Transfer storage: append-only log plus an id index into it.
	transfers  []transfer.Transfer
	transferIx map[string]int

	// Owner storage and the account -> owner mapping fixed at registration.
	owners       map[string]*account.Owner
	ownerByAcct  map[string]string
	plans        map[string]*plan.Plan
	cooperations map[string]*plan.Cooperation
}

func New() *Store {
	return &Store{
		transfers:    make([]transfer.Transfer, 0),
		transferIx:   make(map[string]int),
		owners:       make(map[string]*account.Owner),
		ownerByAcct:  make(map[string]string),
		plans:        make(map[string]*plan.Plan),
		cooperations: make(map[string]*plan.Cooperation),
	}
}

// Transfer Store implementation
func (s *Store) CreateTransfer(_ context.Context, t *transfer.Transfer) error {
	if !t.Type.Valid() {
		return ledger.ErrUnknownTransferType
	}
	if t.Value.IsNegative() {
		return ledger.ErrNegativeValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transferIx[t.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.transfers = append(s.transfers, *t)
	s.transferIx[t.ID.String()] = len(s.transfers) - 1
	return nil
}

func (s *Store) GetTransfer(_ context.Context, transferID id.TransferID) (*transfer.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if ix, ok := s.transferIx[transferID.String()]; ok {
		t := s.transfers[ix]
		return &t, nil
	}
	return nil, ledger.ErrTransferNotFound
}

func (s *Store) TransfersForAccount(_ context.Context, accountID id.AccountID) ([]transfer.Joined, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct := accountID.String()
	result := make([]transfer.Joined, 0)
	for i := range s.transfers {
		t := s.transfers[i]
		if t.DebitAccount.String() != acct && t.CreditAccount.String() != acct {
			continue
		}

		debtor, err := s.ownerOfLocked(t.DebitAccount)
		if err != nil {
			return nil, err
		}
		creditor, err := s.ownerOfLocked(t.CreditAccount)
		if err != nil {
			return nil, err
		}

		result = append(result, transfer.Joined{
			Transfer: t,
			Debtor:   *debtor,
			Creditor: *creditor,
		})
	}
	return result, nil
}

func (s *Store) AccountBalance(_ context.Context, accountID id.AccountID) (types.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct := accountID.String()
	balance := types.ZeroValue
	for i := range s.transfers {
		t := s.transfers[i]
		if t.CreditAccount.String() == acct {
			balance = balance.Add(t.Value)
		}
		if t.DebitAccount.String() == acct {
			balance = balance.Sub(t.Value)
		}
	}
	return balance, nil
}

// Owner Store implementation
func (s *Store) CreateOwner(_ context.Context, o *account.Owner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.owners[o.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.owners[o.ID.String()] = o
	for _, a := range o.Accounts {
		s.ownerByAcct[a.ID.String()] = o.ID.String()
	}
	return nil
}

func (s *Store) GetOwner(_ context.Context, ownerID id.AnyID) (*account.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if o, ok := s.owners[ownerID.String()]; ok {
		return o, nil
	}
	return nil, ledger.ErrOwnerNotFound
}

func (s *Store) OwnerOfAccount(_ context.Context, accountID id.AccountID) (*account.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.ownerOfLocked(accountID)
}

// ownerOfLocked resolves an account to its owner. Callers must hold s.mu.
func (s *Store) ownerOfLocked(accountID id.AccountID) (*account.Owner, error) {
	ownerID, ok := s.ownerByAcct[accountID.String()]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	o, ok := s.owners[ownerID]
	if !ok {
		return nil, ledger.ErrOwnerNotFound
	}
	return o, nil
}

// Plan Store implementation
//
// Plans are the one mutable entity here (SetPlanCooperation), so the store
// copies them on both write and read. Handing out the stored pointer would
// let a later cooperation change race with a reader's Plan.
func (s *Store) CreatePlan(_ context.Context, p *plan.Plan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.plans[p.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	stored := *p
	s.plans[p.ID.String()] = &stored
	return nil
}

func (s *Store) GetPlan(_ context.Context, planID id.PlanID) (*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.plans[planID.String()]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ledger.ErrPlanNotFound
}

func (s *Store) SetPlanCooperation(_ context.Context, planID id.PlanID, coopID id.CooperationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[planID.String()]
	if !ok {
		return ledger.ErrPlanNotFound
	}
	if !coopID.IsNil() {
		if _, ok := s.cooperations[coopID.String()]; !ok {
			return ledger.ErrCooperationNotFound
		}
	}
	p.CooperationID = coopID
	p.Touch()
	return nil
}

func (s *Store) ListCooperatingPlans(_ context.Context, coopID id.CooperationID) ([]*plan.Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*plan.Plan, 0)
	for _, p := range s.plans {
		if !p.CooperationID.IsNil() && p.CooperationID.String() == coopID.String() {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

// Cooperation Store implementation
func (s *Store) CreateCooperation(_ context.Context, c *plan.Cooperation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.cooperations[c.ID.String()]; exists {
		return ledger.ErrAlreadyExists
	}
	s.cooperations[c.ID.String()] = c
	return nil
}

func (s *Store) GetCooperation(_ context.Context, coopID id.CooperationID) (*plan.Cooperation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.cooperations[coopID.String()]; ok {
		return c, nil
	}
	return nil, ledger.ErrCooperationNotFound
}

// Store management
func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}
