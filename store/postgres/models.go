package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// ==================== Transfer models ====================

type transferModel struct {
	grove.BaseModel `grove:"table:ledger_transfers"`

	ID            string      `grove:"id,pk"`
	Date          time.Time   `grove:"date"`
	DebitAccount  string      `grove:"debit_account"`
	CreditAccount string      `grove:"credit_account"`
	Value         types.Value `grove:"value"`
	Type          string      `grove:"type"`
}

func toTransferModel(t *transfer.Transfer) *transferModel {
	return &transferModel{
		ID:            t.ID.String(),
		Date:          t.Date,
		DebitAccount:  t.DebitAccount.String(),
		CreditAccount: t.CreditAccount.String(),
		Value:         t.Value,
		Type:          string(t.Type),
	}
}

func fromTransferModel(m *transferModel) (*transfer.Transfer, error) {
	transferID, err := id.ParseTransferID(m.ID)
	if err != nil {
		return nil, err
	}
	debit, err := id.ParseAccountID(m.DebitAccount)
	if err != nil {
		return nil, err
	}
	credit, err := id.ParseAccountID(m.CreditAccount)
	if err != nil {
		return nil, err
	}

	return &transfer.Transfer{
		ID:            transferID,
		Date:          m.Date,
		DebitAccount:  debit,
		CreditAccount: credit,
		Value:         m.Value,
		Type:          transfer.Type(m.Type),
	}, nil
}

// ==================== Owner and account models ====================

type ownerModel struct {
	grove.BaseModel `grove:"table:ledger_owners"`

	ID        string    `grove:"id,pk"`
	Kind      string    `grove:"kind"`
	Name      string    `grove:"name"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

// accountModel denormalizes the owner's identity onto the account row.
// Ownership never changes after registration, so the copies cannot go stale,
// and joined reads become a single IN query instead of per-row lookups.
type accountModel struct {
	grove.BaseModel `grove:"table:ledger_accounts"`

	ID        string    `grove:"id,pk"`
	OwnerID   string    `grove:"owner_id"`
	OwnerKind string    `grove:"owner_kind"`
	OwnerName string    `grove:"owner_name"`
	Role      string    `grove:"role"`
	CreatedAt time.Time `grove:"created_at"`
}

func toOwnerModels(o *account.Owner) (*ownerModel, []accountModel) {
	om := &ownerModel{
		ID:        o.ID.String(),
		Kind:      string(o.Kind),
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}

	accounts := make([]accountModel, len(o.Accounts))
	for i, a := range o.Accounts {
		accounts[i] = accountModel{
			ID:        a.ID.String(),
			OwnerID:   o.ID.String(),
			OwnerKind: string(o.Kind),
			OwnerName: o.Name,
			Role:      string(a.Role),
			CreatedAt: o.CreatedAt,
		}
	}
	return om, accounts
}

func fromOwnerModel(m *ownerModel, accounts []accountModel) (*account.Owner, error) {
	ownerID, err := id.ParseAny(m.ID)
	if err != nil {
		return nil, err
	}

	accts := make([]account.Account, len(accounts))
	for i := range accounts {
		acctID, err := id.ParseAccountID(accounts[i].ID)
		if err != nil {
			return nil, err
		}
		accts[i] = account.Account{ID: acctID, Role: account.Role(accounts[i].Role)}
	}
	sortAccountsByRole(accts)

	return &account.Owner{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       ownerID,
		Kind:     account.Kind(m.Kind),
		Name:     m.Name,
		Accounts: accts,
	}, nil
}

// ownerIdentityFromAccount builds an owner carrying identity only, for joined
// transfer reads.
func ownerIdentityFromAccount(m *accountModel) (*account.Owner, error) {
	ownerID, err := id.ParseAny(m.OwnerID)
	if err != nil {
		return nil, err
	}
	return &account.Owner{
		ID:   ownerID,
		Kind: account.Kind(m.OwnerKind),
		Name: m.OwnerName,
	}, nil
}

// sortAccountsByRole restores the canonical role order (p, r, a, prd, main)
// lost by set-based reads.
func sortAccountsByRole(accts []account.Account) {
	order := map[account.Role]int{
		account.RoleMeans:     0,
		account.RoleResources: 1,
		account.RoleLabour:    2,
		account.RoleProduct:   3,
		account.RoleMain:      4,
	}
	for i := 1; i < len(accts); i++ {
		for j := i; j > 0 && order[accts[j].Role] < order[accts[j-1].Role]; j-- {
			accts[j], accts[j-1] = accts[j-1], accts[j]
		}
	}
}

// ==================== Plan models ====================

type planModel struct {
	grove.BaseModel `grove:"table:ledger_plans"`

	ID             string      `grove:"id,pk"`
	PlannerID      string      `grove:"planner_id"`
	ProductName    string      `grove:"product_name"`
	MeansCost      types.Value `grove:"means_cost"`
	ResourceCost   types.Value `grove:"resource_cost"`
	LabourCost     types.Value `grove:"labour_cost"`
	AmountProduced int64       `grove:"amount_produced"`
	PublicService  bool        `grove:"public_service"`
	CooperationID  string      `grove:"cooperation_id"`
	CreatedAt      time.Time   `grove:"created_at"`
	UpdatedAt      time.Time   `grove:"updated_at"`
}

func toPlanModel(p *plan.Plan) *planModel {
	coopID := ""
	if !p.CooperationID.IsNil() {
		coopID = p.CooperationID.String()
	}

	return &planModel{
		ID:             p.ID.String(),
		PlannerID:      p.PlannerID.String(),
		ProductName:    p.ProductName,
		MeansCost:      p.Costs.Means,
		ResourceCost:   p.Costs.Resources,
		LabourCost:     p.Costs.Labour,
		AmountProduced: p.AmountProduced,
		PublicService:  p.PublicService,
		CooperationID:  coopID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromPlanModel(m *planModel) (*plan.Plan, error) {
	planID, err := id.ParsePlanID(m.ID)
	if err != nil {
		return nil, err
	}
	plannerID, err := id.ParseCompanyID(m.PlannerID)
	if err != nil {
		return nil, err
	}

	coopID := id.Nil
	if m.CooperationID != "" {
		coopID, err = id.ParseCooperationID(m.CooperationID)
		if err != nil {
			return nil, err
		}
	}

	return &plan.Plan{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          planID,
		PlannerID:   plannerID,
		ProductName: m.ProductName,
		Costs: plan.ProductionCosts{
			Means:     m.MeansCost,
			Resources: m.ResourceCost,
			Labour:    m.LabourCost,
		},
		AmountProduced: m.AmountProduced,
		PublicService:  m.PublicService,
		CooperationID:  coopID,
	}, nil
}

// ==================== Cooperation models ====================

type cooperationModel struct {
	grove.BaseModel `grove:"table:ledger_cooperations"`

	ID        string    `grove:"id,pk"`
	Name      string    `grove:"name"`
	AccountID string    `grove:"account_id"`
	CreatedAt time.Time `grove:"created_at"`
	UpdatedAt time.Time `grove:"updated_at"`
}

func toCooperationModel(c *plan.Cooperation) *cooperationModel {
	return &cooperationModel{
		ID:        c.ID.String(),
		Name:      c.Name,
		AccountID: c.AccountID.String(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCooperationModel(m *cooperationModel) (*plan.Cooperation, error) {
	coopID, err := id.ParseCooperationID(m.ID)
	if err != nil {
		return nil, err
	}
	acctID, err := id.ParseAccountID(m.AccountID)
	if err != nil {
		return nil, err
	}

	return &plan.Cooperation{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        coopID,
		Name:      m.Name,
		AccountID: acctID,
	}, nil
}
