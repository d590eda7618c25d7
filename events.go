package ledger

import (
	"context"
	"time"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Economic events. These are the thin recording surface for the decisions
// upstream collaborators have already made: each operation produces transfers
// and reads plan data, nothing more.

// ──────────────────────────────────────────────────
// Owner registration
// ──────────────────────────────────────────────────

// RegisterMember registers a member with their single account.
func (l *Ledger) RegisterMember(ctx context.Context, name string) (*account.Owner, error) {
	return l.registerOwner(ctx, account.NewMember(name))
}

// RegisterCompany registers a company with its four accounts
// (means, resources, labour, product).
func (l *Ledger) RegisterCompany(ctx context.Context, name string) (*account.Owner, error) {
	return l.registerOwner(ctx, account.NewCompany(name))
}

// RegisterSocialAccounting registers the system-wide settlement owner.
func (l *Ledger) RegisterSocialAccounting(ctx context.Context, name string) (*account.Owner, error) {
	return l.registerOwner(ctx, account.NewSocialAccounting(name))
}

// RegisterCooperation registers a cooperation owner together with the
// cooperation entity plans can join. The cooperation's pooled account is the
// owner's single account.
func (l *Ledger) RegisterCooperation(ctx context.Context, name string) (*plan.Cooperation, error) {
	owner, err := l.registerOwner(ctx, account.NewCooperation(name))
	if err != nil {
		return nil, err
	}

	coop := &plan.Cooperation{
		Entity:    types.NewEntity(),
		ID:        owner.ID,
		Name:      name,
		AccountID: owner.MainAccount(),
	}
	if err := l.store.CreateCooperation(ctx, coop); err != nil {
		return nil, err
	}
	return coop, nil
}

func (l *Ledger) registerOwner(ctx context.Context, o *account.Owner) (*account.Owner, error) {
	if err := l.store.CreateOwner(ctx, o); err != nil {
		return nil, err
	}

	l.logger.Debug("owner registered",
		"owner_id", o.ID.String(),
		"kind", string(o.Kind),
	)
	l.plugins.EmitOwnerRegistered(ctx, o)

	return o, nil
}

// GetOwner returns an owner by id.
func (l *Ledger) GetOwner(ctx context.Context, ownerID id.AnyID) (*account.Owner, error) {
	return l.store.GetOwner(ctx, ownerID)
}

// OwnerOfAccount resolves an account to its owner.
func (l *Ledger) OwnerOfAccount(ctx context.Context, accountID id.AccountID) (*account.Owner, error) {
	return l.store.OwnerOfAccount(ctx, accountID)
}

// GetCooperation returns a cooperation by id.
func (l *Ledger) GetCooperation(ctx context.Context, coopID id.CooperationID) (*plan.Cooperation, error) {
	return l.store.GetCooperation(ctx, coopID)
}

// ──────────────────────────────────────────────────
// Plan management
// ──────────────────────────────────────────────────

// CreatePlan records a production plan.
func (l *Ledger) CreatePlan(ctx context.Context, p *plan.Plan) error {
	if p.ID.IsNil() {
		p.ID = id.NewPlanID()
	}
	p.Entity = types.NewEntity()

	if err := l.store.CreatePlan(ctx, p); err != nil {
		return err
	}

	l.plugins.EmitPlanCreated(ctx, p)
	return nil
}

// GetPlan returns a plan by id.
func (l *Ledger) GetPlan(ctx context.Context, planID id.PlanID) (*plan.Plan, error) {
	return l.store.GetPlan(ctx, planID)
}

// JoinCooperation makes a plan a member of the cooperation. The cooperative
// price reflects the change on its next calculation.
func (l *Ledger) JoinCooperation(ctx context.Context, planID id.PlanID, coopID id.CooperationID) error {
	if err := l.store.SetPlanCooperation(ctx, planID, coopID); err != nil {
		return err
	}
	l.plugins.EmitCooperationChanged(ctx, planID, coopID)
	return nil
}

// LeaveCooperation removes a plan from its cooperation.
func (l *Ledger) LeaveCooperation(ctx context.Context, planID id.PlanID) error {
	if err := l.store.SetPlanCooperation(ctx, planID, id.Nil); err != nil {
		return err
	}
	l.plugins.EmitCooperationChanged(ctx, planID, id.Nil)
	return nil
}

// ──────────────────────────────────────────────────
// Plan approval credit
// ──────────────────────────────────────────────────

// ApprovePlanCredit records the three credit transfers a plan approval
// produces: the planner's product account is debited and the means, resource
// and labour accounts are credited by the respective cost components.
// Public-service plans use the public credit types.
func (l *Ledger) ApprovePlanCredit(ctx context.Context, planID id.PlanID) ([]id.TransferID, error) {
	p, err := l.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	planner, err := l.store.GetOwner(ctx, p.PlannerID)
	if err != nil {
		return nil, err
	}

	product, err := ownerAccount(planner, account.RoleProduct)
	if err != nil {
		return nil, err
	}

	credits := []struct {
		role   account.Role
		value  types.Value
		typ    transfer.Type
		pubTyp transfer.Type
	}{
		{account.RoleMeans, p.Costs.Means, transfer.TypeCreditP, transfer.TypeCreditPublicP},
		{account.RoleResources, p.Costs.Resources, transfer.TypeCreditR, transfer.TypeCreditPublicR},
		{account.RoleLabour, p.Costs.Labour, transfer.TypeCreditA, transfer.TypeCreditPublicA},
	}

	ids := make([]id.TransferID, 0, len(credits))
	now := time.Now().UTC()
	for _, c := range credits {
		acct, err := ownerAccount(planner, c.role)
		if err != nil {
			return nil, err
		}
		typ := c.typ
		if p.PublicService {
			typ = c.pubTyp
		}

		t := transfer.New(now, product, acct, c.value, typ)
		if err := l.RecordTransfer(ctx, t); err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// ──────────────────────────────────────────────────
// Wages, consumption, taxes
// ──────────────────────────────────────────────────

// PayWorkCertificates pays a member for hours worked: the company's labour
// account is debited, the member's account credited.
func (l *Ledger) PayWorkCertificates(ctx context.Context, companyID id.CompanyID, memberID id.MemberID, hours types.Value) (id.TransferID, error) {
	company, err := l.store.GetOwner(ctx, companyID)
	if err != nil {
		return id.Nil, err
	}
	member, err := l.store.GetOwner(ctx, memberID)
	if err != nil {
		return id.Nil, err
	}

	labour, err := ownerAccount(company, account.RoleLabour)
	if err != nil {
		return id.Nil, err
	}

	t := transfer.New(time.Now().UTC(), labour, member.MainAccount(), hours, transfer.TypeWorkCertificates)
	if err := l.RecordTransfer(ctx, t); err != nil {
		return id.Nil, err
	}
	return t.ID, nil
}

// PayTaxes contributes from a company's product account to the social
// accounting office, funding public services.
func (l *Ledger) PayTaxes(ctx context.Context, companyID id.CompanyID, socialID id.SocialAccountingID, amount types.Value) (id.TransferID, error) {
	company, err := l.store.GetOwner(ctx, companyID)
	if err != nil {
		return id.Nil, err
	}
	social, err := l.store.GetOwner(ctx, socialID)
	if err != nil {
		return id.Nil, err
	}

	product, err := ownerAccount(company, account.RoleProduct)
	if err != nil {
		return id.Nil, err
	}

	t := transfer.New(time.Now().UTC(), product, social.MainAccount(), amount, transfer.TypeTaxes)
	if err := l.RecordTransfer(ctx, t); err != nil {
		return id.Nil, err
	}
	return t.ID, nil
}

// RecordPrivateConsumption records a member consuming the product of a plan.
// The member pays the cooperative price when the plan cooperates and that
// price is defined, the plan's own price otherwise.
func (l *Ledger) RecordPrivateConsumption(ctx context.Context, memberID id.MemberID, planID id.PlanID, amount int64) (id.TransferID, error) {
	member, err := l.store.GetOwner(ctx, memberID)
	if err != nil {
		return id.Nil, err
	}
	p, err := l.store.GetPlan(ctx, planID)
	if err != nil {
		return id.Nil, err
	}
	product, err := l.plannerProductAccount(ctx, p)
	if err != nil {
		return id.Nil, err
	}

	price, err := l.effectivePrice(ctx, p)
	if err != nil {
		return id.Nil, err
	}

	t := transfer.New(time.Now().UTC(), member.MainAccount(), product, price.MulInt(amount), transfer.TypePrivateConsumption)
	if err := l.RecordTransfer(ctx, t); err != nil {
		return id.Nil, err
	}
	return t.ID, nil
}

// RecordProductiveConsumption records a company consuming another plan's
// product as fixed means (RoleMeans) or raw materials (RoleResources). When
// the consumed plan cooperates and the cooperative price is defined, the
// compensation engine runs as a side effect and the id of the compensation
// transfer is returned alongside the consumption transfer id; otherwise the
// compensation id is Nil.
func (l *Ledger) RecordProductiveConsumption(
	ctx context.Context,
	consumerID id.CompanyID,
	planID id.PlanID,
	amount int64,
	as account.Role,
) (consumption, compensation id.TransferID, err error) {
	var typ transfer.Type
	switch as {
	case account.RoleMeans:
		typ = transfer.TypeProductiveConsumptionP
	case account.RoleResources:
		typ = transfer.TypeProductiveConsumptionR
	default:
		return id.Nil, id.Nil, ErrInvalidInput
	}

	consumer, err := l.store.GetOwner(ctx, consumerID)
	if err != nil {
		return id.Nil, id.Nil, err
	}
	p, err := l.store.GetPlan(ctx, planID)
	if err != nil {
		return id.Nil, id.Nil, err
	}
	product, err := l.plannerProductAccount(ctx, p)
	if err != nil {
		return id.Nil, id.Nil, err
	}
	payingAccount, err := ownerAccount(consumer, as)
	if err != nil {
		return id.Nil, id.Nil, err
	}

	coopPrice, err := l.CooperativePrice(ctx, planID)
	if err != nil {
		return id.Nil, id.Nil, err
	}
	price := p.PricePerUnit()
	if coopPrice != nil {
		price = *coopPrice
	}

	t := transfer.New(time.Now().UTC(), payingAccount, product, price.MulInt(amount), typ)
	if err := l.RecordTransfer(ctx, t); err != nil {
		return id.Nil, id.Nil, err
	}

	if coopPrice == nil {
		return t.ID, id.Nil, nil
	}

	coop, err := l.store.GetCooperation(ctx, p.CooperationID)
	if err != nil {
		return t.ID, id.Nil, err
	}
	compID, err := l.CreateCompensationTransfer(ctx, *coopPrice, p.PricePerUnit(), amount, product, coop.AccountID)
	if err != nil {
		return t.ID, id.Nil, err
	}
	return t.ID, compID, nil
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

// effectivePrice is the per-unit price a consumer actually pays: the
// cooperative price when defined, the plan's own price otherwise.
func (l *Ledger) effectivePrice(ctx context.Context, p *plan.Plan) (types.Value, error) {
	coopPrice, err := l.CooperativePrice(ctx, p.ID)
	if err != nil {
		return types.ZeroValue, err
	}
	if coopPrice != nil {
		return *coopPrice, nil
	}
	return p.PricePerUnit(), nil
}

func (l *Ledger) plannerProductAccount(ctx context.Context, p *plan.Plan) (id.AccountID, error) {
	planner, err := l.store.GetOwner(ctx, p.PlannerID)
	if err != nil {
		return id.Nil, err
	}
	return ownerAccount(planner, account.RoleProduct)
}

func ownerAccount(o *account.Owner, role account.Role) (id.AccountID, error) {
	a := o.Account(role)
	if a == nil {
		return id.Nil, ErrUnknownRole
	}
	return a.ID, nil
}
