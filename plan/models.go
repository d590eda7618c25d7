// Package plan defines production plans and cooperations of plans.
package plan

import (
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/types"
)

// ProductionCosts is the cost breakdown of a plan in labour hours.
type ProductionCosts struct {
	Means     types.Value `json:"means_cost"`    // fixed means of production (p)
	Resources types.Value `json:"resource_cost"` // raw materials (r)
	Labour    types.Value `json:"labour_cost"`   // labour (a)
}

// Total returns the sum of all cost components.
func (c ProductionCosts) Total() types.Value {
	return c.Means.Add(c.Resources).Add(c.Labour)
}

// Plan is a production plan. Plans are created and mutated by upstream
// collaborators; the accounting core only reads their cost and membership
// data.
type Plan struct {
	types.Entity
	ID             id.PlanID        `json:"id"`
	PlannerID      id.CompanyID     `json:"planner_id"`
	ProductName    string           `json:"product_name"`
	Costs          ProductionCosts  `json:"production_costs"`
	AmountProduced int64            `json:"amount_produced"`
	PublicService  bool             `json:"public_service"`
	CooperationID  id.CooperationID `json:"cooperation_id,omitempty"` // Nil when not cooperating
}

// IsCooperating reports whether the plan references a cooperation.
func (p *Plan) IsCooperating() bool {
	return !p.CooperationID.IsNil()
}

// PricePerUnit returns the plan's own per-unit price: total cost divided by
// amount produced. Public-service plans have a price of zero by policy, as do
// plans with nothing produced.
func (p *Plan) PricePerUnit() types.Value {
	if p.PublicService || p.AmountProduced == 0 {
		return types.ZeroValue
	}
	return p.Costs.Total().DivInt(p.AmountProduced)
}

// Cooperation groups zero or more plans behind one pooled account and one
// shared product price.
type Cooperation struct {
	types.Entity
	ID        id.CooperationID `json:"id"`
	Name      string           `json:"name"`
	AccountID id.AccountID     `json:"account_id"` // the pooled account
}
