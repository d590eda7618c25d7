package ledger

import (
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/plugin"
	"github.com/coopnet/ledger/types"
)

// compile-time interface check
var _ plugin.PricingStrategy = AverageCostPricing{}

// AverageCostPricing is the default cooperative pricing strategy: the shared
// per-unit price is the combined production cost of all cooperating plans
// divided by their combined amount produced. Selling every unit at that price
// recovers exactly the combined cost, so total revenue equals total cost
// across the cooperation regardless of each plan's own efficiency.
type AverageCostPricing struct{}

// Name implements plugin.Plugin.
func (AverageCostPricing) Name() string { return "pricing.average-cost" }

// StrategyName implements plugin.PricingStrategy.
func (AverageCostPricing) StrategyName() string { return "average_cost" }

// Compute returns combined cost over combined amount. The price is undefined
// when nothing was produced.
func (AverageCostPricing) Compute(plans []*plan.Plan) (types.Value, bool) {
	totalCost := types.ZeroValue
	var totalAmount int64

	for _, p := range plans {
		totalCost = totalCost.Add(p.Costs.Total())
		totalAmount += p.AmountProduced
	}

	if totalAmount == 0 {
		return types.ZeroValue, false
	}
	return totalCost.DivInt(totalAmount), true
}
