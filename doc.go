// Package ledger provides a labour-time accounting engine for Go applications.
//
// Ledger is designed as a library, not a service. Import it directly into your
// Go application. It keeps the books of an economy where products are priced by
// the social labour time needed to produce them. It provides:
//
//   - An immutable double-entry transfer log with derived balances
//   - Typed accounts per owner (means, resources, labour, product, main)
//   - Account statements with signed volumes and member anonymization
//   - Production plans, plan credit, and work certificate payouts
//   - Cooperative pricing across plans with compensation transfers
//   - Pluggable lifecycle hooks for audit trails and metrics
//
// # Quick Start
//
// Create a ledger instance with your preferred store:
//
//	import (
//	    "github.com/coopnet/ledger"
//	    "github.com/coopnet/ledger/store/memory"
//	)
//
//	// Create ledger
//	l := ledger.New(memory.New())
//
//	// Start the ledger (runs store migrations)
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Owners hold accounts. A member has one account, a company has four
// (means "p", resources "r", labour "a", product "prd"):
//
//	member, err := l.RegisterMember(ctx, "Ada")
//	company, err := l.RegisterCompany(ctx, "Bakery")
//
// Plans declare what a company intends to produce and at what cost:
//
//	p := &plan.Plan{
//	    PlannerID:      company.ID,
//	    ProductName:    "bread",
//	    Costs:          plan.ProductionCosts{Means: types.Hours(10), Resources: types.Hours(5), Labour: types.Hours(85)},
//	    AmountProduced: 100,
//	}
//	if err := l.CreatePlan(ctx, p); err != nil {
//	    log.Fatal(err)
//	}
//
// Approving a plan credits the company's production accounts; consumption
// debits the consumer and credits the planner's product account:
//
//	_, err := l.ApprovePlanCredit(ctx, p.ID)
//	_, err = l.RecordPrivateConsumption(ctx, member.ID, p.ID, 2)
//
// Every movement of labour time is an immutable transfer. Balances are never
// stored; they are derived by summing credits minus debits.
//
// # Exact Arithmetic
//
// All labour-time calculations use exact decimal arithmetic via the Value
// type. There is no floating point anywhere in the accounting path, so a
// price of 10 hours split over 4 units is exactly 2.5 hours.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	tfr_01h2xcejqtf2nbrexx3vqjhp41   // Transfer ID
//	acct_01h2xcejqtf2nbrexx3vqjhp41  // Account ID
//	plan_01h455vb4pex5vsknk084sn02q  // Plan ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package ledger
