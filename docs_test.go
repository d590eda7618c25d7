package ledger_test

import (
	"context"
	"log"
	"log/slog"
	"testing"

	"github.com/coopnet/ledger"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/statement"
	"github.com/coopnet/ledger/store/memory"
	"github.com/coopnet/ledger/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL in production)
		store := memory.New()

		// Initialize Ledger
		l := ledger.New(store,
			ledger.WithLogger(slog.Default()),
			ledger.WithPricingStrategy(ledger.AverageCostPricing{}),
		)

		// Start the engine
		ctx := context.Background()
		if err := l.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer l.Stop()

		// Register the economy's participants
		company, err := l.RegisterCompany(ctx, "Bakery")
		if err != nil {
			t.Fatal(err)
		}
		member, err := l.RegisterMember(ctx, "Ada")
		if err != nil {
			t.Fatal(err)
		}

		// Declare a production plan: 100 loaves for 100 hours of labour time
		p := &plan.Plan{
			PlannerID:   company.ID,
			ProductName: "bread",
			Costs: plan.ProductionCosts{
				Means:     types.Hours(10), // fixed means of production
				Resources: types.Hours(5),  // raw materials
				Labour:    types.Hours(85), // labour
			},
			AmountProduced: 100,
		}
		if err := l.CreatePlan(ctx, p); err != nil {
			t.Fatal(err)
		}

		// Approving the plan credits the company's production accounts
		if _, err := l.ApprovePlanCredit(ctx, p.ID); err != nil {
			t.Fatal(err)
		}

		// Pay the worker, then let them buy bread
		if _, err := l.PayWorkCertificates(ctx, company.ID, member.ID, types.Hours(8)); err != nil {
			t.Fatal(err)
		}
		if _, err := l.RecordPrivateConsumption(ctx, member.ID, p.ID, 2); err != nil {
			t.Fatal(err)
		}

		// Balances are derived from the transfer log, never stored
		balance, err := l.AccountBalance(ctx, member.MainAccount())
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Member balance: %s hours\n", balance.String())

		// Statements sign every transfer from the account's viewpoint
		st, err := l.AccountTransfers(ctx, member.MainAccount())
		if err != nil {
			t.Fatal(err)
		}
		for _, row := range st {
			log.Printf("%s %s %s\n", row.Transfer.Date.Format("2006-01-02"), row.Transfer.Type, row.Volume.String())
		}

		// And plot series accumulate the signed volumes over time
		data := statement.ConstructPlotData(st)
		log.Printf("Plot points: %d\n", len(data.Timestamps))
	})

	// Test Value type examples
	t.Run("ValueExamples", func(t *testing.T) {
		// Constructors
		_ = types.Hours(8)           // 8 hours
		_ = types.MustParse("2.5")   // 2 hours 30 minutes
		_ = types.ZeroValue          // 0 hours

		// Arithmetic is exact decimal arithmetic
		v1 := types.Hours(10)
		v2 := types.Hours(4)
		_ = v1.Add(v2)    // 14
		_ = v1.MulInt(3)  // 30
		_ = v1.DivInt(4)  // exactly 2.5

		// Comparison
		if v2.LessThan(v1) {
			// v2 is less than v1
		}

		// Formatting
		_ = v1.String() // "10"
	})
}
