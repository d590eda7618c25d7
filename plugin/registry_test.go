package plugin_test

import (
	"context"
	"testing"
	"time"

	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/plugin"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

type testPlugin struct {
	name      string
	transfers int
	inits     int
}

func (p *testPlugin) Name() string { return p.name }

func (p *testPlugin) OnInit(_ context.Context, _ interface{}) error {
	p.inits++
	return nil
}

func (p *testPlugin) OnTransferRecorded(_ context.Context, _ *transfer.Transfer) error {
	p.transfers++
	return nil
}

type testStrategy struct{}

func (testStrategy) Name() string         { return "pricing.fixed" }
func (testStrategy) StrategyName() string { return "fixed" }
func (testStrategy) Compute(_ []*plan.Plan) (types.Value, bool) {
	return types.Hours(1), true
}

func TestRegisterAndDispatch(t *testing.T) {
	r := plugin.NewRegistry()
	p := &testPlugin{name: "test"}

	if err := r.Register(p); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if r.Count() != 1 {
		t.Errorf("Count: got %d, want 1", r.Count())
	}
	if r.Get("test") == nil {
		t.Error("Get should find the plugin")
	}
	if r.Get("missing") != nil {
		t.Error("Get should return nil for unknown plugin")
	}

	ctx := context.Background()
	r.EmitInit(ctx, nil)
	tr := transfer.New(time.Now(), id.NewAccountID(), id.NewAccountID(), types.Hours(1), transfer.TypeTaxes)
	r.EmitTransferRecorded(ctx, tr)
	r.EmitTransferRecorded(ctx, tr)

	if p.inits != 1 {
		t.Errorf("inits: got %d, want 1", p.inits)
	}
	if p.transfers != 2 {
		t.Errorf("transfers: got %d, want 2", p.transfers)
	}

	// Events the plugin does not implement are silently skipped.
	r.EmitPlanCreated(ctx, &plan.Plan{})
	r.EmitShutdown(ctx)
}

func TestRegisterDuplicate(t *testing.T) {
	r := plugin.NewRegistry()
	if err := r.Register(&testPlugin{name: "dup"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&testPlugin{name: "dup"}); err == nil {
		t.Error("expected error for duplicate plugin name")
	}
}

func TestPricingStrategyLookup(t *testing.T) {
	r := plugin.NewRegistry()
	if err := r.Register(testStrategy{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	s := r.GetPricingStrategy("fixed")
	if s == nil {
		t.Fatal("expected strategy to be registered")
	}
	price, ok := s.Compute(nil)
	if !ok || !price.Equal(types.Hours(1)) {
		t.Errorf("got %v/%v, want 1/true", price, ok)
	}

	if r.GetPricingStrategy("missing") != nil {
		t.Error("expected nil for unknown strategy")
	}
}
