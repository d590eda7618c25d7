package statement_test

import (
	"testing"
	"time"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/statement"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

func joined(t transfer.Transfer, debtor, creditor *account.Owner) transfer.Joined {
	return transfer.Joined{Transfer: t, Debtor: *debtor, Creditor: *creditor}
}

func TestBuildSignsAndSorts(t *testing.T) {
	member := account.NewMember("Ada")
	company := account.NewCompany("Bakery")
	viewpoint := member.MainAccount()
	product := company.Account(account.RoleProduct).ID
	labour := company.Account(account.RoleLabour).ID

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	wage := transfer.New(base, labour, viewpoint, types.Hours(8), transfer.TypeWorkCertificates)
	buy := transfer.New(base.Add(time.Hour), viewpoint, product, types.Hours(2), transfer.TypePrivateConsumption)

	rows := []transfer.Joined{
		joined(*wage, company, member),
		joined(*buy, member, company),
	}

	st := statement.Build(rows, viewpoint)
	if len(st) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(st))
	}

	// Date descending: the purchase comes first.
	if st[0].Transfer.ID.String() != buy.ID.String() {
		t.Error("expected newest transfer first")
	}
	if !st[0].IsDebit {
		t.Error("purchase should be a debit for the member")
	}
	if !st[0].Volume.Equal(types.Hours(-2)) {
		t.Errorf("purchase volume: got %v, want -2", st[0].Volume)
	}

	if st[1].IsDebit {
		t.Error("wage should be a credit for the member")
	}
	if !st[1].Volume.Equal(types.Hours(8)) {
		t.Errorf("wage volume: got %v, want 8", st[1].Volume)
	}

	// Counterparty is the company on both rows, with its real identity.
	for _, row := range st {
		if row.Party.IsAnonymous() {
			t.Error("company counterparty should not be anonymous")
		}
		if row.Party.ID != company.ID.String() {
			t.Errorf("party: got %q, want %q", row.Party.ID, company.ID.String())
		}
	}
}

func TestBuildAnonymizesMemberCounterparties(t *testing.T) {
	member := account.NewMember("Ada")
	company := account.NewCompany("Bakery")
	viewpoint := company.Account(account.RoleProduct).ID

	buy := transfer.New(time.Now(), member.MainAccount(), viewpoint, types.Hours(2), transfer.TypePrivateConsumption)
	st := statement.Build([]transfer.Joined{joined(*buy, member, company)}, viewpoint)

	if len(st) != 1 {
		t.Fatalf("expected 1 row, got %d", len(st))
	}
	if !st[0].Party.IsAnonymous() {
		t.Error("member counterparty must be anonymized")
	}
	if st[0].Party.Name != account.AnonymousPartyName {
		t.Errorf("got %q, want %q", st[0].Party.Name, account.AnonymousPartyName)
	}
}

func TestBuildMarksSelfTransfers(t *testing.T) {
	company := account.NewCompany("Bakery")
	viewpoint := company.Account(account.RoleProduct).ID

	self := transfer.New(time.Now(), viewpoint, viewpoint, types.Hours(1), transfer.TypeCreditP)
	st := statement.Build([]transfer.Joined{joined(*self, company, company)}, viewpoint)

	if !st[0].DebtorEqualsCreditor {
		t.Error("self-transfer should be flagged")
	}
	// A self-transfer moves nothing, so its row carries zero volume. The
	// statement's sum then stays equal to the account balance.
	if !st[0].Volume.IsZero() {
		t.Errorf("self-transfer volume: got %v, want 0", st[0].Volume)
	}
}

func TestBuildSelfTransferSumMatchesBalance(t *testing.T) {
	company := account.NewCompany("Bakery")
	member := account.NewMember("Ada")
	viewpoint := company.Account(account.RoleProduct).ID

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []transfer.Joined{
		joined(*transfer.New(base, member.MainAccount(), viewpoint, types.Hours(2), transfer.TypePrivateConsumption), member, company),
		joined(*transfer.New(base.Add(time.Hour), viewpoint, viewpoint, types.Hours(5), transfer.TypeCreditP), company, company),
	}

	// Balance over the same rows: credits minus debits, self-transfers net out.
	balance := types.Hours(2)

	sum := types.ZeroValue
	for _, row := range statement.Build(rows, viewpoint) {
		sum = sum.Add(row.Volume)
	}
	if !sum.Equal(balance) {
		t.Errorf("statement sum %v disagrees with balance %v", sum, balance)
	}
}

func TestBuildEmpty(t *testing.T) {
	st := statement.Build(nil, id.NewAccountID())
	if st == nil {
		t.Fatal("expected empty statement, got nil")
	}
	if len(st) != 0 {
		t.Errorf("expected 0 rows, got %d", len(st))
	}
}

func TestConstructPlotData(t *testing.T) {
	member := account.NewMember("Ada")
	company := account.NewCompany("Bakery")
	viewpoint := member.MainAccount()
	labour := company.Account(account.RoleLabour).ID
	product := company.Account(account.RoleProduct).ID

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []transfer.Joined{
		joined(*transfer.New(base, labour, viewpoint, types.Hours(8), transfer.TypeWorkCertificates), company, member),
		joined(*transfer.New(base.Add(time.Hour), viewpoint, product, types.Hours(2), transfer.TypePrivateConsumption), member, company),
		joined(*transfer.New(base.Add(2*time.Hour), labour, viewpoint, types.MustParse("4.5"), transfer.TypeWorkCertificates), company, member),
	}

	// Build returns date descending; the plot must re-sort ascending.
	data := statement.ConstructPlotData(statement.Build(rows, viewpoint))

	if len(data.Timestamps) != 3 || len(data.AccumulatedVolumes) != 3 {
		t.Fatalf("expected 3 points, got %d/%d", len(data.Timestamps), len(data.AccumulatedVolumes))
	}

	want := []types.Value{types.Hours(8), types.Hours(6), types.MustParse("10.5")}
	for i, w := range want {
		if !data.AccumulatedVolumes[i].Equal(w) {
			t.Errorf("point %d: got %v, want %v", i, data.AccumulatedVolumes[i], w)
		}
	}
	for i := 1; i < len(data.Timestamps); i++ {
		if data.Timestamps[i].Before(data.Timestamps[i-1]) {
			t.Error("timestamps must be ascending")
		}
	}

	// The final accumulated volume is the account balance.
	if !data.AccumulatedVolumes[2].Equal(types.MustParse("10.5")) {
		t.Errorf("final point should equal the balance, got %v", data.AccumulatedVolumes[2])
	}
}

func TestConstructPlotDataEmpty(t *testing.T) {
	data := statement.ConstructPlotData(nil)
	if data.Timestamps == nil || data.AccumulatedVolumes == nil {
		t.Fatal("expected empty non-nil series")
	}
	if len(data.Timestamps) != 0 {
		t.Errorf("expected 0 points, got %d", len(data.Timestamps))
	}
}
