package id_test

import (
	"strings"
	"testing"

	"github.com/coopnet/ledger/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"TransferID", id.NewTransferID, "tfr_"},
		{"AccountID", id.NewAccountID, "acct_"},
		{"MemberID", id.NewMemberID, "mbr_"},
		{"CompanyID", id.NewCompanyID, "cmp_"},
		{"CooperationID", id.NewCooperationID, "coop_"},
		{"SocialAccountingID", id.NewSocialAccountingID, "soc_"},
		{"PlanID", id.NewPlanID, "plan_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixTransfer)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixTransfer {
		t.Errorf("expected prefix %q, got %q", id.PrefixTransfer, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"TransferID", id.NewTransferID, id.ParseTransferID},
		{"AccountID", id.NewAccountID, id.ParseAccountID},
		{"MemberID", id.NewMemberID, id.ParseMemberID},
		{"CompanyID", id.NewCompanyID, id.ParseCompanyID},
		{"CooperationID", id.NewCooperationID, id.ParseCooperationID},
		{"SocialAccountingID", id.NewSocialAccountingID, id.ParseSocialAccountingID},
		{"PlanID", id.NewPlanID, id.ParsePlanID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseTransferID rejects acct_", id.NewAccountID().String(), id.ParseTransferID},
		{"ParseAccountID rejects mbr_", id.NewMemberID().String(), id.ParseAccountID},
		{"ParseMemberID rejects cmp_", id.NewCompanyID().String(), id.ParseMemberID},
		{"ParseCompanyID rejects coop_", id.NewCooperationID().String(), id.ParseCompanyID},
		{"ParseCooperationID rejects soc_", id.NewSocialAccountingID().String(), id.ParseCooperationID},
		{"ParseSocialAccountingID rejects plan_", id.NewPlanID().String(), id.ParseSocialAccountingID},
		{"ParsePlanID rejects tfr_", id.NewTransferID().String(), id.ParsePlanID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseAny(t *testing.T) {
	ids := []id.ID{
		id.NewTransferID(),
		id.NewAccountID(),
		id.NewMemberID(),
		id.NewCompanyID(),
		id.NewCooperationID(),
		id.NewSocialAccountingID(),
		id.NewPlanID(),
	}

	for _, i := range ids {
		t.Run(i.String(), func(t *testing.T) {
			parsed, err := id.ParseAny(i.String())
			if err != nil {
				t.Fatalf("ParseAny(%q) failed: %v", i.String(), err)
			}
			if parsed.String() != i.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), i.String())
			}
		})
	}
}

func TestParseWithPrefix(t *testing.T) {
	i := id.NewTransferID()
	parsed, err := id.ParseWithPrefix(i.String(), id.PrefixTransfer)
	if err != nil {
		t.Fatalf("ParseWithPrefix failed: %v", err)
	}
	if parsed.String() != i.String() {
		t.Errorf("mismatch: %q != %q", parsed.String(), i.String())
	}

	_, err = id.ParseWithPrefix(i.String(), id.PrefixAccount)
	if err == nil {
		t.Error("expected error for wrong prefix")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := id.Parse("")
	if err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewPlanID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	data, err = nilID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(nil) failed: %v", err)
	}
	var restored2 id.ID
	if err := restored2.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !restored2.IsNil() {
		t.Error("expected nil after round-trip of nil ID")
	}
}

func TestValueScan(t *testing.T) {
	original := id.NewAccountID()
	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned id.ID
	if scanErr := scanned.Scan(val); scanErr != nil {
		t.Fatalf("Scan failed: %v", scanErr)
	}
	if scanned.String() != original.String() {
		t.Errorf("mismatch: %q != %q", scanned.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	val, err = nilID.Value()
	if err != nil {
		t.Fatalf("Value(nil) failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil value for nil ID, got %v", val)
	}

	var scanned2 id.ID
	if err := scanned2.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !scanned2.IsNil() {
		t.Error("expected nil after scan of nil")
	}
}

func TestUniqueness(t *testing.T) {
	a := id.NewTransferID()
	b := id.NewTransferID()
	if a.String() == b.String() {
		t.Errorf("two consecutive NewTransferID() calls returned the same ID: %q", a.String())
	}
}
