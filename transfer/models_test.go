package transfer_test

import (
	"testing"
	"time"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

func TestTypeWhitelist(t *testing.T) {
	for _, typ := range transfer.AllTypes() {
		if !typ.Valid() {
			t.Errorf("whitelisted type %q reported invalid", typ)
		}
	}

	invalid := []transfer.Type{"", "refund", "credit", "CREDIT_P", "work certificates"}
	for _, typ := range invalid {
		if typ.Valid() {
			t.Errorf("type %q should be invalid", typ)
		}
	}

	if len(transfer.AllTypes()) != 13 {
		t.Errorf("expected 13 transfer types, got %d", len(transfer.AllTypes()))
	}
}

func TestSignedVolume(t *testing.T) {
	debit := id.NewAccountID()
	credit := id.NewAccountID()
	other := id.NewAccountID()

	tr := transfer.New(time.Now(), debit, credit, types.Hours(5), transfer.TypeWorkCertificates)

	tests := []struct {
		name      string
		viewpoint id.AccountID
		expected  types.Value
	}{
		{"debit side is negative", debit, types.Hours(-5)},
		{"credit side is positive", credit, types.Hours(5)},
		{"uninvolved account is positive", other, types.Hours(5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.SignedVolume(tt.viewpoint)
			if !got.Equal(tt.expected) {
				t.Errorf("got %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSignedVolumeZeroValue(t *testing.T) {
	debit := id.NewAccountID()
	tr := transfer.New(time.Now(), debit, id.NewAccountID(), types.ZeroValue, transfer.TypeTaxes)

	if !tr.SignedVolume(debit).IsZero() {
		t.Error("zero-value transfer should yield zero signed volume")
	}
}

func TestSignedVolumeSelfTransfer(t *testing.T) {
	// A transfer from an account to itself moves nothing, so it must not
	// show up as a signed movement either. The account balance ignores it
	// and the statement has to agree.
	acct := id.NewAccountID()
	tr := transfer.New(time.Now(), acct, acct, types.Hours(5), transfer.TypeCreditP)

	if got := tr.SignedVolume(acct); !got.IsZero() {
		t.Errorf("self-transfer signed volume: got %v, want 0", got)
	}
	if got := tr.SignedVolume(id.NewAccountID()); !got.IsZero() {
		t.Errorf("self-transfer from outside viewpoint: got %v, want 0", got)
	}
}

func TestSelfTransfer(t *testing.T) {
	acct := id.NewAccountID()
	self := transfer.New(time.Now(), acct, acct, types.Hours(1), transfer.TypeCreditP)
	if !self.SelfTransfer() {
		t.Error("expected self-transfer")
	}

	normal := transfer.New(time.Now(), acct, id.NewAccountID(), types.Hours(1), transfer.TypeCreditP)
	if normal.SelfTransfer() {
		t.Error("expected non-self transfer")
	}
}

func TestCounterpartyOf(t *testing.T) {
	debtor := account.NewCompany("Debtor Co")
	creditor := account.NewCompany("Creditor Co")
	debitAcct := debtor.Account(account.RoleProduct).ID
	creditAcct := creditor.Account(account.RoleLabour).ID

	j := transfer.Joined{
		Transfer: *transfer.New(time.Now(), debitAcct, creditAcct, types.Hours(3), transfer.TypeTaxes),
		Debtor:   *debtor,
		Creditor: *creditor,
	}

	if got := j.CounterpartyOf(debitAcct); got.ID.String() != creditor.ID.String() {
		t.Errorf("debit viewpoint: got %s, want creditor %s", got.ID, creditor.ID)
	}
	if got := j.CounterpartyOf(creditAcct); got.ID.String() != debtor.ID.String() {
		t.Errorf("credit viewpoint: got %s, want debtor %s", got.ID, debtor.ID)
	}
}

func TestNewFillsID(t *testing.T) {
	tr := transfer.New(time.Now(), id.NewAccountID(), id.NewAccountID(), types.Hours(1), transfer.TypeCreditA)
	if tr.ID.IsNil() {
		t.Error("New should assign a transfer id")
	}
	if tr.ID.Prefix() != id.PrefixTransfer {
		t.Errorf("expected tfr prefix, got %q", tr.ID.Prefix())
	}
}
