package account_test

import (
	"testing"

	"github.com/coopnet/ledger/account"
)

func TestOwnerAccountSets(t *testing.T) {
	tests := []struct {
		name     string
		owner    *account.Owner
		kind     account.Kind
		accounts int
	}{
		{"member", account.NewMember("Ada"), account.KindMember, 1},
		{"company", account.NewCompany("Bakery"), account.KindCompany, 4},
		{"cooperation", account.NewCooperation("Bread Coop"), account.KindCooperation, 1},
		{"social accounting", account.NewSocialAccounting("Office"), account.KindSocialAccounting, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.owner.Kind != tt.kind {
				t.Errorf("kind: got %q, want %q", tt.owner.Kind, tt.kind)
			}
			if len(tt.owner.Accounts) != tt.accounts {
				t.Errorf("accounts: got %d, want %d", len(tt.owner.Accounts), tt.accounts)
			}
		})
	}
}

func TestCompanyRoles(t *testing.T) {
	c := account.NewCompany("Bakery")
	for _, role := range account.CompanyRoles {
		if c.Account(role) == nil {
			t.Errorf("company missing %q account", role)
		}
	}
	if c.Account(account.RoleMain) != nil {
		t.Error("company should have no main account")
	}
}

func TestMainAccountPanicsForCompany(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for company main account")
		}
	}()

	_ = account.NewCompany("Bakery").MainAccount()
}

func TestOwns(t *testing.T) {
	m := account.NewMember("Ada")
	other := account.NewMember("Grace")

	if !m.Owns(m.MainAccount()) {
		t.Error("owner should own its own account")
	}
	if m.Owns(other.MainAccount()) {
		t.Error("owner should not own another owner's account")
	}
}

func TestPartyAnonymizesMembers(t *testing.T) {
	m := account.NewMember("Ada")
	p := m.Party()

	if !p.IsAnonymous() {
		t.Error("member party should be anonymous")
	}
	if p.ID != account.AnonymousPartyID {
		t.Errorf("id: got %q, want %q", p.ID, account.AnonymousPartyID)
	}
	if p.Name != account.AnonymousPartyName {
		t.Errorf("name: got %q, want %q", p.Name, account.AnonymousPartyName)
	}
	if p.Kind != account.KindMember {
		t.Errorf("kind: got %q, want member", p.Kind)
	}
}

func TestPartyExposesNonMembers(t *testing.T) {
	tests := []struct {
		name  string
		owner *account.Owner
	}{
		{"company", account.NewCompany("Bakery")},
		{"cooperation", account.NewCooperation("Bread Coop")},
		{"social accounting", account.NewSocialAccounting("Office")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.owner.Party()
			if p.IsAnonymous() {
				t.Error("non-member party should not be anonymous")
			}
			if p.ID != tt.owner.ID.String() {
				t.Errorf("id: got %q, want %q", p.ID, tt.owner.ID.String())
			}
			if p.Name != tt.owner.Name {
				t.Errorf("name: got %q, want %q", p.Name, tt.owner.Name)
			}
		})
	}
}

func TestPartyPanicsOnUnknownKind(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for unknown owner kind")
		}
	}()

	o := &account.Owner{Kind: account.Kind("robot")}
	_ = o.Party()
}
