// Package account defines ledger accounts, their owners, and the counterparty
// identity shown on account statements.
//
// Owners form a closed tagged union: Member, Company, Cooperation and
// SocialAccounting. The single point where the owner kind matters for display
// is Party resolution, which switches exhaustively over the kind — an unknown
// kind there is a programming error and panics rather than defaulting, since
// a wrong classification would corrupt a financial statement.
package account

import (
	"fmt"

	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/types"
)

// Kind discriminates the closed set of owner variants.
type Kind string

const (
	KindMember           Kind = "member"
	KindCompany          Kind = "company"
	KindCooperation      Kind = "cooperation"
	KindSocialAccounting Kind = "social_accounting"
)

// Valid reports whether k is a known owner kind.
func (k Kind) Valid() bool {
	switch k {
	case KindMember, KindCompany, KindCooperation, KindSocialAccounting:
		return true
	}
	return false
}

// Role identifies the purpose of an account within its owner's account set.
type Role string

const (
	// RoleMain is the single account of members, cooperations and the
	// social accounting office.
	RoleMain Role = "main"

	// Company account roles. A company always holds exactly these four.
	RoleMeans     Role = "p"   // fixed means of production
	RoleResources Role = "r"   // raw materials
	RoleLabour    Role = "a"   // labour
	RoleProduct   Role = "prd" // product
)

// CompanyRoles is the fixed account set of a company, in canonical order.
var CompanyRoles = []Role{RoleMeans, RoleResources, RoleLabour, RoleProduct}

// Account is an opaque account identifier plus its role. An account stores no
// balance — balances are always derived from the transfer ledger.
type Account struct {
	ID   id.AccountID `json:"id"`
	Role Role         `json:"role"`
}

// Owner is a typed identity holding one or more accounts. The mapping from
// account to owner is fixed at registration time and never changes.
type Owner struct {
	types.Entity
	ID       id.ID     `json:"id"`
	Kind     Kind      `json:"kind"`
	Name     string    `json:"name"`
	Accounts []Account `json:"accounts"`
}

// NewMember creates a member owner with its single account.
func NewMember(name string) *Owner {
	return &Owner{
		Entity:   types.NewEntity(),
		ID:       id.NewMemberID(),
		Kind:     KindMember,
		Name:     name,
		Accounts: []Account{{ID: id.NewAccountID(), Role: RoleMain}},
	}
}

// NewCompany creates a company owner with its four accounts
// (means, resources, labour, product).
func NewCompany(name string) *Owner {
	accounts := make([]Account, 0, len(CompanyRoles))
	for _, role := range CompanyRoles {
		accounts = append(accounts, Account{ID: id.NewAccountID(), Role: role})
	}
	return &Owner{
		Entity:   types.NewEntity(),
		ID:       id.NewCompanyID(),
		Kind:     KindCompany,
		Name:     name,
		Accounts: accounts,
	}
}

// NewCooperation creates a cooperation owner with its pooled account.
func NewCooperation(name string) *Owner {
	return &Owner{
		Entity:   types.NewEntity(),
		ID:       id.NewCooperationID(),
		Kind:     KindCooperation,
		Name:     name,
		Accounts: []Account{{ID: id.NewAccountID(), Role: RoleMain}},
	}
}

// NewSocialAccounting creates the system-wide settlement owner with its
// single account.
func NewSocialAccounting(name string) *Owner {
	return &Owner{
		Entity:   types.NewEntity(),
		ID:       id.NewSocialAccountingID(),
		Kind:     KindSocialAccounting,
		Name:     name,
		Accounts: []Account{{ID: id.NewAccountID(), Role: RoleMain}},
	}
}

// Account returns the owner's account with the given role, or nil.
func (o *Owner) Account(role Role) *Account {
	for i := range o.Accounts {
		if o.Accounts[i].Role == role {
			return &o.Accounts[i]
		}
	}
	return nil
}

// MainAccount returns the owner's RoleMain account ID. It panics when called
// on a company, which has no main account (programming error).
func (o *Owner) MainAccount() id.AccountID {
	a := o.Account(RoleMain)
	if a == nil {
		panic(fmt.Sprintf("account: owner %s (%s) has no main account", o.ID, o.Kind))
	}
	return a.ID
}

// Owns reports whether the given account belongs to this owner.
func (o *Owner) Owns(acct id.AccountID) bool {
	for i := range o.Accounts {
		if o.Accounts[i].ID.String() == acct.String() {
			return true
		}
	}
	return false
}
