// Package transfer defines the immutable value-transfer record that is the
// sole source of truth for all account balances.
package transfer

import (
	"time"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/types"
)

// Type categorizes the economic meaning of a transfer. The set is closed:
// persisting a value outside this whitelist is rejected by every store
// backend, which guards against silently writing an un-migrated category.
type Type string

const (
	TypeCreditP       Type = "credit_p"        // Plan credit for fixed means of production
	TypeCreditR       Type = "credit_r"        // Plan credit for raw materials
	TypeCreditA       Type = "credit_a"        // Plan credit for labour
	TypeCreditPublicP Type = "credit_public_p" // Public-service plan credit, fixed means
	TypeCreditPublicR Type = "credit_public_r" // Public-service plan credit, raw materials
	TypeCreditPublicA Type = "credit_public_a" // Public-service plan credit, labour

	TypePrivateConsumption     Type = "private_consumption"      // Member consumes a product
	TypeProductiveConsumptionP Type = "productive_consumption_p" // Company consumes fixed means
	TypeProductiveConsumptionR Type = "productive_consumption_r" // Company consumes raw materials

	TypeCompensationForCoop    Type = "compensation_for_coop"    // Over-efficient plan pays into the pool
	TypeCompensationForCompany Type = "compensation_for_company" // Pool refunds an under-efficient plan

	TypeWorkCertificates Type = "work_certificates" // Wage payment to a member
	TypeTaxes            Type = "taxes"             // Contribution to public services
)

// types is the closed whitelist used for validation.
var validTypes = map[Type]struct{}{
	TypeCreditP:                {},
	TypeCreditR:                {},
	TypeCreditA:                {},
	TypeCreditPublicP:          {},
	TypeCreditPublicR:          {},
	TypeCreditPublicA:          {},
	TypePrivateConsumption:     {},
	TypeProductiveConsumptionP: {},
	TypeProductiveConsumptionR: {},
	TypeCompensationForCoop:    {},
	TypeCompensationForCompany: {},
	TypeWorkCertificates:       {},
	TypeTaxes:                  {},
}

// Valid reports whether t is part of the closed transfer-type whitelist.
func (t Type) Valid() bool {
	_, ok := validTypes[t]
	return ok
}

// AllTypes returns the closed transfer-type whitelist.
func AllTypes() []Type {
	return []Type{
		TypeCreditP, TypeCreditR, TypeCreditA,
		TypeCreditPublicP, TypeCreditPublicR, TypeCreditPublicA,
		TypePrivateConsumption,
		TypeProductiveConsumptionP, TypeProductiveConsumptionR,
		TypeCompensationForCoop, TypeCompensationForCompany,
		TypeWorkCertificates, TypeTaxes,
	}
}

// Transfer is an immutable record of value moving from a debit account to a
// credit account. Transfers are only ever appended — never mutated or deleted.
// Self-transfers (debit == credit) are permitted and represent an internal
// artifact of a plan's own credit/debit bookkeeping.
type Transfer struct {
	ID            id.TransferID `json:"id"`
	Date          time.Time     `json:"date"`
	DebitAccount  id.AccountID  `json:"debit_account"`
	CreditAccount id.AccountID  `json:"credit_account"`
	Value         types.Value   `json:"value"` // non-negative
	Type          Type          `json:"type"`
}

// New creates a transfer record dated at the given time.
func New(date time.Time, debit, credit id.AccountID, value types.Value, typ Type) *Transfer {
	return &Transfer{
		ID:            id.NewTransferID(),
		Date:          date,
		DebitAccount:  debit,
		CreditAccount: credit,
		Value:         value,
		Type:          typ,
	}
}

// IsDebitFor reports whether the viewpoint account is the debit side of the
// transfer.
func (t *Transfer) IsDebitFor(viewpoint id.AccountID) bool {
	return t.DebitAccount.String() == viewpoint.String()
}

// SignedVolume returns the transfer's value relative to the viewpoint
// account: negated when the viewpoint is the debit side, unchanged otherwise.
// A self-transfer contributes nothing to the viewpoint's balance, so its
// signed volume is zero. A zero-value transfer likewise yields zero, not an
// omission. The transfer type plays no role in the sign.
func (t *Transfer) SignedVolume(viewpoint id.AccountID) types.Value {
	if t.SelfTransfer() {
		return types.ZeroValue
	}
	if t.IsDebitFor(viewpoint) {
		return t.Value.Neg()
	}
	return t.Value
}

// SelfTransfer reports whether debtor and creditor are the same account.
func (t *Transfer) SelfTransfer() bool {
	return t.DebitAccount.String() == t.CreditAccount.String()
}

// Joined pairs a transfer with the resolved owners of both of its accounts.
// Stores produce Joined rows in a single set-based read so that one statement
// build observes one consistent snapshot. Joined owners are guaranteed to
// carry ID, Kind and Name; their account sets may be empty.
type Joined struct {
	Transfer Transfer
	Debtor   account.Owner
	Creditor account.Owner
}

// CounterpartyOf returns the owner on the opposite side of the transfer from
// the viewpoint account: the creditor when the viewpoint is the debit side,
// the debtor otherwise.
func (j *Joined) CounterpartyOf(viewpoint id.AccountID) *account.Owner {
	if j.Transfer.IsDebitFor(viewpoint) {
		return &j.Creditor
	}
	return &j.Debtor
}
