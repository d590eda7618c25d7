package ledger

import "github.com/coopnet/ledger/types"

// Re-export common types for convenience so users don't have to import types package.

// Value is re-exported from types package.
type Value = types.Value

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Value constructors
var (
	Hours      = types.Hours
	ParseValue = types.ParseValue
	MustParse  = types.MustParse
	ZeroValue  = types.ZeroValue
	SumValues  = types.SumValues
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
