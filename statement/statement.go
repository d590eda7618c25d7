// Package statement builds per-account statements from joined transfer rows
// and derives cumulative plot series from them.
package statement

import (
	"sort"
	"time"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// AccountTransfer is one statement row: a transfer seen from the viewpoint of
// a single account, with sign, counterparty and display flags resolved.
type AccountTransfer struct {
	Transfer transfer.Transfer `json:"transfer"`

	// IsDebit reports whether the viewpoint account is the debit side.
	IsDebit bool `json:"is_debit"`

	// Volume is the transfer value signed relative to the viewpoint account.
	Volume types.Value `json:"volume"`

	// Party is the counterparty's statement-facing identity. Member
	// counterparties carry the anonymization sentinels.
	Party account.Party `json:"party"`

	// DebtorEqualsCreditor marks a self-transfer; display layers suppress
	// the counterparty entirely for these rows.
	DebtorEqualsCreditor bool `json:"debtor_equals_creditor"`
}

// Build turns joined transfer rows into statement rows for the viewpoint
// account, sorted by date descending. An empty input yields an empty
// statement.
func Build(rows []transfer.Joined, viewpoint id.AccountID) []AccountTransfer {
	out := make([]AccountTransfer, 0, len(rows))
	for i := range rows {
		t := rows[i].Transfer
		out = append(out, AccountTransfer{
			Transfer:             t,
			IsDebit:              t.IsDebitFor(viewpoint),
			Volume:               t.SignedVolume(viewpoint),
			Party:                rows[i].CounterpartyOf(viewpoint).Party(),
			DebtorEqualsCreditor: t.SelfTransfer(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Transfer.Date.After(out[j].Transfer.Date)
	})

	return out
}

// PlotData is a cumulative balance series for charting.
type PlotData struct {
	Timestamps         []time.Time   `json:"timestamps"`
	AccumulatedVolumes []types.Value `json:"accumulated_volumes"`
}

// ConstructPlotData sorts the statement rows ascending by date and returns
// the running prefix sum of their signed volumes. An empty statement yields
// empty (non-nil) series.
func ConstructPlotData(rows []AccountTransfer) PlotData {
	asc := make([]AccountTransfer, len(rows))
	copy(asc, rows)
	sort.SliceStable(asc, func(i, j int) bool {
		return asc[i].Transfer.Date.Before(asc[j].Transfer.Date)
	})

	data := PlotData{
		Timestamps:         make([]time.Time, 0, len(asc)),
		AccumulatedVolumes: make([]types.Value, 0, len(asc)),
	}

	running := types.ZeroValue
	for i := range asc {
		running = running.Add(asc[i].Volume)
		data.Timestamps = append(data.Timestamps, asc[i].Transfer.Date)
		data.AccumulatedVolumes = append(data.AccumulatedVolumes, running)
	}

	return data
}
