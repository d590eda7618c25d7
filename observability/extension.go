// Package observability provides a metrics extension for Ledger that records
// lifecycle event counts via a MetricFactory.
package observability

import (
	"context"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/plugin"
	"github.com/coopnet/ledger/transfer"
	"github.com/coopnet/ledger/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                 = (*MetricsExtension)(nil)
	_ plugin.OnInit                 = (*MetricsExtension)(nil)
	_ plugin.OnOwnerRegistered      = (*MetricsExtension)(nil)
	_ plugin.OnTransferRecorded     = (*MetricsExtension)(nil)
	_ plugin.OnCompensationTransfer = (*MetricsExtension)(nil)
	_ plugin.OnStatementBuilt       = (*MetricsExtension)(nil)
	_ plugin.OnPlanCreated          = (*MetricsExtension)(nil)
	_ plugin.OnCooperationChanged   = (*MetricsExtension)(nil)
	_ plugin.OnPriceCalculated      = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Ledger plugin to automatically track accounting metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Owner metrics
	OwnersRegistered Counter

	// Transfer metrics
	TransfersRecorded Counter
	TransferVolume    Histogram

	// Compensation metrics
	CompensationToCoop    Counter
	CompensationToCompany Counter
	CompensationVolume    Histogram

	// Statement metrics
	StatementsBuilt Counter
	StatementRows   Histogram

	// Plan and pricing metrics
	PlansCreated        Counter
	CooperationChanges  Counter
	PricesCalculated    Counter
	CooperativePriceVal Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Owner metrics
		OwnersRegistered: factory.Counter("ledger.owner.registered"),

		// Transfer metrics
		TransfersRecorded: factory.Counter("ledger.transfer.recorded"),
		TransferVolume:    factory.Histogram("ledger.transfer.value"),

		// Compensation metrics
		CompensationToCoop:    factory.Counter("ledger.compensation.to_coop"),
		CompensationToCompany: factory.Counter("ledger.compensation.to_company"),
		CompensationVolume:    factory.Histogram("ledger.compensation.value"),

		// Statement metrics
		StatementsBuilt: factory.Counter("ledger.statement.built"),
		StatementRows:   factory.Histogram("ledger.statement.rows"),

		// Plan and pricing metrics
		PlansCreated:        factory.Counter("ledger.plan.created"),
		CooperationChanges:  factory.Counter("ledger.cooperation.changed"),
		PricesCalculated:    factory.Counter("ledger.price.calculated"),
		CooperativePriceVal: factory.Histogram("ledger.price.per_unit"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// OnOwnerRegistered implements plugin.OnOwnerRegistered.
func (m *MetricsExtension) OnOwnerRegistered(_ context.Context, _ *account.Owner) error {
	m.OwnersRegistered.Inc()
	return nil
}

// OnTransferRecorded implements plugin.OnTransferRecorded.
func (m *MetricsExtension) OnTransferRecorded(_ context.Context, t *transfer.Transfer) error {
	m.TransfersRecorded.Inc()
	m.TransferVolume.Observe(t.Value.Float64())
	return nil
}

// OnCompensationTransfer implements plugin.OnCompensationTransfer.
func (m *MetricsExtension) OnCompensationTransfer(_ context.Context, t *transfer.Transfer) error {
	switch t.Type {
	case transfer.TypeCompensationForCoop:
		m.CompensationToCoop.Inc()
	case transfer.TypeCompensationForCompany:
		m.CompensationToCompany.Inc()
	}
	m.CompensationVolume.Observe(t.Value.Float64())
	return nil
}

// OnStatementBuilt implements plugin.OnStatementBuilt.
func (m *MetricsExtension) OnStatementBuilt(_ context.Context, _ id.AccountID, rows int) error {
	m.StatementsBuilt.Inc()
	m.StatementRows.Observe(float64(rows))
	return nil
}

// OnPlanCreated implements plugin.OnPlanCreated.
func (m *MetricsExtension) OnPlanCreated(_ context.Context, _ *plan.Plan) error {
	m.PlansCreated.Inc()
	return nil
}

// OnCooperationChanged implements plugin.OnCooperationChanged.
func (m *MetricsExtension) OnCooperationChanged(_ context.Context, _ id.PlanID, _ id.CooperationID) error {
	m.CooperationChanges.Inc()
	return nil
}

// OnPriceCalculated implements plugin.OnPriceCalculated.
func (m *MetricsExtension) OnPriceCalculated(_ context.Context, _ id.PlanID, price types.Value) error {
	m.PricesCalculated.Inc()
	m.CooperativePriceVal.Observe(price.Float64())
	return nil
}
