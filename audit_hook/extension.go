// Package audithook bridges Ledger lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on any
// particular audit backend. Callers inject a RecorderFunc adapter that bridges
// to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coopnet/ledger/account"
	"github.com/coopnet/ledger/id"
	"github.com/coopnet/ledger/plan"
	"github.com/coopnet/ledger/plugin"
	"github.com/coopnet/ledger/transfer"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                 = (*Extension)(nil)
	_ plugin.OnOwnerRegistered      = (*Extension)(nil)
	_ plugin.OnTransferRecorded     = (*Extension)(nil)
	_ plugin.OnCompensationTransfer = (*Extension)(nil)
	_ plugin.OnPlanCreated          = (*Extension)(nil)
	_ plugin.OnCooperationChanged   = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement. It is defined
// locally so that the audit_hook package does not import any backend module —
// callers inject the concrete recorder at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Ledger lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Owner lifecycle hooks
// ──────────────────────────────────────────────────

// OnOwnerRegistered implements plugin.OnOwnerRegistered.
func (e *Extension) OnOwnerRegistered(ctx context.Context, o *account.Owner) error {
	return e.record(ctx, ActionOwnerRegistered, SeverityInfo, OutcomeSuccess,
		ResourceOwner, o.ID.String(), CategoryAccounting, nil,
		"kind", string(o.Kind),
		"accounts", len(o.Accounts),
	)
}

// ──────────────────────────────────────────────────
// Transfer lifecycle hooks
// ──────────────────────────────────────────────────

// OnTransferRecorded implements plugin.OnTransferRecorded.
// Plan credit transfers get their own action so audit consumers can follow
// plan approvals without parsing transfer types.
func (e *Extension) OnTransferRecorded(ctx context.Context, t *transfer.Transfer) error {
	action := ActionTransferRecorded
	switch t.Type {
	case transfer.TypeCreditP, transfer.TypeCreditR, transfer.TypeCreditA,
		transfer.TypeCreditPublicP, transfer.TypeCreditPublicR, transfer.TypeCreditPublicA:
		action = ActionPlanCreditGranted
	}
	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceTransfer, t.ID.String(), CategoryAccounting, nil,
		"type", string(t.Type),
		"value", t.Value.String(),
		"debit_account", t.DebitAccount.String(),
		"credit_account", t.CreditAccount.String(),
	)
}

// OnCompensationTransfer implements plugin.OnCompensationTransfer.
func (e *Extension) OnCompensationTransfer(ctx context.Context, t *transfer.Transfer) error {
	return e.record(ctx, ActionCompensationCreated, SeverityInfo, OutcomeSuccess,
		ResourceTransfer, t.ID.String(), CategoryCompensation, nil,
		"type", string(t.Type),
		"value", t.Value.String(),
	)
}

// ──────────────────────────────────────────────────
// Plan lifecycle hooks
// ──────────────────────────────────────────────────

// OnPlanCreated implements plugin.OnPlanCreated.
func (e *Extension) OnPlanCreated(ctx context.Context, p *plan.Plan) error {
	return e.record(ctx, ActionPlanCreated, SeverityInfo, OutcomeSuccess,
		ResourcePlan, p.ID.String(), CategoryPlanning, nil,
		"planner_id", p.PlannerID.String(),
		"public_service", p.PublicService,
	)
}

// OnCooperationChanged implements plugin.OnCooperationChanged.
func (e *Extension) OnCooperationChanged(ctx context.Context, planID id.PlanID, coopID id.CooperationID) error {
	event := "joined"
	if coopID.IsNil() {
		event = "left"
	}
	return e.record(ctx, ActionCooperationChanged, SeverityInfo, OutcomeSuccess,
		ResourcePlan, planID.String(), CategoryPlanning, nil,
		"event", event,
		"cooperation_id", coopID.String(),
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
