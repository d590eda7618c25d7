package audithook

// Action constants for audit events.
const (
	// Owner actions
	ActionOwnerRegistered = "owner.registered"

	// Transfer actions
	ActionTransferRecorded    = "transfer.recorded"
	ActionCompensationCreated = "compensation.created"

	// Plan actions
	ActionPlanCreated        = "plan.created"
	ActionPlanCreditGranted  = "plan.credit_granted"
	ActionCooperationChanged = "cooperation.changed"
)

// Resource constants for audit events.
const (
	ResourceOwner       = "owner"
	ResourceTransfer    = "transfer"
	ResourcePlan        = "plan"
	ResourceCooperation = "cooperation"
)

// Category constants for audit events.
const (
	CategoryAccounting   = "accounting"
	CategoryCompensation = "compensation"
	CategoryPlanning     = "planning"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
