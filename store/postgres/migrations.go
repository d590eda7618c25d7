package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Ledger store (PostgreSQL).
var Migrations = migrate.NewGroup("ledger")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_ledger_transfers",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_transfers (
    id             TEXT PRIMARY KEY,
    date           TIMESTAMPTZ NOT NULL DEFAULT now(),
    debit_account  TEXT NOT NULL,
    credit_account TEXT NOT NULL,
    value          TEXT NOT NULL DEFAULT '0' CHECK ((value)::numeric >= 0),
    type           TEXT NOT NULL CHECK (type IN (
        'credit_p', 'credit_r', 'credit_a',
        'credit_public_p', 'credit_public_r', 'credit_public_a',
        'private_consumption',
        'productive_consumption_p', 'productive_consumption_r',
        'compensation_for_coop', 'compensation_for_company',
        'work_certificates', 'taxes'
    ))
);

CREATE INDEX IF NOT EXISTS idx_ledger_transfers_debit ON ledger_transfers (debit_account, date);
CREATE INDEX IF NOT EXISTS idx_ledger_transfers_credit ON ledger_transfers (credit_account, date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_transfers`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_owners",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_owners (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL CHECK (kind IN ('member', 'company', 'cooperation', 'social_accounting')),
    name       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ledger_accounts (
    id         TEXT PRIMARY KEY,
    owner_id   TEXT NOT NULL REFERENCES ledger_owners (id),
    owner_kind TEXT NOT NULL DEFAULT '',
    owner_name TEXT NOT NULL DEFAULT '',
    role       TEXT NOT NULL DEFAULT 'main',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_ledger_accounts_owner ON ledger_accounts (owner_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS ledger_accounts;
DROP TABLE IF EXISTS ledger_owners;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_plans",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_plans (
    id              TEXT PRIMARY KEY,
    planner_id      TEXT NOT NULL,
    product_name    TEXT NOT NULL DEFAULT '',
    means_cost      TEXT NOT NULL DEFAULT '0',
    resource_cost   TEXT NOT NULL DEFAULT '0',
    labour_cost     TEXT NOT NULL DEFAULT '0',
    amount_produced BIGINT NOT NULL DEFAULT 0,
    public_service  BOOLEAN NOT NULL DEFAULT FALSE,
    cooperation_id  TEXT NOT NULL DEFAULT '',
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_ledger_plans_planner ON ledger_plans (planner_id);
CREATE INDEX IF NOT EXISTS idx_ledger_plans_coop ON ledger_plans (cooperation_id) WHERE cooperation_id != '';
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_plans`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_ledger_cooperations",
			Version: "20240101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS ledger_cooperations (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    account_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS ledger_cooperations`)
				return err
			},
		},
	)
}
