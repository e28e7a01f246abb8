// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

// Package postgres provides PostgreSQL implementations of auth repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/staffpass/staffpass/internal/auth"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool and
// pgx.Tx. Repositories are built over it so the same implementation runs
// against the pool directly or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner is implemented by *pgxpool.Pool and pgxmock pools.
type beginner interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork implements auth.UnitOfWork over a pgx transaction. The
// repositories handed to fn share one transaction, so issuance's
// delete-then-insert and redemption's update-then-delete commit or roll
// back as a single logical unit.
type UnitOfWork struct {
	db beginner
}

// NewUnitOfWork creates a UnitOfWork over a pool.
func NewUnitOfWork(db beginner) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Within runs fn inside a transaction. Any error from fn rolls back every
// write; commit errors are returned to the caller.
func (u *UnitOfWork) Within(ctx context.Context, fn func(accounts auth.AccountRepository, resets auth.ResetCredentialRepository) error) error {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer func() {
		// No-op when the transaction already committed.
		_ = tx.Rollback(ctx) //nolint:errcheck // Rollback after commit is a harmless ErrTxClosed
	}()

	if err := fn(NewAccountRepository(tx), NewResetCredentialRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ auth.UnitOfWork = (*UnitOfWork)(nil)
