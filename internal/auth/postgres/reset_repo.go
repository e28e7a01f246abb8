// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/staffpass/staffpass/internal/auth"
)

// ResetCredentialRepository implements auth.ResetCredentialRepository using PostgreSQL.
type ResetCredentialRepository struct {
	db Querier
}

// NewResetCredentialRepository creates a new ResetCredentialRepository.
// db may be a pool or an open transaction.
func NewResetCredentialRepository(db Querier) *ResetCredentialRepository {
	return &ResetCredentialRepository{db: db}
}

// Create stores a new reset credential.
func (r *ResetCredentialRepository) Create(ctx context.Context, reset *auth.ResetCredential) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_resets (id, account_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, reset.ID.String(), reset.AccountID.String(), reset.TokenHash, reset.ExpiresAt, reset.CreatedAt)
	if err != nil {
		return oops.Code("RESET_CREATE_FAILED").
			With("operation", "insert password_reset").
			With("account_id", reset.AccountID.String()).
			Wrap(err)
	}
	return nil
}

// GetByAccount retrieves the reset credential for an account. Issuance keeps
// at most one row per account; the ORDER BY is belt-and-suspenders for reads
// that race a replacement.
func (r *ResetCredentialRepository) GetByAccount(ctx context.Context, accountID ulid.ULID) (*auth.ResetCredential, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, account_id, token_hash, expires_at, created_at
		FROM password_resets
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, accountID.String())

	reset, err := r.scanReset(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RESET_NOT_FOUND").
			With("account_id", accountID.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return reset, nil
}

// DeleteByAccount removes all reset credentials for an account.
func (r *ResetCredentialRepository) DeleteByAccount(ctx context.Context, accountID ulid.ULID) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM password_resets WHERE account_id = $1
	`, accountID.String())
	if err != nil {
		return oops.Code("RESET_DELETE_BY_ACCOUNT_FAILED").
			With("operation", "delete password_resets by account").
			With("account_id", accountID.String()).
			Wrap(err)
	}
	// No ErrNotFound if no rows deleted - that's a valid state
	return nil
}

// DeleteExpired removes all expired reset credentials and returns the count.
func (r *ResetCredentialRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.Exec(ctx, `
		DELETE FROM password_resets WHERE expires_at < $1
	`, time.Now())
	if err != nil {
		return 0, oops.Code("RESET_DELETE_EXPIRED_FAILED").
			With("operation", "delete expired password_resets").
			Wrap(err)
	}
	return result.RowsAffected(), nil
}

// scanReset scans a single row into a ResetCredential.
// Callers are responsible for handling pgx.ErrNoRows.
func (r *ResetCredentialRepository) scanReset(row pgx.Row) (*auth.ResetCredential, error) {
	var (
		idStr        string
		accountIDStr string
		tokenHash    string
		expiresAt    time.Time
		createdAt    time.Time
	)

	err := row.Scan(&idStr, &accountIDStr, &tokenHash, &expiresAt, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // Callers wrap with context-specific info
		}
		return nil, oops.Code("RESET_SCAN_FAILED").
			With("operation", "scan password_reset").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("RESET_INVALID_ID").
			With("operation", "parse reset id").
			With("id", idStr).
			Wrap(err)
	}

	accountID, err := ulid.Parse(accountIDStr)
	if err != nil {
		return nil, oops.Code("RESET_INVALID_ACCOUNT_ID").
			With("operation", "parse account id").
			With("account_id", accountIDStr).
			Wrap(err)
	}

	return &auth.ResetCredential{
		ID:        id,
		AccountID: accountID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.ResetCredentialRepository = (*ResetCredentialRepository)(nil)
