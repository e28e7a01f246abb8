// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Reset token configuration.
const (
	ResetTokenBytes  = 32        // 32 bytes = 64 hex chars, 256 bits of entropy
	ResetTokenExpiry = time.Hour // 1 hour expiry
)

// ResetCredential is the server-held representation of a single-use,
// time-limited password-recovery token. It stores a full-cost hash of the
// token, never the plaintext.
type ResetCredential struct {
	ID        ulid.ULID
	AccountID ulid.ULID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the reset credential has expired.
func (r *ResetCredential) IsExpired() bool {
	return r.IsExpiredAt(time.Now())
}

// IsExpiredAt returns true if the credential would be expired at the given
// time. Useful for testing with deterministic time values.
func (r *ResetCredential) IsExpiredAt(t time.Time) bool {
	return t.After(r.ExpiresAt)
}

// NewResetCredential creates a validated ResetCredential instance.
func NewResetCredential(accountID ulid.ULID, tokenHash string, expiresAt time.Time) (*ResetCredential, error) {
	if accountID.Compare(ulid.ULID{}) == 0 {
		return nil, oops.Code("RESET_INVALID_ACCOUNT").Errorf("account ID cannot be zero")
	}
	if tokenHash == "" {
		return nil, oops.Code("RESET_INVALID_HASH").Errorf("token hash cannot be empty")
	}
	if expiresAt.IsZero() {
		return nil, oops.Code("RESET_INVALID_EXPIRY").Errorf("expiry time cannot be zero")
	}

	return &ResetCredential{
		ID:        ulid.Make(),
		AccountID: accountID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GenerateResetToken creates a secure random token, hex-encoded.
// The plaintext is handed to the delivery collaborator; only a hash produced
// by the PasswordHasher is ever stored.
func GenerateResetToken() (string, error) {
	tokenBytes := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", oops.Code("RESET_TOKEN_GENERATE_FAILED").Wrap(err)
	}
	return hex.EncodeToString(tokenBytes), nil
}

// ResetCredentialRepository manages reset credential persistence.
// The at-most-one-per-account invariant is enforced by issuance running
// DeleteByAccount and Create inside one transaction.
type ResetCredentialRepository interface {
	// Create stores a new reset credential.
	Create(ctx context.Context, reset *ResetCredential) error

	// GetByAccount retrieves the reset credential for an account.
	// Returns ErrNotFound if none is on file.
	GetByAccount(ctx context.Context, accountID ulid.ULID) (*ResetCredential, error)

	// DeleteByAccount removes any reset credentials for an account.
	// Deleting when none exist is not an error.
	DeleteByAccount(ctx context.Context, accountID ulid.ULID) error

	// DeleteExpired removes all expired reset credentials and returns the
	// count of deleted records. Operator tooling only; the request path
	// checks expiry lazily at redemption time.
	DeleteExpired(ctx context.Context) (int64, error)
}
