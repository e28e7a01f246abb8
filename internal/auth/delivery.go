// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth

import "context"

// TokenDelivery hands a plaintext reset token to an out-of-band channel
// (email, SMS, or a log sink in development). The core guarantees Deliver is
// invoked exactly once per successful issuance with the correct plaintext;
// the token never appears in an API response.
type TokenDelivery interface {
	Deliver(ctx context.Context, employeeID, token string) error
}

// UnitOfWork runs fn with repositories bound to a single transaction.
// Both repositories see the same transaction; fn returning an error rolls
// back every write made through them.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(accounts AccountRepository, resets ResetCredentialRepository) error) error
}
