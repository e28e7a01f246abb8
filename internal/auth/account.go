// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Input validation constraints.
const (
	MinPasswordLength   = 6
	MaxEmployeeIDLength = 64
	MaxNameLength       = 120
)

// NormalizeEmployeeID canonicalizes an employee ID for storage and lookup.
// The case policy is uppercase: storage holds the normalized form and every
// flow normalizes before querying, so "emp-001" and "EMP-001" are the same
// account.
func NormalizeEmployeeID(employeeID string) string {
	return strings.ToUpper(strings.TrimSpace(employeeID))
}

// Account represents an employee credential record.
type Account struct {
	ID           ulid.ULID
	EmployeeID   string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile is the public view of an account. It deliberately has no
// password-hash field; the hash never leaves the auth package boundary.
type Profile struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
}

// Profile returns the account's public fields.
func (a *Account) Profile() Profile {
	return Profile{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID,
		Name:       a.Name,
	}
}

// NewAccount creates a validated Account with a normalized employee ID.
// The password hash must already be produced by a PasswordHasher.
func NewAccount(employeeID, name, passwordHash string) (*Account, error) {
	employeeID = NormalizeEmployeeID(employeeID)
	if err := ValidateEmployeeID(employeeID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, oops.Code("AUTH_VALIDATION").Errorf("name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return nil, oops.Code("AUTH_VALIDATION").
			With("max", MaxNameLength).
			Errorf("name must be at most %d characters", MaxNameLength)
	}
	if passwordHash == "" {
		return nil, oops.Code("AUTH_VALIDATION").Errorf("password hash cannot be empty")
	}

	now := time.Now()
	return &Account{
		ID:           ulid.Make(),
		EmployeeID:   employeeID,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ValidateEmployeeID validates an already-normalized employee ID.
func ValidateEmployeeID(employeeID string) error {
	if employeeID == "" {
		return oops.Code("AUTH_VALIDATION").Errorf("employee ID cannot be empty")
	}
	if len(employeeID) > MaxEmployeeIDLength {
		return oops.Code("AUTH_VALIDATION").
			With("max", MaxEmployeeIDLength).
			Errorf("employee ID must be at most %d characters", MaxEmployeeIDLength)
	}
	return nil
}

// ValidatePassword validates a plaintext password against the policy.
func ValidatePassword(password string) error {
	if password == "" {
		return oops.Code("AUTH_VALIDATION").Errorf("password cannot be empty")
	}
	if len(password) < MinPasswordLength {
		return oops.Code("AUTH_VALIDATION").
			With("min", MinPasswordLength).
			Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// AccountRepository manages account persistence.
type AccountRepository interface {
	// Create stores a new account. A uniqueness violation on the employee ID
	// is reported as ErrDuplicateEmployeeID.
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by its surrogate ID.
	GetByID(ctx context.Context, id ulid.ULID) (*Account, error)

	// GetByEmployeeID retrieves an account by its normalized employee ID.
	// Returns ErrNotFound if no such account exists.
	GetByEmployeeID(ctx context.Context, employeeID string) (*Account, error)

	// UpdatePassword updates only the password hash for an account.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error
}
