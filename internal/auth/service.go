// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth

import (
	"context"
	"errors"

	"github.com/samber/oops"
)

// Service provides registration and login operations.
type Service struct {
	accounts AccountRepository
	hasher   PasswordHasher
}

// NewService creates a new Service.
func NewService(accounts AccountRepository, hasher PasswordHasher) (*Service, error) {
	if accounts == nil {
		return nil, oops.Errorf("account repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	return &Service{accounts: accounts, hasher: hasher}, nil
}

// dummyPasswordHash is used when an account doesn't exist to keep the login
// code path constant-shape. Verification still runs against it so the
// response does not short-circuit on unknown employee IDs.
// This is NOT a real credential.
//
//nolint:gosec // G101: intentionally fake hash for enumeration resistance, not a credential.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Register validates input, hashes the password, and creates an account.
// The employee ID is normalized to uppercase before storage. A duplicate
// employee ID (any casing) fails with AUTH_DUPLICATE_EMPLOYEE_ID.
func (s *Service) Register(ctx context.Context, employeeID, name, password string) (Profile, error) {
	if err := ValidatePassword(password); err != nil {
		return Profile{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Profile{}, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	account, err := NewAccount(employeeID, name, hash)
	if err != nil {
		return Profile{}, err
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, ErrDuplicateEmployeeID) {
			return Profile{}, oops.Code("AUTH_DUPLICATE_EMPLOYEE_ID").
				With("employee_id", account.EmployeeID).
				Errorf("employee ID already exists")
		}
		return Profile{}, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "insert account").
			Wrap(err)
	}

	return account.Profile(), nil
}

// Authenticate verifies credentials and returns the account's public
// profile. Unknown employee IDs and wrong passwords yield the identical
// AUTH_INVALID_CREDENTIALS error so responses cannot be used to enumerate
// accounts.
func (s *Service) Authenticate(ctx context.Context, employeeID, password string) (Profile, error) {
	if employeeID == "" || password == "" {
		return Profile{}, oops.Code("AUTH_VALIDATION").
			Errorf("employee ID and password are required")
	}

	account, lookupErr := s.accounts.GetByEmployeeID(ctx, NormalizeEmployeeID(employeeID))

	// Pick the hash to verify against. On a miss, verify a dummy hash so the
	// unknown-account path does the same work as the wrong-password path.
	targetHash := dummyPasswordHash
	accountExists := false

	if lookupErr != nil {
		if !errors.Is(lookupErr, ErrNotFound) {
			return Profile{}, oops.Code("AUTH_LOGIN_FAILED").
				With("operation", "get account by employee ID").
				Wrap(lookupErr)
		}
	} else {
		targetHash = account.PasswordHash
		accountExists = true
	}

	valid, err := s.hasher.Verify(password, targetHash)
	if err != nil {
		return Profile{}, oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(err)
	}

	if !accountExists || !valid {
		return Profile{}, oops.Code("AUTH_INVALID_CREDENTIALS").
			Errorf("invalid employee ID or password")
	}

	return account.Profile(), nil
}
