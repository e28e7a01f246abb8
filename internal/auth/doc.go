// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

// Package auth implements the credential-management core for StaffPass.
//
// # Domain Types
//
// Domain types (Account, ResetCredential) should be created using their
// respective constructors:
//   - NewAccount - creates an Account with a normalized employee ID
//   - NewResetCredential - creates a ResetCredential with validated owner and expiry
//
// Direct struct initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated types from these constructors.
//
// # Services
//
// Service types coordinate domain operations:
//   - Service - registration and login
//   - ResetService - password recovery issuance and redemption
//
// Services are created with New*Service constructors that validate dependencies.
// Both services normalize employee IDs at the boundary; storage only ever sees
// the uppercase form.
package auth
