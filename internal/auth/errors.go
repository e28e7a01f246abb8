// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmployeeID is returned when an account insert collides with an
// existing employee ID. Repositories map the store's uniqueness-violation
// signal to this sentinel so flows never see driver error codes.
var ErrDuplicateEmployeeID = errors.New("employee ID already exists")
