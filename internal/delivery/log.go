// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

// Package delivery provides TokenDelivery implementations for handing reset
// tokens to users out of band.
package delivery

import (
	"context"
	"log/slog"

	"github.com/staffpass/staffpass/internal/auth"
)

// LogDelivery emits the reset token to the structured log. It stands in for
// a real channel in development and testing; the token reaches the operator
// console instead of an inbox.
type LogDelivery struct {
	logger *slog.Logger
}

// NewLogDelivery creates a LogDelivery. A nil logger uses slog.Default.
func NewLogDelivery(logger *slog.Logger) *LogDelivery {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDelivery{logger: logger}
}

// Deliver logs the plaintext token for the operator to relay.
func (d *LogDelivery) Deliver(ctx context.Context, employeeID, token string) error {
	d.logger.InfoContext(ctx, "password reset token issued",
		"employee_id", employeeID,
		"token", token,
	)
	return nil
}

// Compile-time interface check.
var _ auth.TokenDelivery = (*LogDelivery)(nil)
