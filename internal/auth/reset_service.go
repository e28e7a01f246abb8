// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// ResetService handles password recovery issuance and redemption.
type ResetService struct {
	accounts AccountRepository
	resets   ResetCredentialRepository
	hasher   PasswordHasher
	uow      UnitOfWork
	delivery TokenDelivery
	logger   *slog.Logger
}

// NewResetService creates a new ResetService.
func NewResetService(
	accounts AccountRepository,
	resets ResetCredentialRepository,
	hasher PasswordHasher,
	uow UnitOfWork,
	delivery TokenDelivery,
	logger *slog.Logger,
) (*ResetService, error) {
	if accounts == nil {
		return nil, oops.Errorf("account repository is required")
	}
	if resets == nil {
		return nil, oops.Errorf("reset repository is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if uow == nil {
		return nil, oops.Errorf("unit of work is required")
	}
	if delivery == nil {
		return nil, oops.Errorf("token delivery is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResetService{
		accounts: accounts,
		resets:   resets,
		hasher:   hasher,
		uow:      uow,
		delivery: delivery,
		logger:   logger,
	}, nil
}

// Issue generates and stores a reset credential for the account, then hands
// the plaintext token to the delivery collaborator. If the employee ID is
// unknown the call succeeds with no side effect, so issuance responses are
// identical whether or not the account exists.
//
// Replacing any prior credential and inserting the new one happen in a
// single transaction, keeping at most one live credential per account even
// if the process crashes between the two writes.
func (s *ResetService) Issue(ctx context.Context, employeeID string) error {
	normalized := NormalizeEmployeeID(employeeID)
	if normalized == "" {
		// Same outcome as an unknown account: succeed without a side effect.
		return nil
	}

	account, err := s.accounts.GetByEmployeeID(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "get account by employee ID").
			Wrap(err)
	}

	token, err := GenerateResetToken()
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "generate reset token").
			Wrap(err)
	}

	// Full-cost hash, same as passwords. The plaintext is never stored.
	tokenHash, err := s.hasher.Hash(token)
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "hash reset token").
			Wrap(err)
	}

	reset, err := NewResetCredential(account.ID, tokenHash, time.Now().Add(ResetTokenExpiry))
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "build reset credential").
			Wrap(err)
	}

	err = s.uow.Within(ctx, func(_ AccountRepository, resets ResetCredentialRepository) error {
		if err := resets.DeleteByAccount(ctx, account.ID); err != nil {
			return err
		}
		return resets.Create(ctx, reset)
	})
	if err != nil {
		return oops.Code("RESET_ISSUE_FAILED").
			With("operation", "store reset credential").
			Wrap(err)
	}

	// Delivery is out-of-band; a failure here is logged but does not fail
	// the request. The credential stays redeemable if delivery is retried
	// through another channel.
	if err := s.delivery.Deliver(ctx, account.EmployeeID, token); err != nil {
		s.logger.Warn("reset token delivery failed",
			"employee_id", account.EmployeeID,
			"error", err)
	}

	return nil
}

// Redeem validates a presented token and rotates the account's password.
// Unknown accounts and missing or mismatched tokens all fail with
// RESET_TOKEN_INVALID; an expired token fails with RESET_TOKEN_EXPIRED,
// which is distinguishable because the account's existence is already
// established at that point.
//
// The password update and the credential deletion run in one transaction:
// either the password rotates and the token dies, or neither happens.
func (s *ResetService) Redeem(ctx context.Context, employeeID, token, newPassword string) error {
	if employeeID == "" || token == "" {
		return oops.Code("AUTH_VALIDATION").
			Errorf("employee ID and token are required")
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	account, err := s.accounts.GetByEmployeeID(ctx, NormalizeEmployeeID(employeeID))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("RESET_TOKEN_INVALID").Errorf("invalid token or employee ID")
		}
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "get account by employee ID").
			Wrap(err)
	}

	reset, err := s.resets.GetByAccount(ctx, account.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return oops.Code("RESET_TOKEN_INVALID").Errorf("invalid or expired token")
		}
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "get reset credential").
			Wrap(err)
	}

	if reset.IsExpired() {
		return oops.Code("RESET_TOKEN_EXPIRED").Errorf("token has expired")
	}

	valid, err := s.hasher.Verify(token, reset.TokenHash)
	if err != nil {
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "verify reset token").
			Wrap(err)
	}
	if !valid {
		return oops.Code("RESET_TOKEN_INVALID").Errorf("invalid token")
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "hash new password").
			Wrap(err)
	}

	err = s.uow.Within(ctx, func(accounts AccountRepository, resets ResetCredentialRepository) error {
		if err := accounts.UpdatePassword(ctx, account.ID, newHash); err != nil {
			return err
		}
		return resets.DeleteByAccount(ctx, account.ID)
	})
	if err != nil {
		return oops.Code("RESET_REDEEM_FAILED").
			With("operation", "rotate password").
			Wrap(err)
	}

	return nil
}
