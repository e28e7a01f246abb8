// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/staffpass/staffpass/internal/auth"
	"github.com/staffpass/staffpass/internal/auth/mocks"
	"github.com/staffpass/staffpass/pkg/errutil"
)

func TestNewService_NilDependencies(t *testing.T) {
	tests := []struct {
		name        string
		accounts    auth.AccountRepository
		hasher      auth.PasswordHasher
		expectError string
	}{
		{
			name:        "nil account repository",
			accounts:    nil,
			hasher:      mocks.NewMockPasswordHasher(t),
			expectError: "account repository is required",
		},
		{
			name:        "nil password hasher",
			accounts:    mocks.NewMockAccountRepository(t),
			hasher:      nil,
			expectError: "password hasher is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := auth.NewService(tt.accounts, tt.hasher)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration returns profile", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		hasher.On("Hash", "secret123").Return("$2a$10$hashed", nil)
		accountRepo.On("Create", ctx, mock.AnythingOfType("*auth.Account")).
			Run(func(args mock.Arguments) {
				account := args.Get(1).(*auth.Account)
				assert.Equal(t, "EMP-001", account.EmployeeID)
				assert.Equal(t, "$2a$10$hashed", account.PasswordHash)
			}).
			Return(nil)

		profile, err := svc.Register(ctx, "emp-001", "Ada Lovelace", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "EMP-001", profile.EmployeeID)
		assert.Equal(t, "Ada Lovelace", profile.Name)
		assert.NotEmpty(t, profile.ID)
	})

	t.Run("duplicate employee ID fails with coded error", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		hasher.On("Hash", "secret123").Return("$2a$10$hashed", nil)
		accountRepo.On("Create", ctx, mock.AnythingOfType("*auth.Account")).
			Return(auth.ErrDuplicateEmployeeID)

		_, err = svc.Register(ctx, "EMP-001", "Ada", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_DUPLICATE_EMPLOYEE_ID")
		errutil.AssertErrorContext(t, err, "employee_id", "EMP-001")
	})

	t.Run("duplicate detection sees any casing of the same ID", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		hasher.On("Hash", "secret123").Return("$2a$10$hashed", nil)
		// The repo only ever sees the normalized form, so "emp-001" collides
		// with an existing "EMP-001" row.
		accountRepo.On("Create", ctx, mock.MatchedBy(func(a *auth.Account) bool {
			return a.EmployeeID == "EMP-001"
		})).Return(auth.ErrDuplicateEmployeeID)

		_, err = svc.Register(ctx, "emp-001", "Ada", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_DUPLICATE_EMPLOYEE_ID")
	})

	t.Run("short password fails before hashing", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "EMP-001", "Ada", "short")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_VALIDATION")
		hasher.AssertNotCalled(t, "Hash", mock.Anything)
	})

	t.Run("empty employee ID fails validation", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		hasher.On("Hash", "secret123").Return("$2a$10$hashed", nil)

		_, err = svc.Register(ctx, "", "Ada", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_VALIDATION")
		accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("hasher failure is wrapped", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		hasher.On("Hash", "secret123").Return("", assert.AnError)

		_, err = svc.Register(ctx, "EMP-001", "Ada", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_REGISTER_FAILED")
	})
}

func TestService_Authenticate(t *testing.T) {
	ctx := context.Background()

	account, err := auth.NewAccount("EMP-001", "Ada Lovelace", "$2a$10$storedhash")
	require.NoError(t, err)

	t.Run("valid credentials return profile", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		accountRepo.On("GetByEmployeeID", ctx, "EMP-001").Return(account, nil)
		hasher.On("Verify", "secret123", "$2a$10$storedhash").Return(true, nil)

		profile, err := svc.Authenticate(ctx, "emp-001", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "EMP-001", profile.EmployeeID)
		assert.Equal(t, "Ada Lovelace", profile.Name)
	})

	t.Run("wrong password fails with invalid credentials", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		accountRepo.On("GetByEmployeeID", ctx, "EMP-001").Return(account, nil)
		hasher.On("Verify", "wrongpass", "$2a$10$storedhash").Return(false, nil)

		_, err = svc.Authenticate(ctx, "EMP-001", "wrongpass")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
	})

	t.Run("unknown account still verifies a hash", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		accountRepo.On("GetByEmployeeID", ctx, "GHOST").Return(nil, auth.ErrNotFound)
		// The dummy hash keeps the unknown-account path doing real work.
		hasher.On("Verify", "secret123", mock.AnythingOfType("string")).Return(false, nil)

		_, err = svc.Authenticate(ctx, "ghost", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INVALID_CREDENTIALS")
		hasher.AssertCalled(t, "Verify", "secret123", mock.AnythingOfType("string"))
	})

	t.Run("unknown account and wrong password yield identical errors", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		accountRepo.On("GetByEmployeeID", ctx, "EMP-001").Return(account, nil)
		accountRepo.On("GetByEmployeeID", ctx, "GHOST").Return(nil, auth.ErrNotFound)
		hasher.On("Verify", mock.Anything, mock.Anything).Return(false, nil)

		_, errWrongPass := svc.Authenticate(ctx, "EMP-001", "wrongpass")
		_, errUnknown := svc.Authenticate(ctx, "GHOST", "wrongpass")

		require.Error(t, errWrongPass)
		require.Error(t, errUnknown)
		assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
		assert.Equal(t, errutil.Code(errWrongPass), errutil.Code(errUnknown))
	})

	t.Run("empty inputs fail validation without a lookup", func(t *testing.T) {
		tests := []struct {
			name       string
			employeeID string
			password   string
		}{
			{name: "empty employee ID", employeeID: "", password: "secret123"},
			{name: "empty password", employeeID: "EMP-001", password: ""},
			{name: "both empty", employeeID: "", password: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				accountRepo := mocks.NewMockAccountRepository(t)
				hasher := mocks.NewMockPasswordHasher(t)
				svc, err := auth.NewService(accountRepo, hasher)
				require.NoError(t, err)

				_, err = svc.Authenticate(ctx, tt.employeeID, tt.password)
				require.Error(t, err)
				errutil.AssertErrorCode(t, err, "AUTH_VALIDATION")
				accountRepo.AssertNotCalled(t, "GetByEmployeeID", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("repository failure is wrapped not mapped to invalid credentials", func(t *testing.T) {
		accountRepo := mocks.NewMockAccountRepository(t)
		hasher := mocks.NewMockPasswordHasher(t)
		svc, err := auth.NewService(accountRepo, hasher)
		require.NoError(t, err)

		accountRepo.On("GetByEmployeeID", ctx, "EMP-001").Return(nil, assert.AnError)

		_, err = svc.Authenticate(ctx, "EMP-001", "secret123")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_LOGIN_FAILED")
	})
}
