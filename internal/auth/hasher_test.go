// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 StaffPass Contributors

package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffpass/staffpass/internal/auth"
	"github.com/staffpass/staffpass/pkg/errutil"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Run("keeps cost inside supported range", func(t *testing.T) {
		hasher := auth.NewBcryptHasher(12)
		assert.Equal(t, 12, hasher.Cost())
	})

	t.Run("replaces cost below minimum with default", func(t *testing.T) {
		hasher := auth.NewBcryptHasher(bcrypt.MinCost - 1)
		assert.Equal(t, auth.DefaultBcryptCost, hasher.Cost())
	})

	t.Run("replaces cost above maximum with default", func(t *testing.T) {
		hasher := auth.NewBcryptHasher(bcrypt.MaxCost + 1)
		assert.Equal(t, auth.DefaultBcryptCost, hasher.Cost())
	})

	t.Run("zero cost falls back to default", func(t *testing.T) {
		hasher := auth.NewBcryptHasher(0)
		assert.Equal(t, auth.DefaultBcryptCost, hasher.Cost())
	})
}

func TestBcryptHasher_Hash(t *testing.T) {
	// MinCost keeps the suite fast; the encoding is identical at any cost.
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	t.Run("produces valid hash", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
	})

	t.Run("different passwords produce different hashes", func(t *testing.T) {
		hash1, err := hasher.Hash("password1")
		require.NoError(t, err)
		hash2, err := hasher.Hash("password2")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("same password produces different hashes (salt)", func(t *testing.T) {
		hash1, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		hash2, err := hasher.Hash("samepassword")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		_, err := hasher.Hash("")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_EMPTY_PASSWORD")
	})
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("correctpassword", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("incorrect password fails", func(t *testing.T) {
		hash, err := hasher.Hash("correctpassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("wrongpassword", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed hash is a mismatch not an error", func(t *testing.T) {
		ok, err := hasher.Verify("password", "not-a-valid-hash")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty password is a mismatch", func(t *testing.T) {
		hash, err := hasher.Hash("somepassword")
		require.NoError(t, err)

		ok, err := hasher.Verify("", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty hash is a mismatch", func(t *testing.T) {
		ok, err := hasher.Verify("password", "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("verifies hashes produced at a different cost", func(t *testing.T) {
		slow := auth.NewBcryptHasher(bcrypt.MinCost + 1)
		hash, err := slow.Hash("crosscost")
		require.NoError(t, err)

		ok, err := hasher.Verify("crosscost", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
