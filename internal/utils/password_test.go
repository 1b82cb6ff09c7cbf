package utils_test

import (
	"testing"

	"github.com/sarnathbank/banking_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyCredential(t *testing.T) {
	hash, err := utils.HashCredential("opensesame")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "opensesame", hash)

	assert.True(t, utils.VerifyCredential("opensesame", hash))
	assert.False(t, utils.VerifyCredential("wrongsecret", hash))
	assert.False(t, utils.VerifyCredential("opensesame", "not-a-hash"))
}

func TestHashCredential_DistinctHashes(t *testing.T) {
	first, err := utils.HashCredential("opensesame")
	require.NoError(t, err)
	second, err := utils.HashCredential("opensesame")
	require.NoError(t, err)

	// Salted: equal inputs hash differently, yet both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, utils.VerifyCredential("opensesame", first))
	assert.True(t, utils.VerifyCredential("opensesame", second))
}
