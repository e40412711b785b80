package crypto_test

import (
	"strings"
	"testing"

	"fraud-radar.backend/pkg/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := crypto.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$2a$"))
	assert.True(t, crypto.CheckPassword("correct horse battery staple", hash))
	assert.False(t, crypto.CheckPassword("wrong password", hash))
}

func TestCheckPassword_BadHash(t *testing.T) {
	assert.False(t, crypto.CheckPassword("anything", "not-a-bcrypt-hash"))
}
