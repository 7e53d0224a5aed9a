package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	b := NewWithCost(bcrypt.MinCost)

	hash, err := b.HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.NoError(t, b.ComparePassword(hash, "s3cret!"))
	assert.ErrorIs(t, b.ComparePassword(hash, "wrong"), ErrMismatchedPassword)
	assert.Error(t, b.ComparePassword("not-a-hash", "s3cret!"))
}
