package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashRoundTrip(t *testing.T) {
	hash, err := GenerateHash("s3cretPwd!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretPwd!", hash)

	match, err := CompareHash(hash, "s3cretPwd!")
	require.NoError(t, err)
	assert.True(t, match)

	match, _ = CompareHash(hash, "wrongPwd")
	assert.False(t, match)
}

func TestFuncName(t *testing.T) {
	assert.Contains(t, FuncName(), "TestFuncName")
}
