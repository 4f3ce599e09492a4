package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateCode(8)
		require.NoError(t, err)
		assert.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r))
		}
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 45)
}

func TestHashAndCompareCode(t *testing.T) {
	hash, err := HashCode("Ab3dEf7h")
	require.NoError(t, err)
	assert.NotEqual(t, "Ab3dEf7h", hash)

	assert.True(t, CompareCode(hash, "Ab3dEf7h"))
	assert.False(t, CompareCode(hash, "ab3dEf7h"))
	assert.False(t, CompareCode("", "Ab3dEf7h"))
}
