package security

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeVerificationToken(t *testing.T) {
	seen := map[string]bool{}

	for range 100 {
		token, err := MakeVerificationToken()
		require.NoError(t, err)
		require.Len(t, token, 32)

		_, err = hex.DecodeString(token)
		require.NoError(t, err)

		require.False(t, seen[token], "token collision")
		seen[token] = true
	}
}

func TestMakeTempPassword(t *testing.T) {
	seen := map[string]bool{}

	for range 100 {
		p := MakeTempPassword(TempPasswordLength)
		require.Len(t, p, TempPasswordLength)

		for _, r := range p {
			require.True(t, strings.ContainsRune(tempPasswordCharset, r), "unexpected character %q", r)
		}

		seen[p] = true
	}

	// 100 draws from a 94^10 space shouldn't repeat
	require.Greater(t, len(seen), 90)
}
