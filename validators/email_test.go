package validators

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	require.NoError(t, Email("anna@example.com"))

	for _, bad := range []string{"", "no-at-sign", "two@@example.com"} {
		err := Email(bad)

		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr, "input %q", bad)
		require.Equal(t, "email", fieldErr.Field)
	}
}

func TestPassword(t *testing.T) {
	require.NoError(t, Password("long enough"))

	for _, bad := range []string{"", "short"} {
		err := Password(bad)

		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr, "input %q", bad)
		require.Equal(t, "password", fieldErr.Field)
	}
}
