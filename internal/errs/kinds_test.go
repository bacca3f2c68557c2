package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf_UnwrapsThroughFmt(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("import: %w", Integrity("downgrade check", ErrDowngrade))
	require.Equal(t, KindIntegrity, KindOf(err))
	require.True(t, IsKind(err, KindIntegrity))
	require.ErrorIs(t, err, ErrDowngrade)
	require.Contains(t, err.Error(), "downgrade check")
}

func TestKindOf_Unclassified(t *testing.T) {
	t.Parallel()

	require.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	require.False(t, IsKind(nil, KindState))
	require.Nil(t, Validation("x", nil))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	for k, want := range map[Kind]string{
		KindValidation:     "validation",
		KindAuthentication: "authentication",
		KindIntegrity:      "integrity",
		KindState:          "state",
		KindUnknown:        "unknown",
	} {
		require.Equal(t, want, k.String())
	}
}
