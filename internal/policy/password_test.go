package policy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword_Strong(t *testing.T) {
	t.Parallel()

	res := ValidatePassword([]byte("Tr0ub4dor&3-horse"))
	require.True(t, res.Valid, "errors: %v", res.Errors)
	require.Empty(t, res.Errors)
	require.GreaterOrEqual(t, res.Strength, Fair)
	require.Greater(t, res.EntropyBits, 36.0)
}

func TestValidatePassword_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	res := ValidatePassword([]byte("password"))
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "password must be at least 12 characters")
	require.Contains(t, res.Errors, "password is too common")
	require.Len(t, res.Errors, 4)
}

func TestValidatePassword_ClassesRequired(t *testing.T) {
	t.Parallel()

	res := ValidatePassword([]byte("onlylowercaseletters"))
	require.False(t, res.Valid)
	require.Contains(t, res.Errors, "password must mix at least 3 of: lowercase, uppercase, digits, symbols")
}

func TestValidatePassword_BlacklistSeesThroughDecoration(t *testing.T) {
	t.Parallel()

	for _, pw := range []string{"Passw0rd2024!", "P@ssword!!!!", "LetMeIn123456"} {
		res := ValidatePassword([]byte(pw))
		require.Contains(t, res.Errors, "password is too common", pw)
	}
}

func TestValidatePassword_RepetitionIsPredictable(t *testing.T) {
	t.Parallel()

	res := ValidatePassword([]byte("Aa1!Aa1!Aa1!"))
	require.Equal(t, 24.0, res.EntropyBits)
	require.Equal(t, VeryWeak, res.Strength)
	require.Contains(t, res.Errors, "password is too predictable")
}

func TestEntropyBits(t *testing.T) {
	t.Parallel()

	require.Zero(t, EntropyBits(nil))
	require.Zero(t, EntropyBits([]byte("aaaa")))
	require.InDelta(t, 8.0, EntropyBits([]byte("abcd")), 1e-9)
}

func TestStrength_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "very_weak", VeryWeak.String())
	require.Equal(t, "fair", Fair.String())
	require.Equal(t, "very_strong", VeryStrong.String())
}

func TestValidateExportPassword(t *testing.T) {
	t.Parallel()

	m, l := ValidateExportPassword([]byte("abcdefgh"), []byte("abcdefgh"))
	require.True(t, m)
	require.True(t, l)

	m, _ = ValidateExportPassword([]byte("abcdefgh"), []byte("abcdefgX"))
	require.False(t, m)

	m, l = ValidateExportPassword([]byte("short"), []byte("short"))
	require.True(t, m)
	require.False(t, l)
}
