package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	require.NoError(t, ValidateUsername("alice_99"))
	require.NoError(t, ValidateUsername("  Bob  ")) // normalized before checking
	require.Error(t, ValidateUsername("ab"))
	require.Error(t, ValidateUsername("no spaces"))
	require.Error(t, ValidateUsername("bad!char"))
}

func TestNormalizeUsername(t *testing.T) {
	require.Equal(t, "alice", NormalizeUsername(" Alice "))
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("alice@example.com"))
	require.NoError(t, ValidateEmail("ALICE@Example.COM"))
	require.Error(t, ValidateEmail("not-an-email"))
	require.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	require.Error(t, ValidatePassword("short"))
	require.NoError(t, ValidatePassword("longenough"))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("Password123")
	require.NoError(t, err)
	require.NotEqual(t, "Password123", hash)

	require.NoError(t, CheckPassword("Password123", hash))
	require.Error(t, CheckPassword("wrong", hash))
}
