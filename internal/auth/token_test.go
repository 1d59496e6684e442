package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("")
	require.Error(t, err)
}

func TestIssueEmbedsIdentityAndOneDayExpiry(t *testing.T) {
	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }

	signed, err := tokens.Issue(42, "admin")
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, issuedAt.Add(24*time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
}

func TestIssuedPayloadUsesStableClaimNames(t *testing.T) {
	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	signed, err := tokens.Issue(7, "user")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(payload, &raw))
	assert.ElementsMatch(t, []string{"userId", "role", "iat", "exp"}, keys(raw))
	assert.EqualValues(t, 7, raw["userId"])
	assert.Equal(t, "user", raw["role"])
	assert.InDelta(t, time.Now().Add(24*time.Hour).Unix(), raw["exp"], 5)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	issuer, err := NewTokenManager("secret-a")
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b")
	require.NoError(t, err)

	signed, err := issuer.Issue(1, "user")
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)
	issuedAt := time.Now().Add(-48 * time.Hour)
	tokens.now = func() time.Time { return issuedAt }
	signed, err := tokens.Issue(1, "user")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	tokens, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1, Role: "admin"})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.Error(t, err)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
