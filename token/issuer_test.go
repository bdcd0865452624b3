package token_test

import (
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-cognito-local/accounts"
	"github.com/jrsteele09/go-cognito-local/token"
	"github.com/jrsteele09/go-cognito-local/token/keys"
	"github.com/stretchr/testify/require"
)

const (
	testIssuer   = "http://localhost:9329"
	testKeyID    = "local"
	testClientID = "client1"
	testEmail    = "a@x.com"
)

func newTestIssuer(t *testing.T) (*token.Issuer, keys.Signer) {
	t.Helper()

	keyPair, err := keys.GenerateRSAKeyPair(testKeyID, 2048)
	require.NoError(t, err)

	signer := keys.NewKeyPairSigner(keyPair)
	return token.NewIssuer(signer, testIssuer), signer
}

func parseClaims(t *testing.T, signer keys.Signer, signed string) (jwtlib.MapClaims, map[string]any) {
	t.Helper()

	parsed, err := jwtlib.Parse(signed, signer.GetVerificationKey, jwtlib.WithValidMethods([]string{keys.RS256}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	require.True(t, ok)
	return claims, parsed.Header
}

func TestIssueTokenSet(t *testing.T) {
	issuer, signer := newTestIssuer(t)

	account := &accounts.Account{Username: "alice", Password: "pw", Email: testEmail}
	tokens, err := issuer.Issue(account, testClientID)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.IdToken)
	require.NotEmpty(t, tokens.RefreshToken)

	accessClaims, accessHeader := parseClaims(t, signer, tokens.AccessToken)
	require.Equal(t, jwtlib.MapClaims{"token_use": "access", "iss": testIssuer}, accessClaims)
	require.Equal(t, keys.RS256, accessHeader["alg"])
	require.Equal(t, testKeyID, accessHeader["kid"])

	idClaims, idHeader := parseClaims(t, signer, tokens.IdToken)
	require.Equal(t, jwtlib.MapClaims{
		"token_use": "access", // deliberately mirrors the access marker
		"email":     testEmail,
		"aud":       testClientID,
		"iss":       testIssuer,
	}, idClaims)
	require.Equal(t, testKeyID, idHeader["kid"])

	refreshClaims, _ := parseClaims(t, signer, tokens.RefreshToken)
	require.Equal(t, jwtlib.MapClaims{"email": testEmail, "iss": testIssuer}, refreshClaims)
}

func TestIssueSameIssuerAcrossTokens(t *testing.T) {
	issuer, signer := newTestIssuer(t)

	tokens, err := issuer.Issue(&accounts.Account{Username: "bob", Email: "b@x.com"}, "another-client")
	require.NoError(t, err)

	for _, signed := range []string{tokens.AccessToken, tokens.IdToken, tokens.RefreshToken} {
		claims, _ := parseClaims(t, signer, signed)
		require.Equal(t, testIssuer, claims["iss"])
	}
}

func TestJWKSMatchesSigningKey(t *testing.T) {
	keyPair, err := keys.GenerateRSAKeyPair(testKeyID, 2048)
	require.NoError(t, err)

	jwks := keys.NewKeyPairSigner(keyPair).GetJWKS()
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "RSA", jwks.Keys[0].Kty)
	require.Equal(t, "sig", jwks.Keys[0].Use)
	require.Equal(t, testKeyID, jwks.Keys[0].Kid)
	require.Equal(t, keys.RS256, jwks.Keys[0].Alg)
	require.NotEmpty(t, jwks.Keys[0].N)
	require.NotEmpty(t, jwks.Keys[0].E)
}

func TestLoadKeyPairFromPEMRoundTrip(t *testing.T) {
	keyPair, err := keys.GenerateRSAKeyPair(testKeyID, 2048)
	require.NoError(t, err)

	loaded, err := keys.LoadKeyPairFromPEM(testKeyID, keyPair.ExportPrivateKeyPEM())
	require.NoError(t, err)
	require.True(t, keyPair.PrivateKey.Equal(loaded.PrivateKey))

	issuer := token.NewIssuer(keys.NewKeyPairSigner(loaded), testIssuer)
	tokens, err := issuer.Issue(&accounts.Account{Username: "alice", Email: testEmail}, testClientID)
	require.NoError(t, err)

	// Tokens signed with the loaded key verify against the original key.
	parseClaims(t, keys.NewKeyPairSigner(keyPair), tokens.AccessToken)
}
