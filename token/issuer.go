// Package token builds and signs the three-token set the provider
// returns on a successful authentication.
package token

import (
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-cognito-local/accounts"
	"github.com/jrsteele09/go-cognito-local/token/keys"
)

// Tokens is the AuthenticationResult payload: three freshly signed
// bearer tokens. Nothing is persisted; there is no revocation list.
type Tokens struct {
	AccessToken  string `json:"AccessToken"`
	IdToken      string `json:"IdToken"`
	RefreshToken string `json:"RefreshToken"`
}

// Issuer signs token sets with a single pre-loaded key pair. The
// issuer string is embedded verbatim as the iss claim of every token.
type Issuer struct {
	signer keys.Signer
	issuer string
}

// NewIssuer creates a token issuer from an injected signer and the
// configured issuer string.
func NewIssuer(signer keys.Signer, issuer string) *Issuer {
	return &Issuer{
		signer: signer,
		issuer: issuer,
	}
}

// Issue signs the access, id and refresh tokens for one authenticated
// account. The id token reuses the "access" token_use marker — that is
// what the real deployment's verifiers were written against, so it is
// reproduced as-is rather than corrected to "id".
func (i *Issuer) Issue(account *accounts.Account, clientID string) (*Tokens, error) {
	accessToken, err := i.signer.Sign(jwtlib.MapClaims{
		"token_use": "access",
		"iss":       i.issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	idToken, err := i.signer.Sign(jwtlib.MapClaims{
		"token_use": "access",
		"email":     account.Email,
		"aud":       clientID,
		"iss":       i.issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign id token: %w", err)
	}

	refreshToken, err := i.signer.Sign(jwtlib.MapClaims{
		"email": account.Email,
		"iss":   i.issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &Tokens{
		AccessToken:  accessToken,
		IdToken:      idToken,
		RefreshToken: refreshToken,
	}, nil
}
