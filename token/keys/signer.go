package keys

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is an interface for signing JWT tokens and exposing the
// matching verification material
type Signer interface {
	// Sign creates a signed JWT token from claims
	Sign(claims jwt.MapClaims) (string, error)

	// GetVerificationKey returns the signing key for verification
	GetVerificationKey(token *jwt.Token) (any, error)

	// GetJWKS returns the JSON Web Key Set for the public key
	GetJWKS() *JWKS
}

// KeyPairSigner implements Signer using RSA with RS256
type KeyPairSigner struct {
	keyPair *KeyPair
}

var _ Signer = (*KeyPairSigner)(nil)

// NewKeyPairSigner creates a new key pair signer with the given key pair
func NewKeyPairSigner(keyPair *KeyPair) *KeyPairSigner {
	return &KeyPairSigner{
		keyPair: keyPair,
	}
}

func (a *KeyPairSigner) Sign(claims jwt.MapClaims) (string, error) {
	token := jwt.NewWithClaims(a.keyPair.GetSigningMethod(), claims)
	token.Header["kid"] = a.keyPair.KeyID

	signedToken, err := token.SignedString(a.keyPair.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token with asymmetric key: %w", err)
	}
	return signedToken, nil
}

func (a *KeyPairSigner) GetVerificationKey(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return a.keyPair.PublicKey, nil
}

func (a *KeyPairSigner) GetJWKS() *JWKS {
	return &JWKS{
		Keys: []JWK{a.keyPair.ToJWK()},
	}
}
