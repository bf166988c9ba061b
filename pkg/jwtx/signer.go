package jwtx

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs claim sets with an RSA private key (RS256). The key is loaded
// once at construction and never changes; a service that wants to rotate keys
// builds a second Signer under a different kid and re-publishes its JWKS.
type Signer struct {
	kid string
	key *rsa.PrivateKey
	pub *rsa.PublicKey
}

// NewSignerRS256 loads an RSA private key from PEM bytes. Handles both PKCS1
// and PKCS8 blocks because key files in the wild come as either.
func NewSignerRS256(kid string, pemKey []byte) (*Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for RSA private key")
	}

	var key *rsa.PrivateKey

	switch block.Type {
	case "RSA PRIVATE KEY":
		k, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse PKCS1: %w", err)
		}
		key = k
	case "PRIVATE KEY":
		priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
		}
		rk, ok := priv.(*rsa.PrivateKey)
		if !ok {
			return nil, errors.New("jwtx: not an RSA private key")
		}
		key = rk
	default:
		return nil, fmt.Errorf("jwtx: unsupported PEM type %q", block.Type)
	}

	return &Signer{
		kid: kid,
		key: key,
		pub: &key.PublicKey,
	}, nil
}

// Alg reports the signing algorithm name ("RS256").
func (s *Signer) Alg() string { return jwt.SigningMethodRS256.Alg() }

// KID reports the key identifier embedded in token headers.
func (s *Signer) KID() string { return s.kid }

// Sign turns a claim set into a signed compact JWT string.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// PublicJWK returns the verification key as a JWK for JWKS publishing.
func (s *Signer) PublicJWK() JWK {
	return NewRSAJWK(s.kid, "sig", s.Alg(), s.pub)
}

// Validate sanity-checks that key material is actually loaded.
func (s *Signer) Validate() error {
	if s.key == nil || s.pub == nil {
		return errors.New("jwtx: nil RSA key")
	}
	return nil
}
