package jwtx

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet holds the RSA verification keys in memory, indexed by kid. It is
// thread-safe so the verifier and the JWKS endpoint can share one instance.
type KeySet struct {
	mu  sync.RWMutex
	jks JWKS
	pub map[string]*rsa.PublicKey
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{
		pub: make(map[string]*rsa.PublicKey),
	}
}

// AddSigner registers a Signer's public JWK into the KeySet.
func (k *KeySet) AddSigner(s *Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddPublicPEM parses a PKIX "PUBLIC KEY" PEM block and registers it under
// the given kid. This is how a verification-only process loads public.pem.
func (k *KeySet) AddPublicPEM(kid string, pemKey []byte) error {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return errors.New("jwtx: invalid PEM for RSA public key")
	}
	if block.Type != "PUBLIC KEY" {
		return fmt.Errorf("jwtx: unsupported PEM type %q", block.Type)
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("jwtx: parse PKIX: %w", err)
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return errors.New("jwtx: not an RSA public key")
	}

	return k.AddJWK(NewRSAJWK(kid, "sig", "RS256", rsaPub))
}

// AddJWK adds a JWK to the KeySet and parses it into a usable crypto key.
// Re-adding a kid replaces the previous key so the served JWKS carries one
// entry per kid.
func (k *KeySet) AddJWK(j JWK) error {
	key, err := parseRSAJWK(j)
	if err != nil {
		return err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pub[j.Kid] = key
	for i, existing := range k.jks.Keys {
		if existing.Kid == j.Kid {
			k.jks.Keys[i] = j
			return nil
		}
	}
	k.jks.Keys = append(k.jks.Keys, j)
	return nil
}

// Get returns the public key for the given kid.
func (k *KeySet) Get(kid string) (*rsa.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.pub[kid]; ok {
		return pk, nil
	}
	return nil, ErrNoKey
}

// Sole returns the only key in the set. Tokens minted before kid headers
// existed lack the header; when exactly one key is loaded there is no
// ambiguity to protect against.
func (k *KeySet) Sole() (*rsa.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if len(k.pub) != 1 {
		return nil, ErrNoKey
	}
	for _, pk := range k.pub {
		return pk, nil
	}
	return nil, ErrNoKey
}

// PublicJWKS returns a snapshot of the KeySet's JWKS for HTTP serving.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.jks
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.pub) > 0
}

func parseRSAJWK(j JWK) (*rsa.PublicKey, error) {
	if j.Kty != "RSA" {
		return nil, errors.New("jwtx: unsupported kty " + j.Kty)
	}
	nb, err := base64.RawURLEncoding.DecodeString(j.N)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(j.E)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).SetBytes(nb)
	e := new(big.Int).SetBytes(eb).Int64()
	return &rsa.PublicKey{N: n, E: int(e)}, nil
}
