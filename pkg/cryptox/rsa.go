package cryptox

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// GenerateRSAKeyPair generates a fresh RSA key pair and returns the private
// key as a PKCS1 "RSA PRIVATE KEY" PEM and the public key as a PKIX
// "PUBLIC KEY" PEM. Common bit sizes are 2048, 3072, or 4096.
func GenerateRSAKeyPair(bits int) (privPEM, pubPEM []byte, err error) {
	if bits < 2048 {
		return nil, nil, fmt.Errorf("cryptox: RSA key size must be at least 2048 bits")
	}

	privateKey, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, nil, fmt.Errorf("cryptox: failed to generate RSA key: %w", err)
	}

	privPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})

	pubDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return nil, nil, fmt.Errorf("cryptox: failed to marshal public key: %w", err)
	}

	pubPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})

	return privPEM, pubPEM, nil
}
