package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrUnknownKID = errors.New("jwtx: unknown kid")
	ErrInvalidSig = errors.New("jwtx: invalid signature")

	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier checks the wire-level integrity of a token: three-part structure,
// RS256 algorithm, and signature under a key from the KeySet. Claim checks
// (expiry, issuer, audience, revocation) are deliberately left to the caller
// so rejections surface in a defined order with distinct kinds.
type Verifier struct {
	keys *KeySet
}

// NewVerifierRS256 creates a Verifier over a KeySet of RSA public keys.
func NewVerifierRS256(keys *KeySet) *Verifier {
	return &Verifier{keys: keys}
}

// Parse validates structure, algorithm, and signature and returns the decoded
// claim set. Any failure maps onto ErrMalformed, ErrUnknownKID, or
// ErrInvalidSig; claim-level validation is not performed here.
func (v *Verifier) Parse(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			// Tokens without a kid verify against the sole key, if any.
			pub, err := v.keys.Sole()
			if err != nil {
				return nil, ErrUnknownKID
			}
			return pub, nil
		}

		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownKID):
			return nil, err
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		default:
			// Signature failures, algorithm mismatches, and anything else the
			// parser rejects. Fail closed as a signature problem.
			return nil, fmt.Errorf("%w: %v", ErrInvalidSig, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSig
	}

	return claims, nil
}
