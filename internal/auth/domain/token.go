package domain

import "time"

// TokenRecord is the persisted ledger entry for an issued token, keyed by
// its jti claim.
type TokenRecord struct {
	JTI       string    `json:"jti"`
	UserID    int64     `json:"user_id"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
	Revoked   bool      `json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// IssuedToken is a freshly signed token along with the metadata the caller
// needs to persist or return it.
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// TokenPair is the response body for login and rotation.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}
