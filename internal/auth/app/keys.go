package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/blogware/sessiond/pkg/jwtx"
)

// InitKeys loads the RS256 key pair from disk and builds the signer and key
// set. The private key is required; a missing or unparseable key is fatal so
// the service never starts without the ability to sign.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.Signer, *jwtx.KeySet, error) {
	privPEM, err := os.ReadFile(cfg.PrivateKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read private key %s: %w", cfg.PrivateKeyFile, err)
	}

	signer, err := jwtx.NewSignerRS256(cfg.KeyID, privPEM)
	if err != nil {
		return nil, nil, fmt.Errorf("parse private key %s: %w", cfg.PrivateKeyFile, err)
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, nil, err
	}

	// The signer already derives its public half; the configured public key
	// file must exist, parse, and agree with it, or the process refuses to
	// start.
	if cfg.PublicKeyFile != "" {
		pubPEM, err := os.ReadFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, nil, fmt.Errorf("read public key %s: %w", cfg.PublicKeyFile, err)
		}

		fromFile := jwtx.NewKeySet()
		if err := fromFile.AddPublicPEM(cfg.KeyID, pubPEM); err != nil {
			return nil, nil, fmt.Errorf("parse public key %s: %w", cfg.PublicKeyFile, err)
		}

		filePub, err := fromFile.Get(cfg.KeyID)
		if err != nil {
			return nil, nil, fmt.Errorf("parse public key %s: %w", cfg.PublicKeyFile, err)
		}
		derived, err := keys.Get(cfg.KeyID)
		if err != nil {
			return nil, nil, err
		}
		if filePub.N.Cmp(derived.N) != 0 || filePub.E != derived.E {
			return nil, nil, fmt.Errorf("public key %s does not match the private key %s",
				cfg.PublicKeyFile, cfg.PrivateKeyFile)
		}
	}

	logger.Info("signing keys loaded", "kid", cfg.KeyID, "alg", signer.Alg())
	return signer, keys, nil
}
