// Command sessiond-keygen generates the RS256 key pair the service signs
// with. Run it once before first start; refusing to overwrite existing keys
// keeps a fat-fingered rerun from invalidating every issued token.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/blogware/sessiond/pkg/cryptox"
)

func main() {
	var (
		bits    = flag.Int("bits", 2048, "RSA key size in bits (minimum 2048)")
		privOut = flag.String("private", "private.pem", "output path for the private key PEM")
		pubOut  = flag.String("public", "public.pem", "output path for the public key PEM")
		force   = flag.Bool("force", false, "overwrite existing key files")
	)
	flag.Parse()

	if !*force {
		for _, path := range []string{*privOut, *pubOut} {
			if _, err := os.Stat(path); err == nil {
				log.Fatalf("%s already exists; pass -force to overwrite", path)
			}
		}
	}

	privPEM, pubPEM, err := cryptox.GenerateRSAKeyPair(*bits)
	if err != nil {
		log.Fatalf("generate key pair: %v", err)
	}

	if err := os.WriteFile(*privOut, privPEM, 0o600); err != nil {
		log.Fatalf("write %s: %v", *privOut, err)
	}
	if err := os.WriteFile(*pubOut, pubPEM, 0o644); err != nil {
		log.Fatalf("write %s: %v", *pubOut, err)
	}

	fmt.Printf("wrote %s and %s (%d bits)\n", *privOut, *pubOut, *bits)
}
