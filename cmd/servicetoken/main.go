// Command servicetoken prints a bearer token for the protected notification
// routes. It signs with the same key pair as the API, so it must run where
// JWT_PRIVATE_KEY_PATH is readable.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/medilink-notifier/internal/config"
	"github.com/medilink-notifier/internal/domain"
	jwtinfra "github.com/medilink-notifier/internal/infrastructure/jwt"
)

func main() {
	subject := flag.String("subject", "medilink-backend", "token subject")
	flag.Parse()

	_ = godotenv.Load()
	p, err := jwtinfra.NewProvider(config.Load())
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}
	tok, err := p.Sign(*subject, domain.ScopeNotifications)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Println(tok)
}
