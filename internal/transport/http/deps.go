package http

import (
	"github.com/medilink-notifier/internal/application/directory"
	fileapp "github.com/medilink-notifier/internal/application/file"
	mailapp "github.com/medilink-notifier/internal/application/mail"
	"github.com/medilink-notifier/internal/application/push"
	"github.com/medilink-notifier/internal/application/recovery"
	jwtinfra "github.com/medilink-notifier/internal/infrastructure/jwt"
)

// Deps holds the services behind the router. It is built once at startup.
// Services report domain.ErrProviderNotInitialized for any provider that was
// not configured, so the router never checks readiness itself.
type Deps struct {
	Directory *directory.Resolver
	Mail      mailapp.Service
	Recovery  recovery.Service
	Push      push.Service
	Files     fileapp.Service
	// JWTProvider verifies bearer tokens; nil when no key pair is configured.
	JWTProvider *jwtinfra.Provider
}
