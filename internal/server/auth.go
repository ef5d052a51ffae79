package server

import (
	"context"

	"blogpessoal/internal/featureflags"
	"blogpessoal/internal/middleware"
	"blogpessoal/internal/models"
	"blogpessoal/internal/observability"
	"blogpessoal/internal/security"

	"github.com/gofiber/fiber/v2"
)

const msgAccessDenied = "Acesso negado"

// AuthRequired authenticates the request from its Authorization header and stores
// the principal in locals and the user context. Every authentication failure is a 403.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		ctx := c.UserContext()
		creds := middleware.RequestCredentials(c)

		var (
			principal *security.Principal
			err       error
			scheme    string
		)
		switch creds.Kind {
		case middleware.CredentialBearer:
			scheme = "bearer"
			principal, err = s.authenticateBearer(ctx, creds.Token)
		case middleware.CredentialBasic:
			scheme = "basic"
			if !s.featureFlags.EnabledGlobally(featureflags.BasicAuth) {
				break
			}
			principal, err = s.principals.Authenticate(ctx, creds.Username, creds.Password)
		case middleware.CredentialNone:
			scheme = "none"
		default:
			scheme = "invalid"
		}

		if err != nil {
			observability.RecordAuth(scheme, "error")
			return models.Respond(c, err)
		}
		if principal == nil {
			observability.RecordAuth(scheme, "denied")
			return models.RespondWithError(c, fiber.StatusForbidden, models.NewForbiddenError(msgAccessDenied))
		}
		observability.RecordAuth(scheme, "granted")

		c.Locals(security.LocalsPrincipal, principal)
		c.Locals(security.LocalsUserID, principal.ID)
		ctx = security.WithPrincipal(ctx, principal)
		ctx = context.WithValue(ctx, middleware.UserIDKey, principal.ID)
		ctx = context.WithValue(ctx, middleware.LoginKey, principal.Usuario)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// authenticateBearer returns (nil, nil) for any token that does not identify a stored usuario.
func (s *Server) authenticateBearer(ctx context.Context, token string) (*security.Principal, error) {
	login, err := s.tokens.ExtractUsername(token)
	if err != nil {
		return nil, nil
	}
	principal, err := s.principals.Load(ctx, login)
	if err != nil || principal == nil {
		return nil, err
	}
	if !s.tokens.ValidateToken(token, principal) {
		return nil, nil
	}
	return principal, nil
}

// currentPrincipal returns the principal set by AuthRequired, if any.
func currentPrincipal(c *fiber.Ctx) *security.Principal {
	p, _ := c.Locals(security.LocalsPrincipal).(*security.Principal)
	return p
}
