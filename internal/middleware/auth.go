package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CredentialKind identifies the scheme of an Authorization header.
type CredentialKind int

const (
	CredentialNone CredentialKind = iota
	CredentialBearer
	CredentialBasic
	CredentialInvalid
)

// Credentials is the parsed content of an Authorization header.
type Credentials struct {
	Kind     CredentialKind
	Token    string
	Username string
	Password string
}

const (
	bearerPrefix = "Bearer "
	basicPrefix  = "Basic "
)

// ParseAuthorization splits an Authorization header into its scheme and payload.
// Unknown schemes, empty bearer tokens and undecodable basic credentials yield CredentialInvalid.
func ParseAuthorization(header string) Credentials {
	header = strings.TrimSpace(header)
	switch {
	case header == "":
		return Credentials{Kind: CredentialNone}
	case strings.HasPrefix(header, bearerPrefix):
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if token == "" {
			return Credentials{Kind: CredentialInvalid}
		}
		return Credentials{Kind: CredentialBearer, Token: token}
	case strings.HasPrefix(header, basicPrefix):
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(strings.TrimPrefix(header, basicPrefix)))
		if err != nil {
			return Credentials{Kind: CredentialInvalid}
		}
		username, password, ok := strings.Cut(string(raw), ":")
		if !ok || username == "" {
			return Credentials{Kind: CredentialInvalid}
		}
		return Credentials{Kind: CredentialBasic, Username: username, Password: password}
	default:
		return Credentials{Kind: CredentialInvalid}
	}
}

// RequestCredentials parses the Authorization header of the current request.
func RequestCredentials(c *fiber.Ctx) Credentials {
	return ParseAuthorization(c.Get(fiber.HeaderAuthorization))
}
