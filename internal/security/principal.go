package security

import "context"

// Fiber locals keys set by the auth filter.
const (
	LocalsPrincipal = "principal"
	LocalsUserID    = "userID"
)

// Principal is the authenticated usuario attached to a request.
type Principal struct {
	ID      uint   `json:"id"`
	Usuario string `json:"usuario"`
	Nome    string `json:"nome"`
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by WithPrincipal.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}
