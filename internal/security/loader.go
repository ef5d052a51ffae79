package security

import (
	"context"
	"errors"

	"blogpessoal/internal/cache"
	"blogpessoal/internal/models"
)

// UsuarioFinder is the subset of the usuario repository the loader needs.
type UsuarioFinder interface {
	GetByLogin(ctx context.Context, usuario string) (*models.Usuario, error)
}

// PrincipalLoader resolves a login to a Principal, caching hits in Redis.
type PrincipalLoader struct {
	usuarios UsuarioFinder
}

// NewPrincipalLoader wraps a usuario lookup.
func NewPrincipalLoader(usuarios UsuarioFinder) *PrincipalLoader {
	return &PrincipalLoader{usuarios: usuarios}
}

var errPrincipalAbsent = errors.New("principal absent")

// Load returns (nil, nil) when no usuario has the login. Absent logins are not cached.
func (l *PrincipalLoader) Load(ctx context.Context, login string) (*Principal, error) {
	var p Principal
	err := cache.Aside(ctx, cache.PrincipalKey(login), &p, cache.PrincipalTTL, func() error {
		u, err := l.usuarios.GetByLogin(ctx, login)
		if err != nil {
			return err
		}
		if u == nil {
			return errPrincipalAbsent
		}
		p = Principal{ID: u.ID, Usuario: u.Usuario, Nome: u.Nome}
		return nil
	})
	if errors.Is(err, errPrincipalAbsent) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Authenticate checks login and password against storage. It bypasses the cache
// because cached principals carry no password hash.
func (l *PrincipalLoader) Authenticate(ctx context.Context, login, senha string) (*Principal, error) {
	u, err := l.usuarios.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if u == nil || !CheckPassword(u.Senha, senha) {
		return nil, nil
	}
	return &Principal{ID: u.ID, Usuario: u.Usuario, Nome: u.Nome}, nil
}
