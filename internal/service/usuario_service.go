package service

import (
	"context"

	"blogpessoal/internal/models"
	"blogpessoal/internal/observability"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/security"
	"blogpessoal/internal/validation"
)

// MsgCredenciaisInvalidas is returned when login or password do not match.
const MsgCredenciaisInvalidas = "Usuário ou senha inválidos!"

// TokenIssuer signs a token for a login.
type TokenIssuer interface {
	GenerateToken(usuario string) (string, error)
}

type UsuarioService struct {
	usuarios repository.UsuarioRepository
	tokens   TokenIssuer
}

type UsuarioInput struct {
	ID      uint
	Nome    string
	Usuario string
	Senha   string
	Foto    string
}

type LoginInput struct {
	Usuario string
	Senha   string
}

func NewUsuarioService(usuarios repository.UsuarioRepository, tokens TokenIssuer) *UsuarioService {
	return &UsuarioService{usuarios: usuarios, tokens: tokens}
}

func (s *UsuarioService) List(ctx context.Context) ([]models.Usuario, error) {
	return s.usuarios.List(ctx)
}

func (s *UsuarioService) Get(ctx context.Context, id uint) (*models.Usuario, error) {
	return s.usuarios.GetByID(ctx, id)
}

// Cadastrar registers a new usuario. A login already in use is a validation error.
func (s *UsuarioService) Cadastrar(ctx context.Context, in UsuarioInput) (_ *models.Usuario, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "UsuarioService.Cadastrar")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateUsuario(in.Nome, in.Usuario, in.Senha, in.Foto); err != nil {
		return nil, err
	}

	existing, err := s.usuarios.GetByLogin(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError(repository.ErrUsuarioExists)
	}

	hash, err := security.HashPassword(in.Senha)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	usuario := &models.Usuario{
		Nome:    in.Nome,
		Usuario: in.Usuario,
		Senha:   hash,
		Foto:    in.Foto,
	}
	if err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

// Atualizar replaces an existing usuario and re-hashes the password.
func (s *UsuarioService) Atualizar(ctx context.Context, in UsuarioInput) (_ *models.Usuario, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "UsuarioService.Atualizar")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateUsuario(in.Nome, in.Usuario, in.Senha, in.Foto); err != nil {
		return nil, err
	}

	ok, err := s.usuarios.ExistsByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.NewNotFoundError("Usuario", in.ID)
	}

	owner, err := s.usuarios.GetByLogin(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != in.ID {
		return nil, models.NewValidationError(repository.ErrUsuarioExists)
	}

	hash, err := security.HashPassword(in.Senha)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	usuario := &models.Usuario{
		ID:      in.ID,
		Nome:    in.Nome,
		Usuario: in.Usuario,
		Senha:   hash,
		Foto:    in.Foto,
	}
	if err := s.usuarios.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return s.usuarios.GetByID(ctx, in.ID)
}

// Autenticar checks the credentials and returns the login projection with a bearer token.
func (s *UsuarioService) Autenticar(ctx context.Context, in LoginInput) (_ *models.UsuarioLogin, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "UsuarioService.Autenticar")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidateLogin(in.Usuario, in.Senha); err != nil {
		return nil, err
	}

	usuario, err := s.usuarios.GetByLogin(ctx, in.Usuario)
	if err != nil {
		return nil, err
	}
	if usuario == nil || !security.CheckPassword(usuario.Senha, in.Senha) {
		return nil, models.NewUnauthorizedError(MsgCredenciaisInvalidas)
	}

	token, err := s.tokens.GenerateToken(usuario.Usuario)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.UsuarioLogin{
		ID:      usuario.ID,
		Nome:    usuario.Nome,
		Usuario: usuario.Usuario,
		Foto:    usuario.Foto,
		Token:   security.BearerPrefix + token,
	}, nil
}
