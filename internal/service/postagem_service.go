// Package service holds the business rules between the HTTP handlers and the repositories.
package service

import (
	"context"

	"blogpessoal/internal/models"
	"blogpessoal/internal/observability"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// Business-rule messages returned as validation errors.
const (
	MsgTemaNaoExiste    = "Tema não existe!"
	MsgUsuarioNaoExiste = "Usuário não existe!"
)

type PostagemService struct {
	postagens repository.PostagemRepository
	temas     repository.TemaRepository
	usuarios  repository.UsuarioRepository
}

// PostagemInput carries a create or update request. UsuarioID is the author named
// in the body; AuthorID is the authenticated principal and is used when UsuarioID is zero.
type PostagemInput struct {
	ID        uint
	Titulo    string
	Texto     string
	TemaID    uint
	UsuarioID uint
	AuthorID  uint
}

func NewPostagemService(
	postagens repository.PostagemRepository,
	temas repository.TemaRepository,
	usuarios repository.UsuarioRepository,
) *PostagemService {
	return &PostagemService{
		postagens: postagens,
		temas:     temas,
		usuarios:  usuarios,
	}
}

func (s *PostagemService) List(ctx context.Context) ([]models.Postagem, error) {
	return s.postagens.List(ctx)
}

func (s *PostagemService) Get(ctx context.Context, id uint) (*models.Postagem, error) {
	return s.postagens.GetByID(ctx, id)
}

func (s *PostagemService) SearchByTitulo(ctx context.Context, titulo string) ([]models.Postagem, error) {
	return s.postagens.SearchByTitulo(ctx, titulo)
}

func (s *PostagemService) Create(ctx context.Context, in PostagemInput) (_ *models.Postagem, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "PostagemService.Create")
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidatePostagem(in.Titulo, in.Texto, in.TemaID); err != nil {
		return nil, err
	}
	if err := s.requireTema(ctx, in.TemaID); err != nil {
		return nil, err
	}

	authorID := in.UsuarioID
	if authorID == 0 {
		authorID = in.AuthorID
	}
	postagem := &models.Postagem{
		Titulo: in.Titulo,
		Texto:  in.Texto,
		TemaID: in.TemaID,
	}
	if authorID != 0 {
		if err := s.requireUsuario(ctx, authorID); err != nil {
			return nil, err
		}
		postagem.UsuarioID = &authorID
	}

	if err := s.postagens.Create(ctx, postagem); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("postagem.id", int64(postagem.ID)))
	return s.postagens.GetByID(ctx, postagem.ID)
}

// Update replaces an existing postagem. The author is kept unless the body names another one.
func (s *PostagemService) Update(ctx context.Context, in PostagemInput) (_ *models.Postagem, err error) {
	ctx, span := observability.StartSpan(ctx, "service", "PostagemService.Update",
		attribute.Int64("postagem.id", int64(in.ID)))
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.ValidatePostagem(in.Titulo, in.Texto, in.TemaID); err != nil {
		return nil, err
	}

	if _, err := s.postagens.GetByID(ctx, in.ID); err != nil {
		return nil, err
	}
	if err := s.requireTema(ctx, in.TemaID); err != nil {
		return nil, err
	}

	// A nil UsuarioID leaves the stored author untouched.
	postagem := &models.Postagem{
		ID:     in.ID,
		Titulo: in.Titulo,
		Texto:  in.Texto,
		TemaID: in.TemaID,
	}
	if in.UsuarioID != 0 {
		if err := s.requireUsuario(ctx, in.UsuarioID); err != nil {
			return nil, err
		}
		authorID := in.UsuarioID
		postagem.UsuarioID = &authorID
	}

	if err := s.postagens.Update(ctx, postagem); err != nil {
		return nil, err
	}
	return s.postagens.GetByID(ctx, postagem.ID)
}

func (s *PostagemService) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "service", "PostagemService.Delete",
		attribute.Int64("postagem.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	return s.postagens.Delete(ctx, id)
}

func (s *PostagemService) requireTema(ctx context.Context, id uint) error {
	ok, err := s.temas.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewValidationError(MsgTemaNaoExiste)
	}
	return nil
}

func (s *PostagemService) requireUsuario(ctx context.Context, id uint) error {
	ok, err := s.usuarios.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewValidationError(MsgUsuarioNaoExiste)
	}
	return nil
}
