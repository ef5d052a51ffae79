package service

import (
	"context"

	"blogpessoal/internal/models"
	"blogpessoal/internal/observability"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

type TemaService struct {
	temas repository.TemaRepository
}

type TemaInput struct {
	ID        uint
	Descricao string
}

func NewTemaService(temas repository.TemaRepository) *TemaService {
	return &TemaService{temas: temas}
}

func (s *TemaService) List(ctx context.Context) ([]models.Tema, error) {
	return s.temas.List(ctx)
}

func (s *TemaService) Get(ctx context.Context, id uint) (*models.Tema, error) {
	return s.temas.GetByID(ctx, id)
}

func (s *TemaService) SearchByDescricao(ctx context.Context, descricao string) ([]models.Tema, error) {
	return s.temas.SearchByDescricao(ctx, descricao)
}

func (s *TemaService) Create(ctx context.Context, in TemaInput) (*models.Tema, error) {
	if err := validation.ValidateTema(in.Descricao); err != nil {
		return nil, err
	}
	tema := &models.Tema{Descricao: in.Descricao}
	if err := s.temas.Create(ctx, tema); err != nil {
		return nil, err
	}
	return tema, nil
}

func (s *TemaService) Update(ctx context.Context, in TemaInput) (*models.Tema, error) {
	if err := validation.ValidateTema(in.Descricao); err != nil {
		return nil, err
	}
	if err := s.temas.Update(ctx, &models.Tema{ID: in.ID, Descricao: in.Descricao}); err != nil {
		return nil, err
	}
	return s.temas.GetByID(ctx, in.ID)
}

// Delete removes the tema and, with it, all of its postagens.
func (s *TemaService) Delete(ctx context.Context, id uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "service", "TemaService.Delete",
		attribute.Int64("tema.id", int64(id)))
	defer func() { observability.EndSpan(span, err) }()

	return s.temas.Delete(ctx, id)
}
