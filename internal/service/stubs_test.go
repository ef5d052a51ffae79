package service

import (
	"context"
	"errors"
	"testing"

	"blogpessoal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postagemRepoStub is a stub for repository.PostagemRepository.
type postagemRepoStub struct {
	listFn           func(context.Context) ([]models.Postagem, error)
	getByIDFn        func(context.Context, uint) (*models.Postagem, error)
	existsByIDFn     func(context.Context, uint) (bool, error)
	searchByTituloFn func(context.Context, string) ([]models.Postagem, error)
	createFn         func(context.Context, *models.Postagem) error
	updateFn         func(context.Context, *models.Postagem) error
	deleteFn         func(context.Context, uint) error
}

func (s *postagemRepoStub) List(ctx context.Context) ([]models.Postagem, error) {
	return s.listFn(ctx)
}
func (s *postagemRepoStub) GetByID(ctx context.Context, id uint) (*models.Postagem, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postagemRepoStub) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.existsByIDFn(ctx, id)
}
func (s *postagemRepoStub) SearchByTitulo(ctx context.Context, titulo string) ([]models.Postagem, error) {
	return s.searchByTituloFn(ctx, titulo)
}
func (s *postagemRepoStub) Create(ctx context.Context, p *models.Postagem) error {
	return s.createFn(ctx, p)
}
func (s *postagemRepoStub) Update(ctx context.Context, p *models.Postagem) error {
	return s.updateFn(ctx, p)
}
func (s *postagemRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostagemRepo() *postagemRepoStub {
	return &postagemRepoStub{
		listFn:       func(_ context.Context) ([]models.Postagem, error) { return nil, nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Postagem, error) { return &models.Postagem{ID: id}, nil },
		existsByIDFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
		searchByTituloFn: func(_ context.Context, _ string) ([]models.Postagem, error) {
			return nil, nil
		},
		createFn: func(_ context.Context, p *models.Postagem) error { p.ID = 1; return nil },
		updateFn: func(_ context.Context, _ *models.Postagem) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// temaRepoStub is a stub for repository.TemaRepository.
type temaRepoStub struct {
	listFn              func(context.Context) ([]models.Tema, error)
	getByIDFn           func(context.Context, uint) (*models.Tema, error)
	existsByIDFn        func(context.Context, uint) (bool, error)
	searchByDescricaoFn func(context.Context, string) ([]models.Tema, error)
	createFn            func(context.Context, *models.Tema) error
	updateFn            func(context.Context, *models.Tema) error
	deleteFn            func(context.Context, uint) error
}

func (s *temaRepoStub) List(ctx context.Context) ([]models.Tema, error) {
	return s.listFn(ctx)
}
func (s *temaRepoStub) GetByID(ctx context.Context, id uint) (*models.Tema, error) {
	return s.getByIDFn(ctx, id)
}
func (s *temaRepoStub) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.existsByIDFn(ctx, id)
}
func (s *temaRepoStub) SearchByDescricao(ctx context.Context, d string) ([]models.Tema, error) {
	return s.searchByDescricaoFn(ctx, d)
}
func (s *temaRepoStub) Create(ctx context.Context, t *models.Tema) error {
	return s.createFn(ctx, t)
}
func (s *temaRepoStub) Update(ctx context.Context, t *models.Tema) error {
	return s.updateFn(ctx, t)
}
func (s *temaRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopTemaRepo() *temaRepoStub {
	return &temaRepoStub{
		listFn:              func(_ context.Context) ([]models.Tema, error) { return nil, nil },
		getByIDFn:           func(_ context.Context, id uint) (*models.Tema, error) { return &models.Tema{ID: id}, nil },
		existsByIDFn:        func(_ context.Context, _ uint) (bool, error) { return true, nil },
		searchByDescricaoFn: func(_ context.Context, _ string) ([]models.Tema, error) { return nil, nil },
		createFn:            func(_ context.Context, t *models.Tema) error { t.ID = 1; return nil },
		updateFn:            func(_ context.Context, _ *models.Tema) error { return nil },
		deleteFn:            func(_ context.Context, _ uint) error { return nil },
	}
}

// usuarioRepoStub is a stub for repository.UsuarioRepository.
type usuarioRepoStub struct {
	listFn       func(context.Context) ([]models.Usuario, error)
	getByIDFn    func(context.Context, uint) (*models.Usuario, error)
	getByLoginFn func(context.Context, string) (*models.Usuario, error)
	existsByIDFn func(context.Context, uint) (bool, error)
	createFn     func(context.Context, *models.Usuario) error
	updateFn     func(context.Context, *models.Usuario) error
}

func (s *usuarioRepoStub) List(ctx context.Context) ([]models.Usuario, error) {
	return s.listFn(ctx)
}
func (s *usuarioRepoStub) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	return s.getByIDFn(ctx, id)
}
func (s *usuarioRepoStub) GetByLogin(ctx context.Context, login string) (*models.Usuario, error) {
	return s.getByLoginFn(ctx, login)
}
func (s *usuarioRepoStub) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.existsByIDFn(ctx, id)
}
func (s *usuarioRepoStub) Create(ctx context.Context, u *models.Usuario) error {
	return s.createFn(ctx, u)
}
func (s *usuarioRepoStub) Update(ctx context.Context, u *models.Usuario) error {
	return s.updateFn(ctx, u)
}

func noopUsuarioRepo() *usuarioRepoStub {
	return &usuarioRepoStub{
		listFn:       func(_ context.Context) ([]models.Usuario, error) { return nil, nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Usuario, error) { return &models.Usuario{ID: id}, nil },
		getByLoginFn: func(_ context.Context, _ string) (*models.Usuario, error) { return nil, nil },
		existsByIDFn: func(_ context.Context, _ uint) (bool, error) { return true, nil },
		createFn:     func(_ context.Context, u *models.Usuario) error { u.ID = 1; return nil },
		updateFn:     func(_ context.Context, _ *models.Usuario) error { return nil },
	}
}

// assertAppError asserts that err is an AppError with the given code.
func assertAppError(t *testing.T, err error, code string) *models.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) *models.AppError {
	t.Helper()
	return assertAppError(t, err, models.CodeValidation)
}
