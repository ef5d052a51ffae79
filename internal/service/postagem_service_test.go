package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"blogpessoal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostagemService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	valid := PostagemInput{Titulo: "Olá mundo", Texto: "Primeiro post", TemaID: 1, AuthorID: 5}

	t.Run("titulo too short", func(t *testing.T) {
		t.Parallel()
		svc := NewPostagemService(noopPostagemRepo(), noopTemaRepo(), noopUsuarioRepo())
		in := valid
		in.Titulo = "ab"
		appErr := assertValidationError(t, func() error { _, err := svc.Create(ctx, in); return err }())
		assert.Contains(t, appErr.Fields, "titulo")
	})

	t.Run("texto too long", func(t *testing.T) {
		t.Parallel()
		svc := NewPostagemService(noopPostagemRepo(), noopTemaRepo(), noopUsuarioRepo())
		in := valid
		in.Texto = strings.Repeat("x", 1001)
		_, err := svc.Create(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("tema absent", func(t *testing.T) {
		t.Parallel()
		temas := noopTemaRepo()
		temas.existsByIDFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		postagens := noopPostagemRepo()
		postagens.createFn = func(_ context.Context, _ *models.Postagem) error {
			t.Fatal("create must not be called")
			return nil
		}
		svc := NewPostagemService(postagens, temas, noopUsuarioRepo())
		_, err := svc.Create(ctx, valid)
		appErr := assertValidationError(t, err)
		assert.Equal(t, MsgTemaNaoExiste, appErr.Message)
	})

	t.Run("named author absent", func(t *testing.T) {
		t.Parallel()
		usuarios := noopUsuarioRepo()
		usuarios.existsByIDFn = func(_ context.Context, id uint) (bool, error) { return id != 9, nil }
		svc := NewPostagemService(noopPostagemRepo(), noopTemaRepo(), usuarios)
		in := valid
		in.UsuarioID = 9
		_, err := svc.Create(ctx, in)
		appErr := assertValidationError(t, err)
		assert.Equal(t, MsgUsuarioNaoExiste, appErr.Message)
	})

	t.Run("defaults author to principal", func(t *testing.T) {
		t.Parallel()
		var saved *models.Postagem
		postagens := noopPostagemRepo()
		postagens.createFn = func(_ context.Context, p *models.Postagem) error {
			p.ID = 10
			saved = p
			return nil
		}
		svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
		got, err := svc.Create(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, uint(10), got.ID)
		require.NotNil(t, saved.UsuarioID)
		assert.Equal(t, uint(5), *saved.UsuarioID)
	})

	t.Run("repository error propagates", func(t *testing.T) {
		t.Parallel()
		repoErr := errors.New("insert failed")
		postagens := noopPostagemRepo()
		postagens.createFn = func(_ context.Context, _ *models.Postagem) error { return repoErr }
		svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
		_, err := svc.Create(ctx, valid)
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestPostagemService_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	valid := PostagemInput{ID: 3, Titulo: "Olá mundo", Texto: "Texto novo", TemaID: 2}

	t.Run("validation runs before lookup", func(t *testing.T) {
		t.Parallel()
		postagens := noopPostagemRepo()
		postagens.getByIDFn = func(_ context.Context, _ uint) (*models.Postagem, error) {
			t.Fatal("lookup must not run for an invalid body")
			return nil, nil
		}
		svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
		in := valid
		in.Texto = " "
		_, err := svc.Update(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		t.Parallel()
		postagens := noopPostagemRepo()
		postagens.getByIDFn = func(_ context.Context, id uint) (*models.Postagem, error) {
			return nil, models.NewNotFoundError("Postagem", id)
		}
		svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
		_, err := svc.Update(ctx, valid)
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("tema absent", func(t *testing.T) {
		t.Parallel()
		temas := noopTemaRepo()
		temas.existsByIDFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
		svc := NewPostagemService(noopPostagemRepo(), temas, noopUsuarioRepo())
		_, err := svc.Update(ctx, valid)
		appErr := assertValidationError(t, err)
		assert.Equal(t, MsgTemaNaoExiste, appErr.Message)
	})

	t.Run("leaves author unset when body names none", func(t *testing.T) {
		t.Parallel()
		var saved *models.Postagem
		postagens := noopPostagemRepo()
		postagens.getByIDFn = func(_ context.Context, id uint) (*models.Postagem, error) {
			// Cached reads carry no foreign keys.
			return &models.Postagem{ID: id}, nil
		}
		postagens.updateFn = func(_ context.Context, p *models.Postagem) error {
			saved = p
			return nil
		}
		svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
		_, err := svc.Update(ctx, valid)
		require.NoError(t, err)
		assert.Nil(t, saved.UsuarioID)
		assert.Equal(t, "Texto novo", saved.Texto)
	})

	t.Run("named author replaces stored one", func(t *testing.T) {
		t.Parallel()
		var saved *models.Postagem
		postagens := noopPostagemRepo()
		postagens.updateFn = func(_ context.Context, p *models.Postagem) error {
			saved = p
			return nil
		}
		in := valid
		in.UsuarioID = 8
		svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
		_, err := svc.Update(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, saved.UsuarioID)
		assert.Equal(t, uint(8), *saved.UsuarioID)
	})
}

func TestPostagemService_Delete(t *testing.T) {
	t.Parallel()
	postagens := noopPostagemRepo()
	postagens.deleteFn = func(_ context.Context, id uint) error {
		return models.NewNotFoundError("Postagem", id)
	}
	svc := NewPostagemService(postagens, noopTemaRepo(), noopUsuarioRepo())
	assertAppError(t, svc.Delete(context.Background(), 4), models.CodeNotFound)
}
