package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"blogpessoal/internal/cache"
	"blogpessoal/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsuarioRepository_GetByLogin(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUsuarioRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		login         string
		mockBehavior  func()
		expectedNome  string
		expectedNil   bool
		expectedError bool
	}{
		{
			name:  "Found",
			login: "root@root.com",
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "nome", "usuario", "senha"}).
					AddRow(1, "Root", "root@root.com", "$2a$10$hash")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tb_usuarios" WHERE usuario = $1`)).
					WillReturnRows(rows)
			},
			expectedNome: "Root",
		},
		{
			name:  "Absent",
			login: "ghost@root.com",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tb_usuarios" WHERE usuario = $1`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			expectedNil: true,
		},
		{
			name:  "Database Error",
			login: "root@root.com",
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "tb_usuarios" WHERE usuario = $1`)).
					WillReturnError(errors.New("connection timeout"))
			},
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			usuario, err := repo.GetByLogin(ctx, tt.login)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Equal(t, 500, models.StatusFor(err))
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, usuario)
			} else if assert.NotNil(t, usuario) {
				assert.Equal(t, tt.expectedNome, usuario.Nome)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUsuarioRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUsuarioRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tb_usuarios"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		usuario := &models.Usuario{Nome: "Root", Usuario: "root@root.com", Senha: "hash"}
		require.NoError(t, repo.Create(context.Background(), usuario))
		assert.Equal(t, uint(1), usuario.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Login", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUsuarioRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tb_usuarios"`)).
			WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.Usuario{Nome: "Root", Usuario: "root@root.com", Senha: "hash"})
		require.Error(t, err)
		assert.Equal(t, 400, models.StatusFor(err))
		assert.Contains(t, err.Error(), ErrUsuarioExists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUsuarioRepository_SQLite(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewUsuarioRepository(db)
	ctx := context.Background()

	first := &models.Usuario{Nome: "Ana", Usuario: "ana@email.com", Senha: "hash"}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &models.Usuario{Nome: "Outra Ana", Usuario: "ana@email.com", Senha: "hash"})
	require.Error(t, err, "unique index must reject duplicate login")
	assert.Equal(t, 400, models.StatusFor(err))

	first.Nome = "Ana Maria"
	require.NoError(t, repo.Update(ctx, first))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Nome)

	err = repo.Update(ctx, &models.Usuario{ID: 999, Nome: "X", Usuario: "x@email.com", Senha: "hash"})
	assert.Equal(t, 404, models.StatusFor(err))

	_, err = repo.GetByID(ctx, 999)
	assert.Equal(t, 404, models.StatusFor(err))

	exists, err := repo.ExistsByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUsuarioRepository_UpdateDropsCachedPostagens(t *testing.T) {
	db := setupSQLiteDB(t)
	mr := useTestCache(t)
	usuarios := NewUsuarioRepository(db)
	postagens := NewPostagemRepository(db)
	ctx := context.Background()

	autor := &models.Usuario{Nome: "Ana", Usuario: "ana@email.com", Senha: "hash"}
	require.NoError(t, usuarios.Create(ctx, autor))
	tema := models.Tema{Descricao: "Go"}
	require.NoError(t, db.Create(&tema).Error)
	postagem := &models.Postagem{Titulo: "Canais", Texto: "conteúdo", TemaID: tema.ID, UsuarioID: &autor.ID}
	require.NoError(t, postagens.Create(ctx, postagem))

	_, err := postagens.GetByID(ctx, postagem.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.PostagemKey(postagem.ID)))

	autor.Nome = "Ana Maria"
	require.NoError(t, usuarios.Update(ctx, autor))
	assert.False(t, mr.Exists(cache.PostagemKey(postagem.ID)))

	got, err := postagens.GetByID(ctx, postagem.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Usuario)
	assert.Equal(t, "Ana Maria", got.Usuario.Nome)
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: tb_usuarios.usuario")))
	assert.False(t, isUniqueConstraintError(errors.New("connection reset")))
}
