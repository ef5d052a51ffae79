// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"blogpessoal/internal/cache"
	"blogpessoal/internal/models"
	"blogpessoal/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostagemRepository defines persistence operations for postagens.
type PostagemRepository interface {
	List(ctx context.Context) ([]models.Postagem, error)
	GetByID(ctx context.Context, id uint) (*models.Postagem, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	SearchByTitulo(ctx context.Context, titulo string) ([]models.Postagem, error)
	Create(ctx context.Context, postagem *models.Postagem) error
	Update(ctx context.Context, postagem *models.Postagem) error
	Delete(ctx context.Context, id uint) error
}

type postagemRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewPostagemRepository returns a new PostagemRepository implementation.
func NewPostagemRepository(db *gorm.DB) PostagemRepository {
	return &postagemRepository{db: db, log: observability.NewRepoLogger(models.Postagem{}.TableName())}
}

func (r *postagemRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Tema").Preload("Usuario")
}

func (r *postagemRepository) List(ctx context.Context) ([]models.Postagem, error) {
	postagens := []models.Postagem{}
	if err := r.withDetails(ctx).Order("id ASC").Find(&postagens).Error; err != nil {
		r.log.LogError(ctx, "list", err)
		return nil, models.NewInternalError(err)
	}
	return postagens, nil
}

// GetByID is cache-aside. A cached copy carries no TemaID or UsuarioID (both are
// json:"-"); read the Tema and Usuario associations instead.
func (r *postagemRepository) GetByID(ctx context.Context, id uint) (*models.Postagem, error) {
	var postagem models.Postagem

	err := cache.Aside(ctx, cache.PostagemKey(id), &postagem, cache.PostagemTTL, func() error {
		if err := r.withDetails(ctx).First(&postagem, id).Error; err != nil {
			if isNotFound(err) {
				return models.NewNotFoundError("Postagem", id)
			}
			r.log.LogError(ctx, "get", err)
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &postagem, nil
}

func (r *postagemRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Postagem{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postagemRepository) SearchByTitulo(ctx context.Context, titulo string) ([]models.Postagem, error) {
	postagens := []models.Postagem{}
	err := r.withDetails(ctx).
		Where("LOWER(titulo) LIKE ?"+likeEscapeClause, containsPattern(titulo)).
		Order("id ASC").
		Find(&postagens).Error
	if err != nil {
		r.log.LogError(ctx, "search", err)
		return nil, models.NewInternalError(err)
	}
	return postagens, nil
}

func (r *postagemRepository) Create(ctx context.Context, postagem *models.Postagem) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(postagem).Error; err != nil {
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	cache.InvalidateTema(ctx, postagem.TemaID)
	r.log.LogWrite(ctx, "create", postagem.ID)
	return nil
}

// Update overwrites titulo, texto and tema. The author is written only when
// UsuarioID is set, otherwise the stored one is kept. Data is refreshed by GORM.
func (r *postagemRepository) Update(ctx context.Context, postagem *models.Postagem) error {
	var previousTemaID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Postagem{}).Where("id = ?", postagem.ID).
			Select("tema_id").Scan(&previousTemaID).Error; err != nil {
			return err
		}

		columns := []string{"titulo", "texto", "tema_id"}
		if postagem.UsuarioID != nil {
			columns = append(columns, "usuario_id")
		}
		result := tx.Model(postagem).
			Omit(clause.Associations).
			Select(columns).
			Updates(postagem)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Postagem", postagem.ID)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		r.log.LogError(ctx, "update", err)
		return models.NewInternalError(err)
	}

	cache.InvalidatePostagens(ctx, postagem.ID)
	cache.InvalidateTema(ctx, postagem.TemaID)
	if previousTemaID != 0 && previousTemaID != postagem.TemaID {
		cache.InvalidateTema(ctx, previousTemaID)
	}
	r.log.LogWrite(ctx, "update", postagem.ID)
	return nil
}

func (r *postagemRepository) Delete(ctx context.Context, id uint) error {
	var postagem models.Postagem
	if err := r.db.WithContext(ctx).Select("id", "tema_id").First(&postagem, id).Error; err != nil {
		if isNotFound(err) {
			return models.NewNotFoundError("Postagem", id)
		}
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}

	result := r.db.WithContext(ctx).Delete(&models.Postagem{}, id)
	if result.Error != nil {
		r.log.LogError(ctx, "delete", result.Error)
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Postagem", id)
	}

	cache.InvalidatePostagens(ctx, id)
	cache.InvalidateTema(ctx, postagem.TemaID)
	r.log.LogWrite(ctx, "delete", id)
	return nil
}
