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

// TemaRepository defines persistence operations for temas.
type TemaRepository interface {
	List(ctx context.Context) ([]models.Tema, error)
	GetByID(ctx context.Context, id uint) (*models.Tema, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	SearchByDescricao(ctx context.Context, descricao string) ([]models.Tema, error)
	Create(ctx context.Context, tema *models.Tema) error
	Update(ctx context.Context, tema *models.Tema) error
	Delete(ctx context.Context, id uint) error
}

type temaRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewTemaRepository returns a new TemaRepository implementation.
func NewTemaRepository(db *gorm.DB) TemaRepository {
	return &temaRepository{db: db, log: observability.NewRepoLogger(models.Tema{}.TableName())}
}

func (r *temaRepository) withPostagens(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Postagem", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

func (r *temaRepository) List(ctx context.Context) ([]models.Tema, error) {
	temas := []models.Tema{}
	if err := r.withPostagens(ctx).Order("id ASC").Find(&temas).Error; err != nil {
		r.log.LogError(ctx, "list", err)
		return nil, models.NewInternalError(err)
	}
	return temas, nil
}

func (r *temaRepository) GetByID(ctx context.Context, id uint) (*models.Tema, error) {
	var tema models.Tema

	err := cache.Aside(ctx, cache.TemaKey(id), &tema, cache.TemaTTL, func() error {
		if err := r.withPostagens(ctx).First(&tema, id).Error; err != nil {
			if isNotFound(err) {
				return models.NewNotFoundError("Tema", id)
			}
			r.log.LogError(ctx, "get", err)
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tema, nil
}

func (r *temaRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Tema{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *temaRepository) SearchByDescricao(ctx context.Context, descricao string) ([]models.Tema, error) {
	temas := []models.Tema{}
	err := r.withPostagens(ctx).
		Where("LOWER(descricao) LIKE ?"+likeEscapeClause, containsPattern(descricao)).
		Order("id ASC").
		Find(&temas).Error
	if err != nil {
		r.log.LogError(ctx, "search", err)
		return nil, models.NewInternalError(err)
	}
	return temas, nil
}

func (r *temaRepository) Create(ctx context.Context, tema *models.Tema) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(tema).Error; err != nil {
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "create", tema.ID)
	return nil
}

func (r *temaRepository) Update(ctx context.Context, tema *models.Tema) error {
	result := r.db.WithContext(ctx).Model(tema).
		Omit(clause.Associations).
		Select("descricao").
		Updates(tema)
	if result.Error != nil {
		r.log.LogError(ctx, "update", result.Error)
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Tema", tema.ID)
	}

	cache.InvalidateTema(ctx, tema.ID)
	r.log.LogWrite(ctx, "update", tema.ID)
	return nil
}

// Delete removes the tema and every postagem that references it in one transaction.
func (r *temaRepository) Delete(ctx context.Context, id uint) error {
	var postagemIDs []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Postagem{}).Where("tema_id = ?", id).Pluck("id", &postagemIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("tema_id = ?", id).Delete(&models.Postagem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Tema{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Tema", id)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		r.log.LogError(ctx, "delete", err)
		return models.NewInternalError(err)
	}

	cache.InvalidateTema(ctx, id)
	cache.InvalidatePostagens(ctx, postagemIDs...)
	r.log.LogWrite(ctx, "delete", id)
	return nil
}
