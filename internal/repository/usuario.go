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

// ErrUsuarioExists is the message returned when a login is already taken.
const ErrUsuarioExists = "O Usuário já existe!"

// UsuarioRepository defines persistence operations for usuarios.
type UsuarioRepository interface {
	List(ctx context.Context) ([]models.Usuario, error)
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	GetByLogin(ctx context.Context, usuario string) (*models.Usuario, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, usuario *models.Usuario) error
	Update(ctx context.Context, usuario *models.Usuario) error
}

type usuarioRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewUsuarioRepository returns a new UsuarioRepository implementation.
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db, log: observability.NewRepoLogger(models.Usuario{}.TableName())}
}

func (r *usuarioRepository) List(ctx context.Context) ([]models.Usuario, error) {
	usuarios := []models.Usuario{}
	err := r.db.WithContext(ctx).
		Preload("Postagem", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&usuarios).Error
	if err != nil {
		r.log.LogError(ctx, "list", err)
		return nil, models.NewInternalError(err)
	}
	return usuarios, nil
}

func (r *usuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).
		Preload("Postagem", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&usuario, id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("Usuario", id)
		}
		r.log.LogError(ctx, "get", err)
		return nil, models.NewInternalError(err)
	}
	return &usuario, nil
}

// GetByLogin returns (nil, nil) when no usuario has that login.
func (r *usuarioRepository) GetByLogin(ctx context.Context, login string) (*models.Usuario, error) {
	var usuario models.Usuario
	if err := r.db.WithContext(ctx).Where("usuario = ?", login).First(&usuario).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		r.log.LogError(ctx, "get_by_login", err)
		return nil, models.NewInternalError(err)
	}
	return &usuario, nil
}

func (r *usuarioRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Usuario{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(usuario).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError(ErrUsuarioExists)
		}
		r.log.LogError(ctx, "create", err)
		return models.NewInternalError(err)
	}
	r.log.LogWrite(ctx, "create", usuario.ID)
	return nil
}

// Update overwrites every column. The previous login's cached principal is dropped,
// and so are the cached postagens that embed this usuario as author.
func (r *usuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	var (
		previousLogin string
		postagemIDs   []uint
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Usuario{}).Where("id = ?", usuario.ID).
			Select("usuario").Scan(&previousLogin).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Postagem{}).Where("usuario_id = ?", usuario.ID).
			Pluck("id", &postagemIDs).Error; err != nil {
			return err
		}

		result := tx.Model(usuario).
			Omit(clause.Associations).
			Select("nome", "usuario", "senha", "foto").
			Updates(usuario)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return models.NewNotFoundError("Usuario", usuario.ID)
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		if isUniqueConstraintError(err) {
			return models.NewValidationError(ErrUsuarioExists)
		}
		r.log.LogError(ctx, "update", err)
		return models.NewInternalError(err)
	}

	if previousLogin != "" {
		cache.InvalidatePrincipal(ctx, previousLogin)
	}
	cache.InvalidatePrincipal(ctx, usuario.Usuario)
	cache.InvalidatePostagens(ctx, postagemIDs...)
	r.log.LogWrite(ctx, "update", usuario.ID)
	return nil
}
