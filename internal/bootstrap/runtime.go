// Package bootstrap prepares the database and cache before the server starts.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"blogpessoal/internal/cache"
	"blogpessoal/internal/config"
	"blogpessoal/internal/database"
	"blogpessoal/internal/featureflags"
	"blogpessoal/internal/models"
	"blogpessoal/internal/security"
	"blogpessoal/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	defaultRootNome    = "Root"
	defaultRootUsuario = "root@root.com"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedTemas forces the default temas even when the seed_temas flag is off.
	SeedTemas bool
}

// InitRuntime connects to DB and Redis and optionally seeds the default temas.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := prepare(ctx, cfg, db, opts); err != nil {
		return nil, nil, err
	}
	return db, r, nil
}

func prepare(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) error {
	if err := ensureDevRoot(ctx, cfg, db); err != nil {
		return fmt.Errorf("failed to bootstrap development root usuario: %w", err)
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)
	if opts.SeedTemas || flags.EnabledGlobally(featureflags.SeedTemas) {
		temas, err := seed.NewSeeder(db, seed.Options{}).EnsureDefaultTemas(ctx)
		if err != nil {
			return fmt.Errorf("failed to seed default temas: %w", err)
		}
		slog.InfoContext(ctx, "default temas ensured", slog.Int("count", len(temas)))
	}
	return nil
}

// ensureDevRoot creates or refreshes usuario ID 1 from the DEV_ROOT_* settings.
// It only runs in development with DEV_BOOTSTRAP_ROOT enabled.
func ensureDevRoot(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapRoot {
		return nil
	}

	nome := strings.TrimSpace(cfg.DevRootNome)
	if nome == "" {
		nome = defaultRootNome
	}
	login := strings.TrimSpace(strings.ToLower(cfg.DevRootUsuario))
	if login == "" {
		login = defaultRootUsuario
	}
	if cfg.DevRootSenha == "" {
		return fmt.Errorf("DEV_ROOT_SENHA must be set when DEV_BOOTSTRAP_ROOT is enabled")
	}

	hash, err := security.HashPassword(cfg.DevRootSenha)
	if err != nil {
		return fmt.Errorf("hash root senha: %w", err)
	}

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root models.Usuario
		findErr := tx.First(&root, 1).Error
		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			root = models.Usuario{ID: 1, Nome: nome, Usuario: login, Senha: hash}
			if err := tx.Create(&root).Error; err != nil {
				return err
			}
		case findErr != nil:
			return findErr
		default:
			if err := tx.Model(&models.Usuario{}).Where("id = ?", 1).Updates(map[string]any{
				"nome":    nome,
				"usuario": login,
				"senha":   hash,
			}).Error; err != nil {
				return err
			}
		}

		// The explicit ID insert leaves the PostgreSQL sequence behind.
		if tx.Dialector.Name() == database.DriverPostgres {
			if err := tx.Exec(`
				SELECT setval(
					pg_get_serial_sequence('tb_usuarios', 'id'),
					GREATEST((SELECT COALESCE(MAX(id), 1) FROM tb_usuarios), 1),
					true
				)
			`).Error; err != nil {
				return fmt.Errorf("failed to reset tb_usuarios sequence: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}

	cache.InvalidatePrincipal(ctx, login)
	slog.InfoContext(ctx, "development root usuario ensured", slog.String("usuario", login))
	return nil
}
