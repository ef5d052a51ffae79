package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"blogpessoal/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed temas.yml
var temasFixture []byte

type temasFile struct {
	Temas []struct {
		Descricao string `yaml:"descricao"`
	} `yaml:"temas"`
}

// DefaultTemas returns the descricoes listed in the embedded fixture.
func DefaultTemas() ([]string, error) {
	var file temasFile
	if err := yaml.Unmarshal(temasFixture, &file); err != nil {
		return nil, fmt.Errorf("parse temas fixture: %w", err)
	}
	out := make([]string, 0, len(file.Temas))
	for _, t := range file.Temas {
		if t.Descricao != "" {
			out = append(out, t.Descricao)
		}
	}
	return out, nil
}

// Seeder fills the database with demo content.
type Seeder struct {
	db      *gorm.DB
	opts    Options
	factory *Factory
}

// NewSeeder creates a Seeder. A nil db is only valid with Options.DryRun.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	return &Seeder{db: db, opts: opts, factory: NewFactory(db, opts)}
}

// Factory exposes the entity factory used by the seeder.
func (s *Seeder) Factory() *Factory {
	return s.factory
}

// ClearAll removes every postagem, tema and usuario.
func (s *Seeder) ClearAll(ctx context.Context) error {
	if s.opts.DryRun {
		return nil
	}
	slog.InfoContext(ctx, "clearing existing data")
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.Postagem{}, &models.Tema{}, &models.Usuario{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureDefaultTemas creates every fixture tema whose descricao is not stored yet
// and returns all fixture temas.
func (s *Seeder) EnsureDefaultTemas(ctx context.Context) ([]models.Tema, error) {
	descricoes, err := DefaultTemas()
	if err != nil {
		return nil, err
	}

	temas := make([]models.Tema, 0, len(descricoes))
	for _, d := range descricoes {
		if !s.opts.DryRun {
			var existing models.Tema
			err := s.db.WithContext(ctx).Where("descricao = ?", d).First(&existing).Error
			if err == nil {
				temas = append(temas, existing)
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		tema, err := s.factory.CreateTema(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("create tema %q: %w", d, err)
		}
		temas = append(temas, *tema)
	}
	return temas, nil
}

// Populate creates NumUsuarios usuarios and NumPostagens postagens spread over
// the default temas and the new usuarios.
func (s *Seeder) Populate(ctx context.Context) error {
	slog.InfoContext(ctx, "starting database seeding",
		slog.Int("usuarios", s.opts.NumUsuarios),
		slog.Int("postagens", s.opts.NumPostagens),
	)

	if s.opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return fmt.Errorf("clear data: %w", err)
		}
	}

	temas, err := s.EnsureDefaultTemas(ctx)
	if err != nil {
		return fmt.Errorf("seed temas: %w", err)
	}
	if len(temas) == 0 {
		return errors.New("temas fixture is empty")
	}

	usuarios := make([]*models.Usuario, 0, s.opts.NumUsuarios)
	for i := 0; i < s.opts.NumUsuarios; i++ {
		u, err := s.factory.CreateUsuario(ctx)
		if err != nil {
			return fmt.Errorf("create usuario: %w", err)
		}
		usuarios = append(usuarios, u)
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(s.opts.Seed))
	postagens := make([]*models.Postagem, 0, s.opts.NumPostagens)
	for i := 0; i < s.opts.NumPostagens; i++ {
		tema := &temas[r.Intn(len(temas))]
		var autor *models.Usuario
		if len(usuarios) > 0 {
			autor = usuarios[r.Intn(len(usuarios))]
		}
		postagens = append(postagens, s.factory.BuildPostagem(tema, autor))
	}
	if err := s.factory.CreatePostagensBatch(ctx, postagens); err != nil {
		return fmt.Errorf("create postagens: %w", err)
	}

	slog.InfoContext(ctx, "database seeding completed",
		slog.Int("temas", len(temas)),
		slog.Int("usuarios", len(usuarios)),
		slog.Int("postagens", len(postagens)),
	)
	return nil
}
