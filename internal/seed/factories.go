// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"blogpessoal/internal/models"
	"blogpessoal/internal/security"
	"blogpessoal/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultSenha is the plain password of every generated usuario.
const DefaultSenha = "senha12345"

// Options configures the Factory and the Seeder.
type Options struct {
	NumUsuarios  int
	NumPostagens int
	ShouldClean  bool
	// DryRun assigns synthetic ids instead of writing to the database.
	DryRun bool
	// SkipBcrypt stores DefaultSenha unhashed; such usuarios cannot log in.
	SkipBcrypt bool
	// Seed makes generated content reproducible when non-zero.
	Seed int64
}

// Factory builds domain entities that pass validation and persists them.
type Factory struct {
	db     *gorm.DB
	opts   Options
	faker  *gofakeit.Faker
	nextID uint
	hash   string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	return &Factory{db: db, opts: opts, faker: gofakeit.New(opts.Seed), nextID: 1000}
}

func (f *Factory) senha() (string, error) {
	if f.opts.SkipBcrypt {
		return DefaultSenha, nil
	}
	if f.hash == "" {
		h, err := security.HashPassword(DefaultSenha)
		if err != nil {
			return "", err
		}
		f.hash = h
	}
	return f.hash, nil
}

// BuildUsuario returns an unsaved usuario with a unique-looking e-mail login.
func (f *Factory) BuildUsuario(overrides ...func(*models.Usuario)) (*models.Usuario, error) {
	senha, err := f.senha()
	if err != nil {
		return nil, fmt.Errorf("hash senha: %w", err)
	}
	nome := f.faker.Name()
	usuario := &models.Usuario{
		Nome:    nome,
		Usuario: fmt.Sprintf("%s.%d@%s", strings.ToLower(f.faker.Username()), f.faker.Number(100, 99999), f.faker.DomainName()),
		Senha:   senha,
		Foto:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
	}
	for _, override := range overrides {
		override(usuario)
	}
	return usuario, nil
}

// CreateUsuario builds and persists a usuario.
func (f *Factory) CreateUsuario(ctx context.Context, overrides ...func(*models.Usuario)) (*models.Usuario, error) {
	usuario, err := f.BuildUsuario(overrides...)
	if err != nil {
		return nil, err
	}
	if err := f.persist(ctx, usuario, &usuario.ID); err != nil {
		return nil, err
	}
	return usuario, nil
}

// CreateTema persists a tema with the given descricao, or a generated one when empty.
func (f *Factory) CreateTema(ctx context.Context, descricao string) (*models.Tema, error) {
	if descricao == "" {
		descricao = f.faker.HipsterWord()
	}
	tema := &models.Tema{Descricao: clip(descricao, validation.MaxNomeLen)}
	if err := f.persist(ctx, tema, &tema.ID); err != nil {
		return nil, err
	}
	return tema, nil
}

// BuildPostagem returns an unsaved postagem within the titulo and texto length limits.
func (f *Factory) BuildPostagem(tema *models.Tema, autor *models.Usuario, overrides ...func(*models.Postagem)) *models.Postagem {
	postagem := &models.Postagem{
		Titulo: clip(strings.TrimSuffix(f.faker.Sentence(f.faker.Number(2, 8)), "."), validation.MaxTituloLen),
		Texto:  clip(f.faker.Paragraph(1, f.faker.Number(2, 5), 12, " "), validation.MaxTextoLen),
		TemaID: tema.ID,
	}
	if autor != nil {
		id := autor.ID
		postagem.UsuarioID = &id
	}
	for _, override := range overrides {
		override(postagem)
	}
	return postagem
}

// CreatePostagensBatch persists postagens in batches of 100.
func (f *Factory) CreatePostagensBatch(ctx context.Context, postagens []*models.Postagem) error {
	if len(postagens) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, p := range postagens {
			f.nextID++
			p.ID = f.nextID
		}
		slog.InfoContext(ctx, "[dry-run] CreatePostagensBatch", slog.Int("count", len(postagens)))
		return nil
	}
	return f.db.WithContext(ctx).CreateInBatches(postagens, 100).Error
}

func (f *Factory) persist(ctx context.Context, value any, id *uint) error {
	if f.opts.DryRun {
		f.nextID++
		*id = f.nextID
		return nil
	}
	return f.db.WithContext(ctx).Create(value).Error
}

// clip cuts s to at most n runes.
func clip(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n]))
}
