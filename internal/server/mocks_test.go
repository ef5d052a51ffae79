package server

import (
	"context"

	"blogpessoal/internal/config"
	"blogpessoal/internal/featureflags"
	"blogpessoal/internal/models"
	"blogpessoal/internal/security"
	"blogpessoal/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
)

// MockPostagemRepository is a mock of the PostagemRepository interface
type MockPostagemRepository struct {
	mock.Mock
}

func (m *MockPostagemRepository) List(ctx context.Context) ([]models.Postagem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Postagem), args.Error(1)
}

func (m *MockPostagemRepository) GetByID(ctx context.Context, id uint) (*models.Postagem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Postagem), args.Error(1)
}

func (m *MockPostagemRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostagemRepository) SearchByTitulo(ctx context.Context, titulo string) ([]models.Postagem, error) {
	args := m.Called(ctx, titulo)
	return args.Get(0).([]models.Postagem), args.Error(1)
}

func (m *MockPostagemRepository) Create(ctx context.Context, postagem *models.Postagem) error {
	args := m.Called(ctx, postagem)
	return args.Error(0)
}

func (m *MockPostagemRepository) Update(ctx context.Context, postagem *models.Postagem) error {
	args := m.Called(ctx, postagem)
	return args.Error(0)
}

func (m *MockPostagemRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTemaRepository is a mock of the TemaRepository interface
type MockTemaRepository struct {
	mock.Mock
}

func (m *MockTemaRepository) List(ctx context.Context) ([]models.Tema, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Tema), args.Error(1)
}

func (m *MockTemaRepository) GetByID(ctx context.Context, id uint) (*models.Tema, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Tema), args.Error(1)
}

func (m *MockTemaRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTemaRepository) SearchByDescricao(ctx context.Context, descricao string) ([]models.Tema, error) {
	args := m.Called(ctx, descricao)
	return args.Get(0).([]models.Tema), args.Error(1)
}

func (m *MockTemaRepository) Create(ctx context.Context, tema *models.Tema) error {
	args := m.Called(ctx, tema)
	return args.Error(0)
}

func (m *MockTemaRepository) Update(ctx context.Context, tema *models.Tema) error {
	args := m.Called(ctx, tema)
	return args.Error(0)
}

func (m *MockTemaRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUsuarioRepository is a mock of the UsuarioRepository interface
type MockUsuarioRepository struct {
	mock.Mock
}

func (m *MockUsuarioRepository) List(ctx context.Context) ([]models.Usuario, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) GetByLogin(ctx context.Context, usuario string) (*models.Usuario, error) {
	args := m.Called(ctx, usuario)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usuario), args.Error(1)
}

func (m *MockUsuarioRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

func (m *MockUsuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	args := m.Called(ctx, usuario)
	return args.Error(0)
}

type mockRepos struct {
	postagens *MockPostagemRepository
	temas     *MockTemaRepository
	usuarios  *MockUsuarioRepository
}

// newMockServer wires services over mock repositories. The returned app has
// no auth filter; every request runs as the principal with ID 1.
func newMockServer() (*Server, *fiber.App, *mockRepos) {
	repos := &mockRepos{
		postagens: new(MockPostagemRepository),
		temas:     new(MockTemaRepository),
		usuarios:  new(MockUsuarioRepository),
	}
	tokens := security.NewJWTService("test-secret", 0, "blogpessoal-test")
	s := &Server{
		config:          &config.Config{JWTSecret: "test-secret"},
		featureFlags:    featureflags.NewManager(""),
		tokens:          tokens,
		principals:      security.NewPrincipalLoader(repos.usuarios),
		postagemRepo:    repos.postagens,
		temaRepo:        repos.temas,
		usuarioRepo:     repos.usuarios,
		postagemService: service.NewPostagemService(repos.postagens, repos.temas, repos.usuarios),
		temaService:     service.NewTemaService(repos.temas),
		usuarioService:  service.NewUsuarioService(repos.usuarios, tokens),
	}

	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(security.LocalsPrincipal, &security.Principal{ID: 1, Usuario: "root@root.com"})
		c.Locals(security.LocalsUserID, uint(1))
		return c.Next()
	})
	return s, app, repos
}
