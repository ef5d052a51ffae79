package server

import (
	"blogpessoal/internal/models"
	"blogpessoal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type usuarioRequest struct {
	ID      uint   `json:"id"`
	Nome    string `json:"nome"`
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
	Foto    string `json:"foto"`
}

func (r usuarioRequest) input() service.UsuarioInput {
	return service.UsuarioInput{
		ID:      r.ID,
		Nome:    r.Nome,
		Usuario: r.Usuario,
		Senha:   r.Senha,
		Foto:    r.Foto,
	}
}

type loginRequest struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

// GetAllUsuarios handles GET /usuarios/all
func (s *Server) GetAllUsuarios(c *fiber.Ctx) error {
	usuarios, err := s.usuarioService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(usuarios)
}

// GetUsuario handles GET /usuarios/:id
func (s *Server) GetUsuario(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	usuario, err := s.usuarioService.Get(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(usuario)
}

// CadastrarUsuario handles POST /usuarios/cadastrar. The stored hash never leaves the server.
func (s *Server) CadastrarUsuario(c *fiber.Ctx) error {
	var req usuarioRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := req.input()
	in.ID = 0
	usuario, err := s.usuarioService.Cadastrar(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(usuario)
}

// AtualizarUsuario handles PUT /usuarios/atualizar
func (s *Server) AtualizarUsuario(c *fiber.Ctx) error {
	var req usuarioRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	usuario, err := s.usuarioService.Atualizar(c.UserContext(), req.input())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(usuario)
}

// Logar handles POST /usuarios/logar
func (s *Server) Logar(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	login, err := s.usuarioService.Autenticar(c.UserContext(), service.LoginInput{
		Usuario: req.Usuario,
		Senha:   req.Senha,
	})
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(login)
}
