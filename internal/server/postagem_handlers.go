package server

import (
	"blogpessoal/internal/models"
	"blogpessoal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type idRef struct {
	ID uint `json:"id"`
}

type postagemRequest struct {
	ID      uint   `json:"id"`
	Titulo  string `json:"titulo"`
	Texto   string `json:"texto"`
	Tema    *idRef `json:"tema"`
	Usuario *idRef `json:"usuario"`
}

func (r postagemRequest) input(c *fiber.Ctx) service.PostagemInput {
	in := service.PostagemInput{
		ID:     r.ID,
		Titulo: r.Titulo,
		Texto:  r.Texto,
	}
	if r.Tema != nil {
		in.TemaID = r.Tema.ID
	}
	if r.Usuario != nil {
		in.UsuarioID = r.Usuario.ID
	}
	if p := currentPrincipal(c); p != nil {
		in.AuthorID = p.ID
	}
	return in
}

// GetAllPostagens handles GET /postagens
func (s *Server) GetAllPostagens(c *fiber.Ctx) error {
	postagens, err := s.postagemService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(postagens)
}

// GetPostagem handles GET /postagens/:id
func (s *Server) GetPostagem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	postagem, err := s.postagemService.Get(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(postagem)
}

// GetPostagensByTitulo handles GET /postagens/titulo/:titulo
func (s *Server) GetPostagensByTitulo(c *fiber.Ctx) error {
	postagens, err := s.postagemService.SearchByTitulo(c.UserContext(), c.Params("titulo"))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(postagens)
}

// CreatePostagem handles POST /postagens
func (s *Server) CreatePostagem(c *fiber.Ctx) error {
	var req postagemRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	in := req.input(c)
	in.ID = 0
	postagem, err := s.postagemService.Create(c.UserContext(), in)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(postagem)
}

// UpdatePostagem handles PUT /postagens. The id travels in the body.
func (s *Server) UpdatePostagem(c *fiber.Ctx) error {
	var req postagemRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	postagem, err := s.postagemService.Update(c.UserContext(), req.input(c))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(postagem)
}

// DeletePostagem handles DELETE /postagens/:id
func (s *Server) DeletePostagem(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postagemService.Delete(c.UserContext(), id); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
