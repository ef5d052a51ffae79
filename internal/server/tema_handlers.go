package server

import (
	"blogpessoal/internal/models"
	"blogpessoal/internal/service"

	"github.com/gofiber/fiber/v2"
)

type temaRequest struct {
	ID        uint   `json:"id"`
	Descricao string `json:"descricao"`
}

// GetAllTemas handles GET /temas
func (s *Server) GetAllTemas(c *fiber.Ctx) error {
	temas, err := s.temaService.List(c.UserContext())
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(temas)
}

// GetTema handles GET /temas/:id
func (s *Server) GetTema(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	tema, err := s.temaService.Get(c.UserContext(), id)
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(tema)
}

// GetTemasByDescricao handles GET /temas/descricao/:descricao
func (s *Server) GetTemasByDescricao(c *fiber.Ctx) error {
	temas, err := s.temaService.SearchByDescricao(c.UserContext(), c.Params("descricao"))
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(temas)
}

// CreateTema handles POST /temas
func (s *Server) CreateTema(c *fiber.Ctx) error {
	var req temaRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	tema, err := s.temaService.Create(c.UserContext(), service.TemaInput{Descricao: req.Descricao})
	if err != nil {
		return models.Respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tema)
}

// UpdateTema handles PUT /temas
func (s *Server) UpdateTema(c *fiber.Ctx) error {
	var req temaRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	tema, err := s.temaService.Update(c.UserContext(), service.TemaInput{ID: req.ID, Descricao: req.Descricao})
	if err != nil {
		return models.Respond(c, err)
	}
	return c.JSON(tema)
}

// DeleteTema handles DELETE /temas/:id. Postagens of the tema are removed with it.
func (s *Server) DeleteTema(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.temaService.Delete(c.UserContext(), id); err != nil {
		return models.Respond(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
