package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/application/dto"
)

// HomeHandler tablero del usuario autenticado.
type HomeHandler struct {
	uc  *clients.UseCase
	log zerolog.Logger
}

// NewHomeHandler construye el handler.
func NewHomeHandler(uc *clients.UseCase, log zerolog.Logger) *HomeHandler {
	return &HomeHandler{uc: uc, log: log}
}

// Get GET /api/home
func (h *HomeHandler) Get(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), GetPrincipal(c), "")
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.HomeResponse{ClientsCount: len(list), Clients: toClientResponses(list)})
}
