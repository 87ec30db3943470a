package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/application/dto"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
)

// Avisos devueltos en las mutaciones de clientes.
const (
	noticeClientCreated   = "Client was successfully created."
	noticeClientUpdated   = "Client was successfully updated."
	noticeClientDestroyed = "Client was successfully destroyed."
)

// ClientHandler maneja las peticiones HTTP de la cartera de clientes (protegido).
type ClientHandler struct {
	uc  *clients.UseCase
	log zerolog.Logger
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *clients.UseCase, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar clientes del usuario
// @Tags         clients
// @Produce      json
// @Param        query  query  string  false  "prefijos de palabra sobre nom, prenom o email del dueño"
// @Success      200  {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	query := c.Query("query")
	list, err := h.uc.List(c.UserContext(), GetPrincipal(c), query)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ClientListResponse{Items: toClientResponses(list), Total: len(list), Query: query})
}

// Show GET /api/clients/:id
func (h *ClientHandler) Show(c *fiber.Ctx) error {
	client, err := h.uc.Show(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(toClientResponse(client))
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "nom, prenom, description, date_debut, date_fin"
// @Success      201   {object}  dto.ClientMutationResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ClientMutationResponse{Client: toClientResponse(client), Notice: noticeClientCreated})
}

// Update PUT/PATCH /api/clients/:id. Solo se aplican los campos presentes en el cuerpo.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.ClientMutationResponse{Client: toClientResponse(client), Notice: noticeClientUpdated})
}

// Delete DELETE /api/clients/:id
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.NoticeResponse{Notice: noticeClientDestroyed})
}

// BulkUpdateDate godoc
// @Summary      Fijar date_fin = hoy en los clientes seleccionados
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpdateDateRequest  true  "client_ids"
// @Success      200   {object}  dto.BulkUpdateDateResponse
// @Router       /api/clients/bulk_update_date [post]
func (h *ClientHandler) BulkUpdateDate(c *fiber.Ctx) error {
	var in dto.BulkUpdateDateRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.BulkUpdateEndDate(c.UserContext(), GetPrincipal(c), in.ClientIDs)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.BulkUpdateDateResponse{
		Updated:         out.Updated,
		Total:           out.Total,
		Requested:       out.Requested,
		NothingSelected: out.NothingSelected,
		Notice:          out.Notice(),
	})
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		Nom:         c.Nom,
		Prenom:      c.Prenom,
		Description: c.Description,
		DateDebut:   formatDate(c.DateDebut),
		DateFin:     formatDate(c.DateFin),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toClientResponses(list []*entity.Client) []dto.ClientResponse {
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dto.DateLayout)
	return &s
}
