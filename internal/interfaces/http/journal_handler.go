package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/journal"
)

// JournalHandler maneja asientos de partida doble (protegido).
type JournalHandler struct {
	uc *journal.EntryUseCase
}

// NewJournalHandler construye el handler.
func NewJournalHandler(uc *journal.EntryUseCase) *JournalHandler {
	return &JournalHandler{uc: uc}
}

// CreateDraft godoc
// @Summary      Crear asiento manual en borrador
// @Tags         journal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateJournalEntryRequest  true  "líneas con débito xor crédito"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/journal/entries [post]
func (h *JournalHandler) CreateDraft(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateJournalEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}
	lines := make([]journal.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, journal.LineInput{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		})
	}
	id, err := h.uc.CreateDraft(c.Context(), orgID, userID, date, in.Description, in.Reference, lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Post godoc
// @Summary      Contabilizar asiento (valida cuadre y cuentas)
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del asiento"
// @Success      200  {object}  map[string]string
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/journal/entries/{id}/post [post]
func (h *JournalHandler) Post(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Post(c.Context(), orgID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "asiento contabilizado"})
}

// Reject godoc
// @Summary      Rechazar asiento en borrador
// @Tags         journal
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID del asiento"
// @Param        body  body  dto.RejectRequest  true  "Motivo"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/journal/entries/{id}/reject [post]
func (h *JournalHandler) Reject(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RejectRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Reject(c.Context(), orgID, userID, c.Params("id"), in.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "asiento rechazado"})
}

// GetByID godoc
// @Summary      Obtener asiento con sus líneas
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del asiento"
// @Success      200  {object}  dto.JournalEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/journal/entries/{id} [get]
func (h *JournalHandler) GetByID(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	entry, lines, err := h.uc.GetEntry(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToJournalEntryResponse(entry, lines))
}

// List godoc
// @Summary      Listar asientos de la organización
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.JournalEntryListResponse
// @Router       /api/journal/entries [get]
func (h *JournalHandler) List(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.List(c.Context(), orgID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.JournalEntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *dto.ToJournalEntryResponse(e, nil))
	}
	return c.JSON(dto.JournalEntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// TrialBalance godoc
// @Summary      Balance de comprobación (totales por cuenta)
// @Tags         journal
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TrialBalanceResponse
// @Router       /api/journal/trial-balance [get]
func (h *JournalHandler) TrialBalance(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	balances, err := h.uc.TrialBalance(c.Context(), orgID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTrialBalanceResponse(balances))
}
