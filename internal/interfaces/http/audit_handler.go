package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/audit"
	"github.com/jhoicas/Comercio-api/internal/application/dto"
)

// AuditHandler maneja auditorías de inventario (protegido).
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// CreateDraft godoc
// @Summary      Crear auditoría de inventario en borrador
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAuditRequest  false  "location_id opcional"
// @Success      201   {object}  map[string]string
// @Router       /api/audits [post]
func (h *AuditHandler) CreateDraft(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateAuditRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	id, err := h.uc.CreateDraft(c.Context(), orgID, userID, in.LocationID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Start godoc
// @Summary      Iniciar auditoría (toma el snapshot de stock y costo)
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/start [post]
func (h *AuditHandler) Start(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Start(c.Context(), orgID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "auditoría iniciada"})
}

// RecordCount godoc
// @Summary      Registrar conteo físico de un ítem
// @Tags         audits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        item_id  path  string                  true  "ID del ítem de auditoría"
// @Param        body     body  dto.RecordCountRequest  true  "counted_stock"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/items/{item_id}/count [post]
func (h *AuditHandler) RecordCount(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RecordCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.RecordCount(c.Context(), orgID, userID, c.Params("item_id"), in.CountedStock); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "conteo registrado"})
}

// Complete godoc
// @Summary      Completar auditoría (genera y contabiliza los ajustes)
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/complete [post]
func (h *AuditHandler) Complete(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Complete(c.Context(), orgID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "auditoría completada"})
}

// Cancel godoc
// @Summary      Cancelar auditoría
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/audits/{id}/cancel [post]
func (h *AuditHandler) Cancel(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Cancel(c.Context(), orgID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "auditoría cancelada"})
}

// GetByID godoc
// @Summary      Obtener auditoría con sus ítems
// @Tags         audits
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la auditoría"
// @Success      200  {object}  dto.AuditResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/audits/{id} [get]
func (h *AuditHandler) GetByID(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	a, items, err := h.uc.Get(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToAuditResponse(a, items))
}
