package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercio-api/internal/application/dto"
	"github.com/jhoicas/Comercio-api/internal/application/wallet"
)

// WalletHandler maneja depósitos y retiros de monedero (protegido).
type WalletHandler struct {
	uc *wallet.TransactionUseCase
}

// NewWalletHandler construye el handler.
func NewWalletHandler(uc *wallet.TransactionUseCase) *WalletHandler {
	return &WalletHandler{uc: uc}
}

// CreateDraft godoc
// @Summary      Crear borrador de transacción de monedero
// @Tags         wallet
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWalletTransactionRequest  true  "wallet_id, type, amount"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/wallet/transactions [post]
func (h *WalletHandler) CreateDraft(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateWalletTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.uc.CreateDraft(c.Context(), orgID, userID, wallet.TransactionInput{
		WalletID:     in.WalletID,
		Type:         in.Type,
		Amount:       in.Amount,
		SalesOrderID: in.SalesOrderID,
		Note:         in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Post godoc
// @Summary      Contabilizar transacción de monedero
// @Tags         wallet
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/wallet/transactions/{id}/post [post]
func (h *WalletHandler) Post(c *fiber.Ctx) error {
	orgID, userID := GetOrgID(c), GetUserID(c)
	if orgID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Post(c.Context(), orgID, userID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transacción contabilizada"})
}

// Reject godoc
// @Summary      Rechazar transacción de monedero en borrador
// @Tags         wallet
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID de la transacción"
// @Param        body  body  dto.RejectRequest  true  "Motivo"
// @Success      200   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wallet/transactions/{id}/reject [post]
func (h *WalletHandler) Reject(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"message": "transacción rechazada"})
}

// GetByID godoc
// @Summary      Obtener transacción de monedero
// @Tags         wallet
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.WalletTransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wallet/transactions/{id} [get]
func (h *WalletHandler) GetByID(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	tx, err := h.uc.Get(c.Context(), orgID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWalletTransactionResponse(tx))
}

// ListByWallet godoc
// @Summary      Extracto de un monedero
// @Tags         wallet
// @Security     Bearer
// @Produce      json
// @Param        wallet_id  path   string  true   "ID del monedero"
// @Param        limit      query  int     false  "Límite"  default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.WalletTransactionListResponse
// @Router       /api/wallet/wallets/{wallet_id}/transactions [get]
func (h *WalletHandler) ListByWallet(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByWallet(c.Context(), orgID, c.Params("wallet_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.WalletTransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *dto.ToWalletTransactionResponse(t))
	}
	return c.JSON(dto.WalletTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}
