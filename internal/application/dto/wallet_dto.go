package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// CreateWalletTransactionRequest cuerpo para crear un borrador de depósito o retiro.
type CreateWalletTransactionRequest struct {
	WalletID     string          `json:"wallet_id"`
	Type         string          `json:"type"` // DEPOSIT | WITHDRAWAL
	Amount       decimal.Decimal `json:"amount"`
	SalesOrderID string          `json:"sales_order_id,omitempty"`
	Note         string          `json:"note,omitempty"`
}

// WalletTransactionResponse representación de una transacción de monedero.
type WalletTransactionResponse struct {
	ID            string          `json:"id"`
	WalletID      string          `json:"wallet_id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	ReceiptID     string          `json:"receipt_id,omitempty"`
	SalesOrderID  string          `json:"sales_order_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Posting       PostingStateResponse `json:"posting"`
}

// ToWalletTransactionResponse mapea la entidad.
func ToWalletTransactionResponse(t *entity.WalletTransaction) *WalletTransactionResponse {
	if t == nil {
		return nil
	}
	return &WalletTransactionResponse{
		ID:            t.ID,
		WalletID:      t.WalletID,
		Type:          t.Type,
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		ReceiptID:     t.ReceiptID,
		SalesOrderID:  t.SalesOrderID,
		Note:          t.Note,
		CreatedAt:     t.CreatedAt,
		Posting:       ToPostingState(t.State),
	}
}

// WalletTransactionListResponse extracto paginado del monedero.
type WalletTransactionListResponse struct {
	Items []WalletTransactionResponse `json:"items"`
	Page  PageResponse                `json:"page"`
}

// CreateReceiptItemRequest línea de un recibo.
type CreateReceiptItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateReceiptRequest cuerpo para crear un borrador de recibo.
type CreateReceiptRequest struct {
	CustomerID string                     `json:"customer_id"`
	Type       string                     `json:"type"` // DEPOSIT | WITHDRAWAL
	Number     string                     `json:"number,omitempty"`
	Note       string                     `json:"note,omitempty"`
	Items      []CreateReceiptItemRequest `json:"items"`
}

// ReceiptItemResponse línea del recibo.
type ReceiptItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// ReceiptResponse representación de un recibo.
type ReceiptResponse struct {
	ID                  string                `json:"id"`
	CustomerID          string                `json:"customer_id"`
	WalletID            string                `json:"wallet_id"`
	Type                string                `json:"type"`
	Number              string                `json:"number,omitempty"`
	Date                time.Time             `json:"date"`
	TotalAmount         decimal.Decimal       `json:"total_amount"`
	WalletTransactionID string                `json:"wallet_transaction_id,omitempty"`
	Note                string                `json:"note,omitempty"`
	Items               []ReceiptItemResponse `json:"items,omitempty"`
	Posting             PostingStateResponse  `json:"posting"`
}

// ToReceiptResponse mapea la entidad y sus líneas.
func ToReceiptResponse(r *entity.Receipt, items []*entity.ReceiptItem) *ReceiptResponse {
	if r == nil {
		return nil
	}
	out := &ReceiptResponse{
		ID:                  r.ID,
		CustomerID:          r.CustomerID,
		WalletID:            r.WalletID,
		Type:                r.Type,
		Number:              r.Number,
		Date:                r.Date,
		TotalAmount:         r.TotalAmount,
		WalletTransactionID: r.WalletTransactionID,
		Note:                r.Note,
		Posting:             ToPostingState(r.State),
	}
	for _, it := range items {
		out.Items = append(out.Items, ReceiptItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return out
}

// WalletResponse saldo actual del monedero.
type WalletResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}
