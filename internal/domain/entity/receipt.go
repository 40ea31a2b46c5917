package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/posting"
)

// Tipos de recibo: un recibo de caja deposita en el monedero del cliente,
// un comprobante de egreso retira de él.
const (
	ReceiptTypeDeposit    = "DEPOSIT"
	ReceiptTypeWithdrawal = "WITHDRAWAL"
)

// Receipt es el comprobante imprimible/auditable de un movimiento de
// monedero. Al contabilizarse produce exactamente una WalletTransaction
// (WalletTransactionID queda nulo hasta entonces) y TotalAmount debe ser
// igual a la suma de los subtotales de sus ítems.
type Receipt struct {
	ID             string
	OrganizationID string
	CustomerID     string
	WalletID       string
	Type           string // DEPOSIT | WITHDRAWAL
	Number         string // consecutivo por organización
	Date           time.Time
	TotalAmount    decimal.Decimal

	WalletTransactionID string // nulo hasta contabilizar

	Note      string
	CreatedAt time.Time
	CreatedBy string

	posting.State
}

// ReceiptItem es una línea del recibo. Subtotal = Quantity * UnitPrice.
type ReceiptItem struct {
	ID          string
	ReceiptID   string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
