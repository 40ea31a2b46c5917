package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain/posting"
)

// Tipos de transacción de monedero.
const (
	WalletTxDeposit    = "DEPOSIT"
	WalletTxWithdrawal = "WITHDRAWAL"
)

// Wallet es el monedero de un cliente (uno a uno con Customer).
// Balance nunca es negativa: no hay sobregiro. Solo las transacciones
// contabilizadas la mutan.
type Wallet struct {
	ID             string
	OrganizationID string
	CustomerID     string
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// WalletTransaction es un documento contabilizable sobre un monedero.
// BalanceBefore/BalanceAfter se capturan al contabilizar y son inmutables:
// BalanceAfter = BalanceBefore ± Amount según el tipo, y BalanceAfter >= 0.
type WalletTransaction struct {
	ID             string
	OrganizationID string
	WalletID       string
	Type           string          // DEPOSIT | WITHDRAWAL
	Amount         decimal.Decimal // siempre > 0
	BalanceBefore  decimal.Decimal
	BalanceAfter   decimal.Decimal

	ReceiptID    string // recibo que la generó, si aplica
	SalesOrderID string // orden de venta asociada, si aplica

	Note      string
	CreatedAt time.Time
	CreatedBy string

	posting.State
}
