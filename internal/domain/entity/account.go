package entity

import "time"

// Tipos de cuenta del plan de cuentas.
const (
	AccountTypeAsset     = "ASSET"
	AccountTypeLiability = "LIABILITY"
	AccountTypeEquity    = "EQUITY"
	AccountTypeIncome    = "INCOME"
	AccountTypeExpense   = "EXPENSE"
)

// Account es una cuenta del plan de cuentas de la organización.
// Code es único por organización; ParentID forma un árbol sin ciclos.
type Account struct {
	ID             string
	OrganizationID string
	Code           string
	Name           string
	Type           string
	ParentID       string // vacío = cuenta raíz
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
