package entity

import "time"

// Métodos de costeo soportados por organización (ver costing).
const (
	CostMethodWeightedAverage = "WEIGHTED_AVERAGE"
	CostMethodFIFO            = "FIFO"
)

// Organization representa el tenant raíz del sistema. Toda entidad del motor
// pertenece exactamente a una organización; nunca se comparten filas entre
// organizaciones.
type Organization struct {
	ID         string
	Name       string
	CostMethod string // WEIGHTED_AVERAGE | FIFO
	Status     string // active, suspended, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PostingAccounts mapea las cuentas contables por defecto de la organización.
// Cuando están configuradas, las contabilizaciones de stock y monedero emiten
// un asiento balanceado en la misma transacción. Vacías = no se emite asiento.
type PostingAccounts struct {
	OrganizationID      string
	InventoryAccountID  string // activo: inventarios
	AdjustmentAccountID string // gasto/ingreso: ajustes de inventario
	PayableAccountID    string // pasivo: proveedores por pagar
	CashAccountID       string // activo: caja/bancos
	DepositsAccountID   string // pasivo: anticipos de clientes (saldo monedero)
	UpdatedAt           time.Time
}

// Configured indica si el mapeo mínimo para emitir asientos está completo.
func (p PostingAccounts) Configured() bool {
	return p.InventoryAccountID != "" && p.AdjustmentAccountID != "" &&
		p.PayableAccountID != "" && p.CashAccountID != "" && p.DepositsAccountID != ""
}
