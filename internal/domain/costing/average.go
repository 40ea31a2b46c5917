// Package costing contiene los servicios de dominio de valoración de
// inventario: costo promedio ponderado y consumo FIFO por lotes. Son funciones
// puras; la selección de estrategia por organización vive en el caso de uso.
package costing

import "github.com/shopspring/decimal"

// AverageCost recalcula el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si StockActual + CantEntrada <= 0 el promedio queda en el costo anterior
// (o en cero si la variante estaba vacía).
func AverageCost(stockBefore int64, currentCost decimal.Decimal, qtyIn int64, unitCost decimal.Decimal) decimal.Decimal {
	total := stockBefore + qtyIn
	if total <= 0 {
		if stockBefore <= 0 {
			return decimal.Zero
		}
		return currentCost
	}
	num := decimal.NewFromInt(stockBefore).Mul(currentCost).
		Add(decimal.NewFromInt(qtyIn).Mul(unitCost))
	return num.Div(decimal.NewFromInt(total))
}
