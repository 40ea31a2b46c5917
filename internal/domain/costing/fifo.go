package costing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

// Consumption registra cuántas unidades se tomaron de un lote al valorar una
// salida FIFO. El caso de uso persiste el Remaining ya decrementado.
type Consumption struct {
	Batch    *entity.StockBatch
	Quantity int64
}

// ConsumeFIFO consume qty unidades de los lotes, de más antiguo a más
// reciente, decrementando Remaining en memoria. Devuelve los consumos y el
// costo total de la salida valorada al costo de cada lote.
// Los lotes deben venir ordenados por ReceivedAt ascendente (así los entrega
// el repositorio). Falla con ErrInsufficientStock si los lotes no alcanzan.
func ConsumeFIFO(batches []*entity.StockBatch, qty int64) ([]Consumption, decimal.Decimal, error) {
	if qty <= 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	var consumed []Consumption
	total := decimal.Zero
	remaining := qty
	for _, b := range batches {
		if remaining == 0 {
			break
		}
		if b.Remaining <= 0 {
			continue
		}
		take := b.Remaining
		if take > remaining {
			take = remaining
		}
		b.Remaining -= take
		remaining -= take
		consumed = append(consumed, Consumption{Batch: b, Quantity: take})
		total = total.Add(decimal.NewFromInt(take).Mul(b.UnitCost))
	}
	if remaining > 0 {
		return nil, decimal.Zero, domain.ErrInsufficientStock
	}
	return consumed, total, nil
}

// DerivedAverage calcula el promedio ponderado implícito del libro de lotes
// (valor en mano / unidades en mano). Bajo FIFO, AverageCost de la variante
// se mantiene con este valor como vista derivada para reportes.
func DerivedAverage(batches []*entity.StockBatch) decimal.Decimal {
	var units int64
	value := decimal.Zero
	for _, b := range batches {
		if b.Remaining <= 0 {
			continue
		}
		units += b.Remaining
		value = value.Add(decimal.NewFromInt(b.Remaining).Mul(b.UnitCost))
	}
	if units <= 0 {
		return decimal.Zero
	}
	return value.Div(decimal.NewFromInt(units))
}
