package costing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercio-api/internal/domain"
	"github.com/jhoicas/Comercio-api/internal/domain/costing"
	"github.com/jhoicas/Comercio-api/internal/domain/entity"
)

func testBatches() []*entity.StockBatch {
	base := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	return []*entity.StockBatch{
		{ID: "b1", Remaining: 10, UnitCost: decimal.NewFromInt(5), ReceivedAt: base},
		{ID: "b2", Remaining: 10, UnitCost: decimal.NewFromInt(7), ReceivedAt: base.Add(24 * time.Hour)},
	}
}

// TestConsumeFIFO_OrdenAntiguedad verifica que el consumo agota primero el
// lote más antiguo y valora la salida al costo de cada lote consumido.
func TestConsumeFIFO_OrdenAntiguedad(t *testing.T) {
	batches := testBatches()

	consumed, total, err := costing.ConsumeFIFO(batches, 15)
	require.NoError(t, err)

	// 10 @ 5.00 + 5 @ 7.00 = 85.00
	assert.True(t, total.Equal(decimal.NewFromInt(85)), "esperaba 85, obtuve %s", total)

	require.Len(t, consumed, 2)
	assert.Equal(t, "b1", consumed[0].Batch.ID)
	assert.Equal(t, int64(10), consumed[0].Quantity)
	assert.Equal(t, "b2", consumed[1].Batch.ID)
	assert.Equal(t, int64(5), consumed[1].Quantity)

	assert.Equal(t, int64(0), batches[0].Remaining)
	assert.Equal(t, int64(5), batches[1].Remaining)
}

// TestConsumeFIFO_LoteExacto verifica que un consumo que agota exactamente un
// lote no toca el siguiente.
func TestConsumeFIFO_LoteExacto(t *testing.T) {
	batches := testBatches()

	consumed, total, err := costing.ConsumeFIFO(batches, 10)
	require.NoError(t, err)

	assert.True(t, total.Equal(decimal.NewFromInt(50)))
	require.Len(t, consumed, 1)
	assert.Equal(t, int64(10), batches[1].Remaining, "el segundo lote no debe tocarse")
}

// TestConsumeFIFO_Insuficiente verifica el fallo cuando los lotes no alcanzan.
func TestConsumeFIFO_Insuficiente(t *testing.T) {
	_, _, err := costing.ConsumeFIFO(testBatches(), 25)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// TestConsumeFIFO_CantidadInvalida verifica el rechazo de cantidades no positivas.
func TestConsumeFIFO_CantidadInvalida(t *testing.T) {
	_, _, err := costing.ConsumeFIFO(testBatches(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = costing.ConsumeFIFO(testBatches(), -3)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestDerivedAverage verifica el promedio implícito del libro de lotes.
func TestDerivedAverage(t *testing.T) {
	// (10*5 + 10*7) / 20 = 6.00
	got := costing.DerivedAverage(testBatches())
	assert.True(t, got.Equal(decimal.NewFromInt(6)), "esperaba 6, obtuve %s", got)
}

// TestDerivedAverage_SinLotesAbiertos verifica que sin unidades en mano el
// promedio derivado es cero (los lotes agotados no cuentan).
func TestDerivedAverage_SinLotesAbiertos(t *testing.T) {
	batches := testBatches()
	batches[0].Remaining = 0
	batches[1].Remaining = 0
	assert.True(t, costing.DerivedAverage(batches).Equal(decimal.Zero))
	assert.True(t, costing.DerivedAverage(nil).Equal(decimal.Zero))
}
