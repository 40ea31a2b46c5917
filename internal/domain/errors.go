package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los mapean a códigos de estado; los adaptadores de
// infraestructura los envuelven con contexto vía fmt.Errorf + %w.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrInvalidState: el documento no está en el estado de ciclo de vida esperado
	// (ej. Post sobre un documento ya contabilizado o rechazado).
	ErrInvalidState = errors.New("estado de documento inválido")

	// ErrValidation: invariante estructural violado (ej. total del recibo
	// distinto a la suma de sus ítems).
	ErrValidation = errors.New("validación de documento fallida")

	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInsufficientFunds = errors.New("fondos insuficientes en el monedero")

	// ErrIncompleteCount: el conteo físico no cubre todos los ítems de la auditoría.
	ErrIncompleteCount = errors.New("conteo de inventario incompleto")

	// ErrUnbalanced: suma de débitos distinta a suma de créditos.
	ErrUnbalanced = errors.New("asiento contable descuadrado")

	// ErrInvalidAccount: cuenta inexistente o inactiva en el plan de cuentas.
	ErrInvalidAccount = errors.New("cuenta contable inválida")

	// ErrConcurrentModification: conflicto de serialización en la BD.
	// Es el único error reintentable; el caller debe reintentar con backoff.
	ErrConcurrentModification = errors.New("modificación concurrente detectada")

	// ErrCrossTenant: intento de leer o escribir datos de otra organización.
	// Se trata como error de programación/seguridad y se registra para auditoría.
	ErrCrossTenant = errors.New("acceso entre organizaciones denegado")
)
