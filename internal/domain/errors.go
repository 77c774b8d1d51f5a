package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidBOM        = errors.New("estructura de BOM inválida")
	ErrCalculation       = errors.New("no se pudo completar el cálculo")
)

// InsufficientStockError detalla un movimiento que dejaría el stock en negativo.
// El mensaje para el usuario debe incluir stock actual y cantidad solicitada.
type InsufficientStockError struct {
	ItemID       string
	CurrentStock decimal.Decimal
	Requested    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %s, solicitado %s",
		e.CurrentStock.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// BOMStructureError agrupa las reglas estructurales violadas por un BOM.
// Bloquea la creación/actualización; las advertencias no bloquean.
type BOMStructureError struct {
	Violations []string
}

func (e *BOMStructureError) Error() string {
	return fmt.Sprintf("estructura de BOM inválida: %d regla(s) violada(s)", len(e.Violations))
}

// Unwrap permite errors.Is(err, ErrInvalidBOM).
func (e *BOMStructureError) Unwrap() error { return ErrInvalidBOM }
