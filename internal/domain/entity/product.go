package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una referencia del catálogo. El ID funciona además como
// prefijo de número de serie: cada unidad física lleva un serial que empieza
// por el ID de su producto. El catálogo garantiza que ningún ID sea prefijo
// de otro (asignación libre de prefijos).
type Product struct {
	ID              string
	Name            string
	Category        string
	UnitOfMeasure   string
	UnitCost        decimal.Decimal // costo unitario, nunca negativo
	SupplierName    string
	ReorderLevel    int
	ReorderQuantity int
	StorageLocation string
	ShelfLifeDays   int
	IsPerishable    bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
