package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// Row fila cruda del catálogo tal como llega de una fuente externa (import
// CSV, hoja de cálculo heredada). Todos los campos son texto sin tipar.
type Row struct {
	ID              string
	Name            string
	Category        string
	UnitOfMeasure   string
	UnitCost        string
	SupplierName    string
	ReorderLevel    string
	ReorderQuantity string
	StorageLocation string
	ShelfLifeDays   string
	IsPerishable    string
}

// ParseRow proyecta una fila cruda a Product aplicando las reglas de coerción:
// booleano acepta "true" sin distinguir mayúsculas; numéricos caen a 0 si no
// parsean; costo negativo cae a 0. Filas sin ID devuelven (nil, false) y se
// descartan.
func ParseRow(row Row, now time.Time) (*entity.Product, bool) {
	id := strings.TrimSpace(row.ID)
	if id == "" {
		return nil, false
	}
	return &entity.Product{
		ID:              id,
		Name:            strings.TrimSpace(row.Name),
		Category:        strings.TrimSpace(row.Category),
		UnitOfMeasure:   strings.TrimSpace(row.UnitOfMeasure),
		UnitCost:        coerceCost(row.UnitCost),
		SupplierName:    strings.TrimSpace(row.SupplierName),
		ReorderLevel:    coerceInt(row.ReorderLevel),
		ReorderQuantity: coerceInt(row.ReorderQuantity),
		StorageLocation: strings.TrimSpace(row.StorageLocation),
		ShelfLifeDays:   coerceInt(row.ShelfLifeDays),
		IsPerishable:    coerceBool(row.IsPerishable),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, true
}

func coerceBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func coerceInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func coerceCost(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
