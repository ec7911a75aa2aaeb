package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo. El ID es además el
// prefijo de serial de sus unidades.
type CreateProductRequest struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SupplierName    string          `json:"supplier_name"`
	ReorderLevel    int             `json:"reorder_level"`
	ReorderQuantity int             `json:"reorder_quantity"`
	StorageLocation string          `json:"storage_location"`
	ShelfLifeDays   int             `json:"shelf_life_days"`
	IsPerishable    bool            `json:"is_perishable"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	SupplierName    string          `json:"supplier_name"`
	ReorderLevel    int             `json:"reorder_level"`
	ReorderQuantity int             `json:"reorder_quantity"`
	StorageLocation string          `json:"storage_location"`
	ShelfLifeDays   int             `json:"shelf_life_days"`
	IsPerishable    bool            `json:"is_perishable"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
