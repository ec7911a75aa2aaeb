// seed genera un script SQL para poblar el catálogo de productos a partir de
// un CSV (export de la hoja de cálculo heredada de la pastelería).
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual.
// Escribe: migrations/002_seed_catalog.sql
//
// Columnas esperadas (con cabecera, en este orden):
// id,name,category,unit_of_measure,unit_cost,supplier_name,reorder_level,
// reorder_quantity,storage_location,shelf_life_days,is_perishable
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/catalog"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

func main() {
	csvPath := "catalogo.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene filas de datos")
		os.Exit(1)
	}

	now := time.Now().UTC()
	var products []*entity.Product
	skipped := 0
	for i, rec := range records[1:] { // salta la cabecera
		row := rowFromRecord(rec)
		product, ok := catalog.ParseRow(row, now)
		if !ok {
			skipped++
			continue
		}
		// La asignación de IDs debe ser libre de prefijos o la resolución de
		// seriales se vuelve ambigua; mejor abortar el seed que cargar un
		// catálogo inconsistente.
		if conflict := catalog.CheckPrefixFree(products, product.ID); conflict != "" {
			fmt.Fprintf(os.Stderr, "Fila %d: el ID %q entra en conflicto de prefijo con %q\n", i+2, product.ID, conflict)
			os.Exit(1)
		}
		products = append(products, product)
	}

	var sb strings.Builder
	sb.WriteString("-- Generado por cmd/seed a partir de ")
	sb.WriteString(filepath.Base(csvPath))
	sb.WriteString("\n\n")
	for _, p := range products {
		sb.WriteString(fmt.Sprintf(
			"INSERT INTO products (id, name, category, unit_of_measure, unit_cost, supplier_name, reorder_level, reorder_quantity, storage_location, shelf_life_days, is_perishable, created_at, updated_at)\n"+
				"VALUES (%s, %s, %s, %s, %s, %s, %d, %d, %s, %d, %t, now(), now())\n"+
				"ON CONFLICT (id) DO NOTHING;\n\n",
			quote(p.ID), quote(p.Name), quote(p.Category), quote(p.UnitOfMeasure),
			p.UnitCost.String(), quote(p.SupplierName), p.ReorderLevel, p.ReorderQuantity,
			quote(p.StorageLocation), p.ShelfLifeDays, p.IsPerishable,
		))
	}
	// Fila de existencias en cero por producto (misma pasada que haría el
	// reconciliador en el arranque).
	for _, p := range products {
		sb.WriteString(fmt.Sprintf(
			"INSERT INTO stock_levels (product_id, product_name, in_warehouse, boutique_stock, marche_stock, saleya_stock, b2b_delivered, updated_at)\n"+
				"VALUES (%s, %s, 0, 0, 0, 0, 0, now())\n"+
				"ON CONFLICT (product_id) DO NOTHING;\n\n",
			quote(p.ID), quote(p.Name),
		))
	}

	outPath := filepath.Join("migrations", "002_seed_catalog.sql")
	if err := os.WriteFile(outPath, []byte(sb.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: %d productos (%d filas descartadas) -> %s\n", len(products), skipped, outPath)
}

func rowFromRecord(rec []string) catalog.Row {
	get := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return catalog.Row{
		ID:              get(0),
		Name:            get(1),
		Category:        get(2),
		UnitOfMeasure:   get(3),
		UnitCost:        get(4),
		SupplierName:    get(5),
		ReorderLevel:    get(6),
		ReorderQuantity: get(7),
		StorageLocation: get(8),
		ShelfLifeDays:   get(9),
		IsPerishable:    get(10),
	}
}

// quote escapa una cadena para un literal SQL.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
