// Package catalog contiene reglas puras del catálogo: resolución de producto
// por prefijo de serial y coerción de filas importadas.
package catalog

import (
	"strings"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// Resolve encuentra el producto dueño de un número de serie: el producto cuyo
// ID es el prefijo más largo del serial. La coincidencia más larga es
// determinista aunque existan IDs anidados; con el catálogo libre de prefijos
// (ver CheckPrefixFree) hay a lo sumo una coincidencia.
// Devuelve nil si ningún ID es prefijo del serial.
func Resolve(products []*entity.Product, serialNumber string) *entity.Product {
	var best *entity.Product
	for _, p := range products {
		if p.ID == "" || !strings.HasPrefix(serialNumber, p.ID) {
			continue
		}
		if best == nil || len(p.ID) > len(best.ID) {
			best = p
		}
	}
	return best
}

// CheckPrefixFree verifica que un ID nuevo no sea prefijo de un ID existente
// ni esté prefijado por uno. Mantener el catálogo libre de prefijos hace que
// la resolución por serial sea inequívoca. Devuelve el ID en conflicto o "".
func CheckPrefixFree(products []*entity.Product, id string) string {
	for _, p := range products {
		if p.ID == id {
			continue // el duplicado exacto se reporta aparte
		}
		if strings.HasPrefix(p.ID, id) || strings.HasPrefix(id, p.ID) {
			return p.ID
		}
	}
	return ""
}
