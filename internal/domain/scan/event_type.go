// Package scan contiene la máquina de estados de los eventos de escaneo:
// la enumeración cerrada de tipos de evento y la tabla de transiciones que
// convierte cada evento en deltas sobre los contadores de canal.
package scan

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
)

// EventType tipo de evento de escaneo. Enumeración cerrada: cualquier valor
// fuera de la lista se rechaza en la validación, antes de tocar el log.
type EventType string

const (
	ProductionScan    EventType = "PRODUCTION_SCAN"
	BoutiqueStockScan EventType = "BOUTIQUE_STOCK_SCAN"
	MarcheStockScan   EventType = "MARCHE_STOCK_SCAN"
	SaleyaStockScan   EventType = "SALEYA_STOCK_SCAN"
	DeliveryB2B       EventType = "DELIVERY_B2B"
	SaleBoutique      EventType = "SALE_BOUTIQUE"
	SaleMarche        EventType = "SALE_MARCHE"
	SaleSaleya        EventType = "SALE_SALEYA"
)

// All tipos de evento válidos, en el orden del flujo físico.
var All = []EventType{
	ProductionScan,
	BoutiqueStockScan,
	MarcheStockScan,
	SaleyaStockScan,
	DeliveryB2B,
	SaleBoutique,
	SaleMarche,
	SaleSaleya,
}

// Parse valida un tipo de evento recibido por la API. Devuelve ErrUnknownEvent
// para valores fuera de la enumeración: un evento desconocido es un error del
// cliente, no una línea de log silenciosa.
func Parse(s string) (EventType, error) {
	t := EventType(strings.TrimSpace(s))
	for _, v := range All {
		if t == v {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", domain.ErrUnknownEvent, s)
}

// UnitStatus devuelve el estado legible de la unidad para este evento:
// guiones bajos a espacios, en mayúsculas (ej. "BOUTIQUE STOCK SCAN").
func (t EventType) UnitStatus() string {
	return strings.ToUpper(strings.ReplaceAll(string(t), "_", " "))
}

// IsSale indica si el evento cuenta como venta/salida para el reporte semanal
// (las tres ventas de retail más la entrega B2B).
func (t EventType) IsSale() bool {
	switch t {
	case SaleBoutique, SaleMarche, SaleSaleya, DeliveryB2B:
		return true
	}
	return false
}
