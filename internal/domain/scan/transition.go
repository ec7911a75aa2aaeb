package scan

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// Delta cambio que un evento aplica sobre los contadores de canal.
type Delta struct {
	InWarehouse   int
	BoutiqueStock int
	MarcheStock   int
	SaleyaStock   int
	B2BDelivered  int
}

// transitions tabla de transiciones evento -> deltas de canal.
//
//	PRODUCTION_SCAN      entra a bodega
//	*_STOCK_SCAN         bodega -> punto de venta
//	DELIVERY_B2B         bodega -> entregado B2B
//	SALE_*               sale del punto de venta
var transitions = map[EventType]Delta{
	ProductionScan:    {InWarehouse: +1},
	BoutiqueStockScan: {InWarehouse: -1, BoutiqueStock: +1},
	MarcheStockScan:   {InWarehouse: -1, MarcheStock: +1},
	SaleyaStockScan:   {InWarehouse: -1, SaleyaStock: +1},
	DeliveryB2B:       {InWarehouse: -1, B2BDelivered: +1},
	SaleBoutique:      {BoutiqueStock: -1},
	SaleMarche:        {MarcheStock: -1},
	SaleSaleya:        {SaleyaStock: -1},
}

// Delta devuelve el delta de canal del evento. Para tipos validados con Parse
// siempre hay entrada en la tabla.
func (t EventType) Delta() Delta {
	return transitions[t]
}

// Apply aplica la transición del evento sobre los contadores del registro,
// recortando cada resultado en cero: un decremento nunca deja un contador
// negativo (invariante de la vista derivada).
func Apply(level *entity.StockLevel, t EventType) {
	d := t.Delta()
	level.InWarehouse = clamp(level.InWarehouse + d.InWarehouse)
	level.BoutiqueStock = clamp(level.BoutiqueStock + d.BoutiqueStock)
	level.MarcheStock = clamp(level.MarcheStock + d.MarcheStock)
	level.SaleyaStock = clamp(level.SaleyaStock + d.SaleyaStock)
	level.B2BDelivered = clamp(level.B2BDelivered + d.B2BDelivered)
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
