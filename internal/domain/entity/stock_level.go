package entity

import "time"

// StockLevel es la vista derivada de existencias por producto: un registro por
// producto del catálogo con los cinco contadores de canal. Todos los contadores
// son >= 0 en todo momento (los decrementos se recortan en cero).
//
// Solo el procesador de escaneos muta los contadores; solo el reconciliador
// crea registros; solo el borrado de producto los elimina.
type StockLevel struct {
	ProductID     string
	ProductName   string
	InWarehouse   int
	BoutiqueStock int
	MarcheStock   int
	SaleyaStock   int
	B2BDelivered  int
	UpdatedAt     time.Time
}
