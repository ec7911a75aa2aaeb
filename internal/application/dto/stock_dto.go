package dto

// StockLevelDTO contadores de canal de un producto.
type StockLevelDTO struct {
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	InWarehouse   int    `json:"in_warehouse"`
	BoutiqueStock int    `json:"boutique_stock"`
	MarcheStock   int    `json:"marche_stock"`
	SaleyaStock   int    `json:"saleya_stock"`
	B2BDelivered  int    `json:"b2b_delivered"`
}

// ChannelTotalsDTO suma de cada canal sobre todos los productos.
type ChannelTotalsDTO struct {
	InWarehouse   int `json:"in_warehouse"`
	BoutiqueStock int `json:"boutique_stock"`
	MarcheStock   int `json:"marche_stock"`
	SaleyaStock   int `json:"saleya_stock"`
	B2BDelivered  int `json:"b2b_delivered"`
}

// SummaryResponse vista de existencias por producto más los totales de canal.
type SummaryResponse struct {
	Levels []StockLevelDTO  `json:"levels"`
	Totals ChannelTotalsDTO `json:"totals"`
}

// ReconcileResult resultado de una pasada del reconciliador.
type ReconcileResult struct {
	NewRecordsAdded int    `json:"new_records_added"`
	TotalProducts   int    `json:"total_products"`
	Message         string `json:"message"`
}
