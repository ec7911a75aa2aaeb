package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// StockLevelRepository define el puerto de persistencia para la vista derivada
// de existencias. Get y GetForUpdate devuelven nil (sin error) si el producto
// aún no tiene registro: el que llama decide si dispara la reconciliación.
type StockLevelRepository interface {
	Get(productID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila del producto dentro de la transacción
	// actual: exclusión mutua por producto para el read-modify-write de
	// contadores.
	GetForUpdate(productID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	// CreateIfAbsent inserta el registro solo si el producto aún no tiene
	// fila; si ya existe no la toca. Devuelve true si insertó. Es la única
	// escritura del reconciliador: los contadores existentes solo los muta
	// el procesador de escaneos.
	CreateIfAbsent(level *entity.StockLevel) (bool, error)
	ListAll() ([]*entity.StockLevel, error)
	ListProductIDs() ([]string, error)
	Delete(productID string) error
}
