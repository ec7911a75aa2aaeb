package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListAll() ([]*entity.Product, error)
	Delete(id string) error
}
