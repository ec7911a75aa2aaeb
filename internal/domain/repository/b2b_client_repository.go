package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// B2BClientRepository define el puerto de lectura de clientes mayoristas.
// La tabla se aprovisiona fuera de la API (proyección de solo lectura).
type B2BClientRepository interface {
	ListAll() ([]*entity.B2BClient, error)
}
