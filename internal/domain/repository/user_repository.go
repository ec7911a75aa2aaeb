package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	ListAll() ([]*entity.User, error)
}
