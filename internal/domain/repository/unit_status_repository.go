package repository

import "github.com/jhoicas/Trazabilidad-api/internal/domain/entity"

// UnitStatusRepository define el puerto de persistencia para el estado actual
// por unidad serializada. Clear acompaña a la limpieza en bloque del log.
type UnitStatusRepository interface {
	Upsert(status *entity.UnitStatus) error
	Get(serialNumber string) (*entity.UnitStatus, error)
	ListAll() ([]*entity.UnitStatus, error)
	Clear() error
}
