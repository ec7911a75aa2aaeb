package repository

import (
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
)

// ScanEventRepository define el puerto de persistencia para el log de eventos.
// El log es append-only: nunca se actualiza ni se borra una fila individual.
type ScanEventRepository interface {
	Append(event *entity.ScanEvent) error
	List(limit, offset int) ([]*entity.ScanEvent, error)
	ListByWindow(from, to time.Time) ([]*entity.ScanEvent, error)
	Clear() error
}
