package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var _ repository.ScanEventRepository = (*ScanEventRepo)(nil)

// ScanEventRepo implementación del puerto ScanEventRepository sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: solo INSERT, SELECT y el
// TRUNCATE de la limpieza en bloque.
type ScanEventRepo struct {
	q Querier
}

// NewScanEventRepository construye el adaptador del log de eventos. Pasar pool o tx (Querier).
func NewScanEventRepository(q Querier) *ScanEventRepo {
	return &ScanEventRepo{q: q}
}

// Append persiste un evento de escaneo. Nunca actualiza filas existentes.
func (r *ScanEventRepo) Append(event *entity.ScanEvent) error {
	query := `
		INSERT INTO scan_events (id, ts, serial_number, event_type, location, client_id)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		event.ID, event.Timestamp, event.SerialNumber, event.EventType, event.Location, event.ClientID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert scan event: %w", err)
	}
	return nil
}

// List devuelve eventos del más reciente al más antiguo, con paginación.
// limit <= 0 devuelve el log completo.
func (r *ScanEventRepo) List(limit, offset int) ([]*entity.ScanEvent, error) {
	query := `
		SELECT id, ts, serial_number, event_type, location, client_id
		FROM scan_events ORDER BY ts DESC, id DESC LIMIT NULLIF($1, 0) OFFSET $2`
	if limit < 0 {
		limit = 0
	}
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list scan events: %w", err)
	}
	defer rows.Close()
	var list []*entity.ScanEvent
	for rows.Next() {
		var e entity.ScanEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SerialNumber, &e.EventType, &e.Location, &e.ClientID); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListByWindow devuelve los eventos con ts dentro de [from, to], ambos inclusive,
// en orden cronológico ascendente (para agregaciones).
func (r *ScanEventRepo) ListByWindow(from, to time.Time) ([]*entity.ScanEvent, error) {
	query := `
		SELECT id, ts, serial_number, event_type, location, client_id
		FROM scan_events WHERE ts >= $1 AND ts <= $2 ORDER BY ts ASC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list scan events by window: %w", err)
	}
	defer rows.Close()
	var list []*entity.ScanEvent
	for rows.Next() {
		var e entity.ScanEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.SerialNumber, &e.EventType, &e.Location, &e.ClientID); err != nil {
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Clear vacía el log completo (operación administrativa).
func (r *ScanEventRepo) Clear() error {
	_, err := r.q.Exec(context.Background(), `TRUNCATE TABLE scan_events`)
	if err != nil {
		return fmt.Errorf("clear scan events: %w", err)
	}
	return nil
}
