// Package memory implementa los puertos de persistencia sobre mapas en
// proceso protegidos por mutex. Se usa en los tests de los casos de uso; el
// despliegue real usa el adaptador de PostgreSQL.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var (
	_ repository.ScanEventRepository  = (*EventLog)(nil)
	_ repository.ProductRepository    = (*ProductStore)(nil)
	_ repository.StockLevelRepository = (*StockStore)(nil)
	_ repository.UnitStatusRepository = (*StatusStore)(nil)
)

// EventLog log de eventos append-only en memoria.
type EventLog struct {
	mu     sync.RWMutex
	events []*entity.ScanEvent
}

// NewEventLog construye el log vacío.
func NewEventLog() *EventLog { return &EventLog{} }

func (l *EventLog) Append(event *entity.ScanEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *event
	l.events = append(l.events, &cp)
	return nil
}

func (l *EventLog) List(limit, offset int) ([]*entity.ScanEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	// Más recientes primero, como el adaptador SQL.
	out := make([]*entity.ScanEvent, 0, len(l.events))
	for i := len(l.events) - 1; i >= 0; i-- {
		out = append(out, l.events[i])
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (l *EventLog) ListByWindow(from, to time.Time) ([]*entity.ScanEvent, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []*entity.ScanEvent
	for _, ev := range l.events {
		if !ev.Timestamp.Before(from) && !ev.Timestamp.After(to) {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (l *EventLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = nil
	return nil
}

// ProductStore catálogo en memoria.
type ProductStore struct {
	mu    sync.RWMutex
	byID  map[string]*entity.Product
	order []string // orden de inserción para listados estables
}

// NewProductStore construye el catálogo vacío.
func NewProductStore() *ProductStore {
	return &ProductStore{byID: make(map[string]*entity.Product)}
}

func (s *ProductStore) Create(product *entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *product
	if _, ok := s.byID[cp.ID]; !ok {
		s.order = append(s.order, cp.ID)
	}
	s.byID[cp.ID] = &cp
	return nil
}

func (s *ProductStore) GetByID(id string) (*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *ProductStore) ListAll() ([]*entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(s.order))
	for _, id := range s.order {
		if p, ok := s.byID[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *ProductStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// StockStore vista de existencias en memoria. GetForUpdate no bloquea nada:
// la exclusión por producto la aporta el TxRunner en memoria, que serializa
// las transacciones completas.
type StockStore struct {
	mu sync.RWMutex
	m  map[string]*entity.StockLevel
}

// NewStockStore construye la vista vacía.
func NewStockStore() *StockStore {
	return &StockStore{m: make(map[string]*entity.StockLevel)}
}

func (s *StockStore) Get(productID string) (*entity.StockLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lv, ok := s.m[productID]
	if !ok {
		return nil, nil
	}
	cp := *lv
	return &cp, nil
}

func (s *StockStore) GetForUpdate(productID string) (*entity.StockLevel, error) {
	return s.Get(productID)
}

func (s *StockStore) Upsert(level *entity.StockLevel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *level
	s.m[cp.ProductID] = &cp
	return nil
}

func (s *StockStore) CreateIfAbsent(level *entity.StockLevel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[level.ProductID]; ok {
		return false, nil
	}
	cp := *level
	s.m[cp.ProductID] = &cp
	return true, nil
}

func (s *StockStore) ListAll() ([]*entity.StockLevel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.StockLevel, 0, len(s.m))
	for _, lv := range s.m {
		cp := *lv
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (s *StockStore) ListProductIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *StockStore) Delete(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, productID)
	return nil
}

// StatusStore estado por unidad en memoria.
type StatusStore struct {
	mu sync.RWMutex
	m  map[string]*entity.UnitStatus
}

// NewStatusStore construye el almacén vacío.
func NewStatusStore() *StatusStore {
	return &StatusStore{m: make(map[string]*entity.UnitStatus)}
}

func (s *StatusStore) Upsert(status *entity.UnitStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *status
	s.m[cp.SerialNumber] = &cp
	return nil
}

func (s *StatusStore) Get(serialNumber string) (*entity.UnitStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.m[serialNumber]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (s *StatusStore) ListAll() ([]*entity.UnitStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.UnitStatus, 0, len(s.m))
	for _, st := range s.m {
		cp := *st
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SerialNumber < out[j].SerialNumber })
	return out, nil
}

func (s *StatusStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m = make(map[string]*entity.UnitStatus)
	return nil
}
