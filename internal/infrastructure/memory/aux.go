package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Trazabilidad-api/internal/application/scan"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserStore)(nil)
	_ repository.B2BClientRepository    = (*ClientStore)(nil)
	_ repository.WeeklyReportRepository = (*ReportStore)(nil)
	_ scan.TxRunner                     = (*TxRunner)(nil)
)

// TxRunner en memoria: serializa las transacciones completas con un mutex, lo
// que equivale al bloqueo de fila del adaptador SQL para efectos de los tests.
type TxRunner struct {
	mu    sync.Mutex
	stock *StockStore
}

// NewTxRunner construye el runner sobre el almacén de existencias dado.
func NewTxRunner(stock *StockStore) *TxRunner {
	return &TxRunner{stock: stock}
}

func (r *TxRunner) Run(_ context.Context, fn func(stockRepo repository.StockLevelRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.stock)
}

// UserStore usuarios en memoria.
type UserStore struct {
	mu sync.RWMutex
	m  map[string]*entity.User // por email
}

// NewUserStore construye el almacén vacío.
func NewUserStore() *UserStore {
	return &UserStore{m: make(map[string]*entity.User)}
}

func (s *UserStore) Create(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *user
	s.m[cp.Email] = &cp
	return nil
}

func (s *UserStore) GetByEmail(email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.m[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) ListAll() ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.User, 0, len(s.m))
	for _, u := range s.m {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// ClientStore clientes B2B en memoria.
type ClientStore struct {
	mu sync.RWMutex
	cs []*entity.B2BClient
}

// NewClientStore construye el almacén con los clientes dados.
func NewClientStore(clients ...*entity.B2BClient) *ClientStore {
	return &ClientStore{cs: clients}
}

func (s *ClientStore) ListAll() ([]*entity.B2BClient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.B2BClient, len(s.cs))
	copy(out, s.cs)
	return out, nil
}

// ReportStore salida del reporte semanal en memoria.
type ReportStore struct {
	mu   sync.RWMutex
	rows []*entity.WeeklyReportRow
}

// NewReportStore construye el almacén vacío.
func NewReportStore() *ReportStore { return &ReportStore{} }

func (s *ReportStore) Replace(rows []*entity.WeeklyReportRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]*entity.WeeklyReportRow, len(rows))
	copy(s.rows, rows)
	return nil
}

func (s *ReportStore) ListAll() ([]*entity.WeeklyReportRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.WeeklyReportRow, len(s.rows))
	copy(out, s.rows)
	return out, nil
}
