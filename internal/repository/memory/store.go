// Package memory keeps every table in process memory. It backs the memory
// storage driver and the service and handler tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
)

type Store struct {
	// txMu serializes transactions. mu guards the maps for single operations.
	txMu sync.Mutex
	mu   sync.RWMutex

	employees map[int64]employee.Employee
	absences  map[int64]absence.AbsenceRequest
	feedbacks map[int64]feedback.Feedback

	nextEmployeeID int64
	nextAbsenceID  int64
	nextFeedbackID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		employees: make(map[int64]employee.Employee),
		absences:  make(map[int64]absence.AbsenceRequest),
		feedbacks: make(map[int64]feedback.Feedback),
		now:       time.Now,
	}
}

type txKey struct{}

type txManager struct {
	store *Store
}

func NewTxManager(store *Store) database.TxManager {
	return &txManager{store: store}
}

// WithinTransaction runs fn while holding the store's transaction lock. Nested
// calls join the outer transaction. Writes are not rolled back on error.
func (m *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) employeeName(id int64) string {
	if e, ok := s.employees[id]; ok {
		return e.FullName()
	}
	return ""
}
