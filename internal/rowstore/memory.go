package rowstore

import (
	"context"
	"sync"
)

// MemoryStore keeps both tables in process memory. Used by tests and by the
// "memory" backend for trying the tool without a remote store.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[Table][][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: map[Table][][]string{
			TableOrders:    {},
			TableCustomers: {},
		},
	}
}

func (s *MemoryStore) ReadAll(_ context.Context, table Table) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return nil, ErrUnknownTable
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}

	return out, nil
}

func (s *MemoryStore) AppendRow(_ context.Context, table Table, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return ErrUnknownTable
	}

	s.tables[table] = append(rows, append([]string(nil), cells...))
	return nil
}

func (s *MemoryStore) UpdateCell(_ context.Context, table Table, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.tables[table]
	if !ok {
		return ErrUnknownTable
	}

	if row < 1 || row > len(rows) {
		return ErrCellNotFound
	}
	if col < 1 || col > len(rows[row-1]) {
		return ErrCellNotFound
	}

	rows[row-1][col-1] = value
	return nil
}
