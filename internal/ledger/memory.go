package ledger

import (
	"context"
	"sync"
)

// Memory is a process-local ledger for tests and local runs.
type Memory struct {
	mu     sync.Mutex
	values [][]string
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) EnsureSchema(ctx context.Context, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.values) == 0 {
		m.values = append(m.values, append([]string(nil), header...))
	}
	return nil
}

func (m *Memory) AppendRows(ctx context.Context, rows []Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.values) == 0 {
		return errNoHeader
	}

	header := m.values[0]
	for _, row := range rows {
		m.values = append(m.values, cellsFor(header, row))
	}
	return nil
}

func (m *Memory) ReadAll(ctx context.Context) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return records(m.values), nil
}

// Values returns a copy of the raw table, header first.
func (m *Memory) Values() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][]string, len(m.values))
	for i, cells := range m.values {
		out[i] = append([]string(nil), cells...)
	}
	return out
}
