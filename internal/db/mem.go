package db

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/mithrel/slipnote/pkg/api"
)

type memStore struct {
	mu       sync.RWMutex
	byID     map[string]api.Note
	settings *api.PrinterSettings
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[string]api.Note)}
}

func (m *memStore) CreateNote(ctx context.Context, n api.Note) (api.Note, error) {
	if n.ID == "" {
		return api.Note{}, errors.Wrap(ErrConflict, "note id is empty")
	}
	if n.Version == 0 {
		n.Version = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[n.ID]; ok {
		return api.Note{}, errors.Wrapf(ErrConflict, "note %s exists", n.ID)
	}
	m.byID[n.ID] = n
	return n, nil
}

func (m *memStore) GetNote(ctx context.Context, id string) (api.Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.byID[id]
	if !ok {
		return api.Note{}, ErrNotFound
	}
	return n, nil
}

func (m *memStore) UpdateNoteCAS(ctx context.Context, n api.Note, ifVersion int64) (api.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.byID[n.ID]
	if !ok {
		return api.Note{}, ErrNotFound
	}
	if cur.Version != ifVersion {
		return api.Note{}, errors.Wrapf(ErrConflict, "note %s is at version %d, not %d", n.ID, cur.Version, ifVersion)
	}
	n.CreatedAt = cur.CreatedAt
	m.byID[n.ID] = n
	return n, nil
}

func (m *memStore) DeleteNote(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memStore) ListNotes(ctx context.Context, q api.ListQuery) ([]api.Note, error) {
	m.mu.RLock()
	out := make([]api.Note, 0, len(m.byID))
	for _, n := range m.byID {
		out = append(out, n)
	}
	m.mu.RUnlock()
	// Map order is random; settle ties by id before the stable sort.
	sortByID(out)
	return applyQuery(out, q), nil
}

func (m *memStore) GetPrinterSettings(ctx context.Context) (api.PrinterSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return api.DefaultPrinterSettings(), nil
	}
	s := *m.settings
	s.AvailablePrinters = append([]string{}, s.AvailablePrinters...)
	return s, nil
}

func (m *memStore) SavePrinterSettings(ctx context.Context, s api.PrinterSettings) (api.PrinterSettings, error) {
	s = normalizeSettings(s)
	s.LastSaved = time.Now().UTC()
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	cp.AvailablePrinters = append([]string{}, s.AvailablePrinters...)
	m.settings = &cp
	return s, nil
}
