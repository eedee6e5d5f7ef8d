package session

import (
	"bytes"
	"context"
	"fmt"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/tabhoarder/backend/internal/batch"
	"github.com/tabhoarder/backend/internal/bridge"
	"github.com/tabhoarder/backend/internal/domain/archive"
	"github.com/tabhoarder/backend/internal/domain/tabs"
	"github.com/tabhoarder/backend/internal/logging"
	"github.com/tabhoarder/backend/internal/monitoring"
	"github.com/tabhoarder/backend/internal/shared/types"
	"github.com/tabhoarder/backend/internal/storage"
)

// Progress receives completion percentages while a batched operation
// runs. May be nil.
type Progress func(percent int)

// Config tunes the manager.
type Config struct {
	ChunkSize int
	Logger    *logging.Logger
	Metrics   *monitoring.Metrics
}

// Manager ties the session archive, persistence, tab operations, and
// the batch executor together. All tab mutation flows through the
// injected sink in chunks; nothing here talks to a browser API.
type Manager struct {
	store   *archive.Store
	kv      storage.KV
	source  bridge.TabSource
	sink    bridge.TabSink
	chunk   int
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewManager creates a session manager.
func NewManager(store *archive.Store, kv storage.KV, source bridge.TabSource, sink bridge.TabSink, cfg Config) *Manager {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = batch.DefaultChunkSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = monitoring.NewMetrics()
	}
	return &Manager{
		store:   store,
		kv:      kv,
		source:  source,
		sink:    sink,
		chunk:   cfg.ChunkSize,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// Load reads the persisted session blob into the store. A missing blob
// leaves the store empty; a corrupt one surfaces whole.
func (m *Manager) Load() error {
	data, err := m.kv.Get(storage.SessionsKey)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	sessions, err := archive.Decode(data)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}
	m.store.Replace(sessions)
	m.metrics.SessionsStored.Set(float64(m.store.Len()))
	m.logger.Info("sessions loaded", zap.Int("count", len(sessions)))
	return nil
}

func (m *Manager) persist() error {
	data, err := archive.Encode(m.store.List())
	if err != nil {
		return err
	}
	if err := m.kv.Set(storage.SessionsKey, data); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	m.metrics.SessionsStored.Set(float64(m.store.Len()))
	return nil
}

// Snapshot returns the window's current ordered tab set.
func (m *Manager) Snapshot(ctx context.Context) ([]types.Tab, error) {
	return m.source.Tabs(ctx)
}

// DomainStats ranks the window's apex domains, most frequent first.
func (m *Manager) DomainStats(ctx context.Context) ([]types.DomainCount, error) {
	set, err := m.source.Tabs(ctx)
	if err != nil {
		return nil, err
	}
	return tabs.Top(tabs.RankDomains(set), tabs.TopDomains), nil
}

// SortPreview computes the sort-by-domain target order without
// applying it.
func (m *Manager) SortPreview(ctx context.Context) ([]types.TabID, error) {
	set, err := m.source.Tabs(ctx)
	if err != nil {
		return nil, err
	}
	return tabs.SortByDomain(set), nil
}

// ApplySort reorders the window by apex domain, chunk by chunk.
// Returns the number of moves applied, which may be short of the total
// on partial failure.
func (m *Manager) ApplySort(ctx context.Context, onProgress Progress) (int, error) {
	set, err := m.source.Tabs(ctx)
	if err != nil {
		return 0, err
	}
	plan := tabs.MovePlan(tabs.SortByDomain(set))

	applied := 0
	err = batch.Run(ctx, plan, m.options(onProgress), func(ctx context.Context, chunk []types.Move) error {
		if err := m.sink.Move(ctx, chunk); err != nil {
			return err
		}
		applied += len(chunk)
		m.metrics.TabsMoved.Add(float64(len(chunk)))
		return nil
	})
	if err != nil {
		return applied, err
	}
	m.logger.Info("window sorted", zap.Int("moves", applied))
	return applied, nil
}

// Duplicates lists tab ids that a deduplicate would close.
func (m *Manager) Duplicates(ctx context.Context) ([]types.TabID, error) {
	set, err := m.source.Tabs(ctx)
	if err != nil {
		return nil, err
	}
	return tabs.FindDuplicates(set), nil
}

// Deduplicate closes every later duplicate of each URL, chunk by
// chunk. Returns the number of tabs closed.
func (m *Manager) Deduplicate(ctx context.Context, onProgress Progress) (int, error) {
	dupes, err := m.Duplicates(ctx)
	if err != nil {
		return 0, err
	}
	closed, err := m.closeBatched(ctx, dupes, onProgress)
	if err != nil {
		return closed, err
	}
	m.logger.Info("duplicates closed", zap.Int("count", closed))
	return closed, nil
}

// Collapse archives the window's tab set as a new session, persists
// it, then closes the tabs in chunks. The archived session survives
// even if closing fails partway.
func (m *Manager) Collapse(ctx context.Context, name string, onProgress Progress) (types.Session, error) {
	set, err := m.source.Tabs(ctx)
	if err != nil {
		return types.Session{}, err
	}

	sess := m.store.Create(name, set)
	if err := m.persist(); err != nil {
		// Roll the un-persisted session back out of memory.
		_ = m.store.Delete(sess.ID)
		return types.Session{}, err
	}
	m.metrics.SessionsCollapsed.Inc()
	m.logger.Info("session collapsed",
		zap.String("session_id", sess.ID),
		zap.String("name", name),
		zap.Int("tabs", len(sess.Tabs)))

	ids := make([]types.TabID, len(set))
	for i, t := range set {
		ids[i] = t.ID
	}
	if _, err := m.closeBatched(ctx, ids, onProgress); err != nil {
		return sess, err
	}
	return sess, nil
}

// Restore recreates a session's tabs in the window, chunk by chunk.
// Returns the number of tabs created.
func (m *Manager) Restore(ctx context.Context, sessionID string, onProgress Progress) (int, error) {
	sess, err := m.store.Get(sessionID)
	if err != nil {
		return 0, err
	}

	urls := make([]string, len(sess.Tabs))
	for i, t := range sess.Tabs {
		urls[i] = t.URL
	}

	created := 0
	err = batch.Run(ctx, urls, m.options(onProgress), func(ctx context.Context, chunk []string) error {
		if err := m.sink.Create(ctx, chunk); err != nil {
			return err
		}
		created += len(chunk)
		m.metrics.TabsCreated.Add(float64(len(chunk)))
		return nil
	})
	if err != nil {
		return created, err
	}
	m.metrics.SessionsRestored.Inc()
	m.logger.Info("session restored",
		zap.String("session_id", sessionID),
		zap.Int("tabs", created))
	return created, nil
}

// Sessions returns list-view summaries in storage order.
func (m *Manager) Sessions() []types.SessionMetadata {
	return m.store.Metadata()
}

// Session returns one full session.
func (m *Manager) Session(sessionID string) (types.Session, error) {
	return m.store.Get(sessionID)
}

// Search matches session names case-insensitively.
func (m *Manager) Search(query string) []types.Session {
	return m.store.Search(query)
}

// Rename changes a session's name, the only mutation sessions allow.
func (m *Manager) Rename(sessionID, newName string) error {
	if err := m.store.Rename(sessionID, newName); err != nil {
		return err
	}
	return m.persist()
}

// Delete removes a session permanently.
func (m *Manager) Delete(sessionID string) error {
	if err := m.store.Delete(sessionID); err != nil {
		return err
	}
	return m.persist()
}

// Export serializes the full session collection for download.
func (m *Manager) Export() ([]byte, error) {
	return archive.Encode(m.store.List())
}

// ExportGzip serializes and gzip-compresses the session collection.
func (m *Manager) ExportGzip() ([]byte, error) {
	data, err := m.Export()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compress export: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress export: %w", err)
	}
	return buf.Bytes(), nil
}

// Usage reports persistence consumption for display.
func (m *Manager) Usage() (storage.Usage, error) {
	used, err := m.kv.BytesInUse()
	if err != nil {
		return storage.Usage{}, err
	}
	return storage.Usage{BytesInUse: used, Quota: m.kv.Quota()}, nil
}

func (m *Manager) closeBatched(ctx context.Context, ids []types.TabID, onProgress Progress) (int, error) {
	closed := 0
	err := batch.Run(ctx, ids, m.options(onProgress), func(ctx context.Context, chunk []types.TabID) error {
		if err := m.sink.Close(ctx, chunk); err != nil {
			return err
		}
		closed += len(chunk)
		m.metrics.TabsClosed.Add(float64(len(chunk)))
		return nil
	})
	return closed, err
}

func (m *Manager) options(onProgress Progress) batch.Options {
	opts := batch.Options{ChunkSize: m.chunk}
	opts.OnProgress = func(p int) {
		m.metrics.BatchChunks.Inc()
		if onProgress != nil {
			onProgress(p)
		}
	}
	return opts
}
