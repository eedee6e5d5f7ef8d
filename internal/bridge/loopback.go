package bridge

import (
	"context"
	"sync"

	"github.com/tabhoarder/backend/internal/shared/types"
)

// Loopback is an in-memory window: source and sink over the same tab
// set. It backs host-free tests and demo runs without a connected
// browser.
type Loopback struct {
	mu     sync.Mutex
	tabs   []types.Tab
	nextID types.TabID
}

// NewLoopback seeds a window with the given tabs. Ids and indices are
// assigned in order.
func NewLoopback(urls ...string) *Loopback {
	l := &Loopback{nextID: 1}
	for _, u := range urls {
		l.tabs = append(l.tabs, types.Tab{ID: l.nextID, URL: u, Title: u, Index: len(l.tabs)})
		l.nextID++
	}
	return l
}

func (l *Loopback) Tabs(ctx context.Context) ([]types.Tab, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]types.Tab, len(l.tabs))
	copy(out, l.tabs)
	return out, nil
}

func (l *Loopback) Move(ctx context.Context, moves []types.Move) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, mv := range moves {
		from := -1
		for i, t := range l.tabs {
			if t.ID == mv.ID {
				from = i
				break
			}
		}
		if from < 0 {
			continue
		}
		tab := l.tabs[from]
		l.tabs = append(l.tabs[:from], l.tabs[from+1:]...)
		to := mv.Index
		if to > len(l.tabs) {
			to = len(l.tabs)
		}
		l.tabs = append(l.tabs[:to], append([]types.Tab{tab}, l.tabs[to:]...)...)
	}
	l.reindex()
	return nil
}

func (l *Loopback) Close(ctx context.Context, ids []types.TabID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	closing := make(map[types.TabID]struct{}, len(ids))
	for _, id := range ids {
		closing[id] = struct{}{}
	}
	kept := l.tabs[:0]
	for _, t := range l.tabs {
		if _, gone := closing[t.ID]; !gone {
			kept = append(kept, t)
		}
	}
	l.tabs = kept
	l.reindex()
	return nil
}

func (l *Loopback) Create(ctx context.Context, urls []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, u := range urls {
		l.tabs = append(l.tabs, types.Tab{ID: l.nextID, URL: u, Title: u, Index: len(l.tabs)})
		l.nextID++
	}
	return nil
}

func (l *Loopback) reindex() {
	for i := range l.tabs {
		l.tabs[i].Index = i
	}
}
