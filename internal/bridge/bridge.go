package bridge

import (
	"context"
	"errors"

	"github.com/tabhoarder/backend/internal/shared/types"
)

// ErrNoWindow is returned when no browser window is connected to serve
// a request.
var ErrNoWindow = errors.New("no browser window connected")

// TabSource supplies the current ordered tab set of a window.
type TabSource interface {
	Tabs(ctx context.Context) ([]types.Tab, error)
}

// TabSink is the capability the host exposes for mutating tabs. The
// batch executor drives it; nothing in the core calls a browser API
// directly.
type TabSink interface {
	Move(ctx context.Context, moves []types.Move) error
	Close(ctx context.Context, ids []types.TabID) error
	Create(ctx context.Context, urls []string) error
}
