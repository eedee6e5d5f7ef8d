package archive

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/tabhoarder/backend/internal/shared/types"
)

// ErrCorrupt wraps decode failures. A corrupt blob is surfaced whole;
// no partial recovery is attempted.
var ErrCorrupt = errors.New("corrupt session archive")

// envelope is the persisted wire shape: a single JSON object holding
// the ordered session list under "sessions".
type envelope struct {
	Sessions []types.Session `json:"sessions"`
}

// Encode serializes a session collection into the persisted blob form.
func Encode(sessions []types.Session) ([]byte, error) {
	if sessions == nil {
		sessions = []types.Session{}
	}
	data, err := sonic.Marshal(envelope{Sessions: sessions})
	if err != nil {
		return nil, fmt.Errorf("encode sessions: %w", err)
	}
	return data, nil
}

// Decode parses a persisted blob back into the session collection.
// Decode(Encode(x)) == x for any valid collection. An empty blob decodes
// to an empty collection.
func Decode(data []byte) ([]types.Session, error) {
	if len(data) == 0 {
		return []types.Session{}, nil
	}
	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if env.Sessions == nil {
		env.Sessions = []types.Session{}
	}
	for i := range env.Sessions {
		if env.Sessions[i].Tabs == nil {
			env.Sessions[i].Tabs = []types.SavedTab{}
		}
	}
	return env.Sessions, nil
}
