package types

// SavedTab is a tab captured into a collapsed session. Domain is
// recorded at collapse time so stored sessions stay stable even if
// extraction rules change later.
type SavedTab struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Domain string `json:"domain"`
	Pinned bool   `json:"pinned"`
}

// Session is a named, timestamped snapshot of a collapsed tab set.
// Immutable after creation except for Name.
type Session struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Timestamp int64      `json:"timestamp"` // epoch milliseconds
	Tabs      []SavedTab `json:"tabs"`
}

// SessionMetadata contains summary information for list views.
type SessionMetadata struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
	TabCount  int    `json:"tab_count"`
}

// ToMetadata extracts metadata from a session
func (s *Session) ToMetadata() SessionMetadata {
	return SessionMetadata{
		ID:        s.ID,
		Name:      s.Name,
		Timestamp: s.Timestamp,
		TabCount:  len(s.Tabs),
	}
}
