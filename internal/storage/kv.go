package storage

// SessionsKey is the single key under which the serialized session
// archive lives. The store treats the value as one atomic blob, not a
// query surface.
const SessionsKey = "sessions"

// DefaultQuota mirrors the 10 MB budget browser extension storage
// gives a local area. Reported for display only; nothing here enforces it.
const DefaultQuota int64 = 10 * 1024 * 1024

// KV is the host-provided key-value persistence contract. Get returns
// nil for an absent key. BytesInUse and Quota exist purely so the UI
// can show storage usage.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	BytesInUse() (int64, error)
	Quota() int64
}

// Usage is the display shape for storage consumption.
type Usage struct {
	BytesInUse int64 `json:"bytes_in_use"`
	Quota      int64 `json:"quota"`
}
