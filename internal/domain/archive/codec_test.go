package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhoarder/backend/internal/shared/types"
)

func TestCodecRoundTrip(t *testing.T) {
	sessions := []types.Session{
		{
			ID:        "f47ac10b-58cc-4372-a567-0e02b2c3d479",
			Name:      "Research",
			Timestamp: 1698508200000,
			Tabs: []types.SavedTab{
				{URL: "https://news.bbc.co.uk", Title: "News", Domain: "bbc.co.uk"},
				{URL: "https://mail.google.com", Title: "Mail", Domain: "google.com", Pinned: true},
			},
		},
		{
			ID:        "9a1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
			Name:      "Empty one",
			Timestamp: 1698508300000,
			Tabs:      []types.SavedTab{},
		},
	}

	data, err := Encode(sessions)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sessions, decoded)
}

func TestCodecRoundTripZeroSessions(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessions":[]}`, string(data))

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, decoded)
	assert.Empty(t, decoded)
}

func TestDecodeEmptyBlob(t *testing.T) {
	decoded, err := Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeWireShape(t *testing.T) {
	blob := `{"sessions":[{"id":"abc","name":"n","timestamp":42,"tabs":[{"url":"https://a.com","title":"A","domain":"a.com","pinned":false}]}]}`

	decoded, err := Decode([]byte(blob))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "abc", decoded[0].ID)
	assert.Equal(t, int64(42), decoded[0].Timestamp)
	require.Len(t, decoded[0].Tabs, 1)
	assert.Equal(t, "a.com", decoded[0].Tabs[0].Domain)
}

func TestDecodeCorrupt(t *testing.T) {
	_, err := Decode([]byte(`{"sessions": [`))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = Decode([]byte(`not json at all`))
	assert.ErrorIs(t, err, ErrCorrupt)
}
