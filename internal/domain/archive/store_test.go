package archive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhoarder/backend/internal/shared/id"
	"github.com/tabhoarder/backend/internal/shared/types"
)

func sampleTabs() []types.Tab {
	return []types.Tab{
		{ID: 1, URL: "https://news.bbc.co.uk/article", Title: "News", Index: 0},
		{ID: 2, URL: "https://mail.google.com", Title: "Mail", Pinned: true, Index: 1},
	}
}

func TestCreate(t *testing.T) {
	s := NewStore()

	before := time.Now().UnixMilli()
	sess := s.Create("Monday research", sampleTabs())
	after := time.Now().UnixMilli()

	assert.True(t, id.Valid(sess.ID))
	assert.Equal(t, "Monday research", sess.Name)
	assert.GreaterOrEqual(t, sess.Timestamp, before)
	assert.LessOrEqual(t, sess.Timestamp, after)

	require.Len(t, sess.Tabs, 2)
	assert.Equal(t, types.SavedTab{
		URL:    "https://news.bbc.co.uk/article",
		Title:  "News",
		Domain: "bbc.co.uk",
	}, sess.Tabs[0])
	assert.Equal(t, types.SavedTab{
		URL:    "https://mail.google.com",
		Title:  "Mail",
		Domain: "google.com",
		Pinned: true,
	}, sess.Tabs[1])

	assert.Equal(t, 1, s.Len())
}

func TestCreateEmptyTabSet(t *testing.T) {
	s := NewStore()

	sess := s.Create("empty", nil)

	assert.NotNil(t, sess.Tabs)
	assert.Empty(t, sess.Tabs)
}

func TestGet(t *testing.T) {
	s := NewStore()
	created := s.Create("one", sampleTabs())

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRename(t *testing.T) {
	s := NewStore()
	created := s.Create("Old Name", sampleTabs())

	require.NoError(t, s.Rename(created.ID, "New Name"))

	got, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	// Everything else is untouched.
	assert.Equal(t, created.Timestamp, got.Timestamp)
	assert.Equal(t, created.Tabs, got.Tabs)

	assert.ErrorIs(t, s.Rename("missing", "x"), ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewStore()
	a := s.Create("a", nil)
	b := s.Create("b", nil)

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, 1, s.Len())

	_, err := s.Get(a.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(b.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, s.Delete(a.ID), ErrNotFound)
}

func TestSearch(t *testing.T) {
	s := NewStore()
	s.Create("Morning reading", nil)
	s.Create("Work research", nil)
	s.Create("shopping", nil)

	matches := s.Search("RE")
	require.Len(t, matches, 2)
	// Storage order preserved among matches.
	assert.Equal(t, "Morning reading", matches[0].Name)
	assert.Equal(t, "Work research", matches[1].Name)

	assert.Len(t, s.Search(""), 3)
	assert.Empty(t, s.Search("nothing matches this"))
}

func TestListReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Create("a", nil)

	list := s.List()
	list[0].Name = "mutated"

	got := s.List()
	assert.Equal(t, "a", got[0].Name)
}

func TestMetadata(t *testing.T) {
	s := NewStore()
	created := s.Create("a", sampleTabs())

	meta := s.Metadata()
	require.Len(t, meta, 1)
	assert.Equal(t, created.ID, meta[0].ID)
	assert.Equal(t, 2, meta[0].TabCount)
}

func TestReplace(t *testing.T) {
	s := NewStore()
	s.Create("old", nil)

	s.Replace([]types.Session{{ID: "x", Name: "restored", Timestamp: 1, Tabs: []types.SavedTab{}}})

	assert.Equal(t, 1, s.Len())
	got, err := s.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "restored", got.Name)

	s.Replace(nil)
	assert.Zero(t, s.Len())
}
