package tabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhoarder/backend/internal/shared/types"
)

func makeTab(id int, url string) types.Tab {
	return types.Tab{ID: types.TabID(id), URL: url, Title: url, Index: id}
}

func TestRankDomains(t *testing.T) {
	in := []types.Tab{
		makeTab(0, "https://www.google.com/search"),
		makeTab(1, "https://mail.google.com"),
		makeTab(2, "https://github.com/rust"),
		makeTab(3, "https://www.google.com/maps"),
		makeTab(4, "https://github.com/yewstack"),
	}

	ranked := RankDomains(in)

	require.Len(t, ranked, 2)
	assert.Equal(t, types.DomainCount{Domain: "google.com", Count: 3}, ranked[0])
	assert.Equal(t, types.DomainCount{Domain: "github.com", Count: 2}, ranked[1])
}

func TestRankDomainsTiesKeepFirstSeenOrder(t *testing.T) {
	in := []types.Tab{
		makeTab(0, "https://www.google.com"),
		makeTab(1, "https://mail.google.com"),
		makeTab(2, "https://news.bbc.co.uk"),
		makeTab(3, "https://news.bbc.co.uk"),
	}

	ranked := RankDomains(in)

	// google.com and bbc.co.uk both count 2; google.com was seen first.
	require.Len(t, ranked, 2)
	assert.Equal(t, "google.com", ranked[0].Domain)
	assert.Equal(t, 2, ranked[0].Count)
	assert.Equal(t, "bbc.co.uk", ranked[1].Domain)
	assert.Equal(t, 2, ranked[1].Count)
}

func TestRankDomainsSkipsUnparseable(t *testing.T) {
	in := []types.Tab{
		makeTab(0, "https://"),
		makeTab(1, ""),
		makeTab(2, "https://github.com"),
	}

	ranked := RankDomains(in)

	require.Len(t, ranked, 1)
	assert.Equal(t, "github.com", ranked[0].Domain)
}

func TestTop(t *testing.T) {
	ranked := []types.DomainCount{
		{Domain: "a.com", Count: 3},
		{Domain: "b.com", Count: 2},
		{Domain: "c.com", Count: 1},
	}

	assert.Len(t, Top(ranked, 2), 2)
	assert.Len(t, Top(ranked, 10), 3)
	assert.Empty(t, Top(nil, 10))
}

func TestSortByDomain(t *testing.T) {
	in := []types.Tab{
		makeTab(0, "https://docs.microsoft.com"),
		makeTab(1, "https://github.com/rust"),
		makeTab(2, "https://mail.google.com"),
		makeTab(3, "https://www.google.com"),
	}

	order := SortByDomain(in)

	assert.Equal(t, []types.TabID{1, 2, 3, 0}, order)
}

func TestSortByDomainIsPermutation(t *testing.T) {
	cases := map[string][]types.Tab{
		"empty":  {},
		"single": {makeTab(7, "https://github.com")},
		"mixed": {
			makeTab(0, "https://news.bbc.co.uk"),
			makeTab(1, "not-a-url"),
			makeTab(2, "https://github.com"),
			makeTab(3, ""),
			makeTab(4, "https://github.com"),
		},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			order := SortByDomain(in)

			require.Len(t, order, len(in))
			seen := make(map[types.TabID]bool)
			for _, tid := range order {
				assert.False(t, seen[tid], "id %d appears twice", tid)
				seen[tid] = true
			}
			for _, tab := range in {
				assert.True(t, seen[tab.ID], "id %d dropped", tab.ID)
			}
		})
	}
}

func TestSortByDomainStableWithinDomain(t *testing.T) {
	in := []types.Tab{
		makeTab(0, "https://mail.google.com"),
		makeTab(1, "https://github.com"),
		makeTab(2, "https://www.google.com"),
	}

	order := SortByDomain(in)

	// Within google.com, original index order is preserved.
	assert.Equal(t, []types.TabID{1, 0, 2}, order)
}

func TestMovePlan(t *testing.T) {
	plan := MovePlan([]types.TabID{5, 3, 9})

	assert.Equal(t, []types.Move{{ID: 5, Index: 0}, {ID: 3, Index: 1}, {ID: 9, Index: 2}}, plan)
}

func TestFindDuplicates(t *testing.T) {
	in := []types.Tab{
		makeTab(1, "https://google.com"),
		makeTab(2, "https://github.com"),
		makeTab(3, "https://google.com"),
		makeTab(4, "https://microsoft.com"),
		makeTab(5, "https://github.com"),
	}

	dupes := FindDuplicates(in)

	assert.ElementsMatch(t, []types.TabID{3, 5}, dupes)
}

func TestFindDuplicatesKeepsLowestIndex(t *testing.T) {
	// Input order scrambled relative to window index.
	in := []types.Tab{
		{ID: 10, URL: "https://github.com", Index: 4},
		{ID: 11, URL: "https://github.com", Index: 0},
		{ID: 12, URL: "https://github.com", Index: 2},
	}

	dupes := FindDuplicates(in)

	// N tabs sharing one URL select exactly N-1; the lowest index survives.
	assert.ElementsMatch(t, []types.TabID{10, 12}, dupes)
}

func TestFindDuplicatesPinnedNotExempt(t *testing.T) {
	in := []types.Tab{
		{ID: 1, URL: "https://github.com", Index: 0},
		{ID: 2, URL: "https://github.com", Pinned: true, Index: 1},
	}

	dupes := FindDuplicates(in)

	assert.Equal(t, []types.TabID{2}, dupes)
}

func TestFindDuplicatesNone(t *testing.T) {
	in := []types.Tab{
		makeTab(1, "https://google.com"),
		makeTab(2, "https://github.com"),
	}

	assert.Empty(t, FindDuplicates(in))
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	in := []types.Tab{
		{ID: 2, URL: "https://b.com", Index: 1},
		{ID: 1, URL: "https://a.com", Index: 0},
	}
	snapshot := make([]types.Tab, len(in))
	copy(snapshot, in)

	RankDomains(in)
	SortByDomain(in)
	FindDuplicates(in)

	assert.Equal(t, snapshot, in)
}

func TestScenarioApexGrouping(t *testing.T) {
	in := []types.Tab{
		makeTab(0, "https://google.com"),
		makeTab(1, "https://mail.google.com"),
		makeTab(2, "https://bbc.co.uk"),
		makeTab(3, "https://bbc.co.uk"),
	}

	ranked := RankDomains(in)
	require.Len(t, ranked, 2)
	assert.Equal(t, types.DomainCount{Domain: "google.com", Count: 2}, ranked[0])
	assert.Equal(t, types.DomainCount{Domain: "bbc.co.uk", Count: 2}, ranked[1])

	assert.Equal(t, []types.TabID{3}, FindDuplicates(in))
}
