package tabs

import (
	"sort"

	"github.com/tabhoarder/backend/internal/domain/extract"
	"github.com/tabhoarder/backend/internal/shared/types"
)

// TopDomains is how many ranked domains the popup shows.
const TopDomains = 10

// RankDomains counts tabs per apex domain, descending by count. Ties
// keep first-seen order among the tied domains. Tabs without a
// parseable domain are skipped.
func RankDomains(in []types.Tab) []types.DomainCount {
	counts := make(map[string]int, len(in))
	var order []string

	for _, t := range in {
		d := extract.Domain(t.URL)
		if d == "" {
			continue
		}
		if _, seen := counts[d]; !seen {
			order = append(order, d)
		}
		counts[d]++
	}

	ranked := make([]types.DomainCount, 0, len(order))
	for _, d := range order {
		ranked = append(ranked, types.DomainCount{Domain: d, Count: counts[d]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}

// Top returns the first n entries of a ranking.
func Top(ranked []types.DomainCount, n int) []types.DomainCount {
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// SortByDomain returns the tab ids in target order: apex domain
// ascending, original index within a domain. The result is always a
// permutation of the input ids.
func SortByDomain(in []types.Tab) []types.TabID {
	type keyed struct {
		id     types.TabID
		domain string
		index  int
	}

	keys := make([]keyed, len(in))
	for i, t := range in {
		keys[i] = keyed{id: t.ID, domain: extract.Domain(t.URL), index: t.Index}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].domain != keys[j].domain {
			return keys[i].domain < keys[j].domain
		}
		return keys[i].index < keys[j].index
	})

	ids := make([]types.TabID, len(keys))
	for i, k := range keys {
		ids[i] = k.id
	}
	return ids
}

// MovePlan turns a target id order into per-tab move requests.
func MovePlan(order []types.TabID) []types.Move {
	moves := make([]types.Move, len(order))
	for i, tid := range order {
		moves[i] = types.Move{ID: tid, Index: i}
	}
	return moves
}

// FindDuplicates selects every later occurrence of a URL already in
// the set. The lowest-index occurrence of each URL survives. Pinned
// tabs are not exempt.
func FindDuplicates(in []types.Tab) []types.TabID {
	ordered := make([]types.Tab, len(in))
	copy(ordered, in)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Index < ordered[j].Index
	})

	seen := make(map[string]struct{}, len(ordered))
	var dupes []types.TabID
	for _, t := range ordered {
		if _, ok := seen[t.URL]; ok {
			dupes = append(dupes, t.ID)
			continue
		}
		seen[t.URL] = struct{}{}
	}
	return dupes
}
