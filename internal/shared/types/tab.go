package types

// TabID is the host-assigned handle for a browser tab. It is opaque to
// the core: never parsed or generated here, only passed back to the host.
type TabID int

// Tab is one entry in a window's ordered tab set.
type Tab struct {
	ID     TabID  `json:"id"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Pinned bool   `json:"pinned"`
	Index  int    `json:"index"`
}

// DomainCount pairs an apex domain with the number of tabs on it.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// Move is a single reorder request: put the tab at the given index.
type Move struct {
	ID    TabID `json:"id"`
	Index int   `json:"index"`
}
