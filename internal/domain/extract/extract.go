package extract

import (
	"net"
	"net/url"
	"strings"
)

// compoundSuffixes lists common multi-label public suffixes. A host
// ending in one of these keeps three labels in its registrable domain
// instead of two.
var compoundSuffixes = map[string]struct{}{
	"co.uk":  {},
	"org.uk": {},
	"ac.uk":  {},
	"gov.uk": {},
	"me.uk":  {},
	"co.jp":  {},
	"ne.jp":  {},
	"or.jp":  {},
	"ac.jp":  {},
	"com.au": {},
	"net.au": {},
	"org.au": {},
	"edu.au": {},
	"gov.au": {},
	"co.nz":  {},
	"net.nz": {},
	"org.nz": {},
	"co.in":  {},
	"co.kr":  {},
	"co.za":  {},
	"com.br": {},
	"com.mx": {},
	"com.ar": {},
	"com.cn": {},
	"com.tw": {},
	"com.sg": {},
	"com.hk": {},
}

// Domain computes the apex (registrable) domain of a URL.
//
// It is pure and total: no lookups, deterministic output, and the empty
// string for anything without a parseable host. Hosts with two or fewer
// labels, localhost, and IP literals come back unchanged (lowercased,
// port stripped).
func Domain(rawURL string) string {
	host := hostname(rawURL)
	if host == "" {
		return ""
	}
	if host == "localhost" || net.ParseIP(host) != nil {
		return host
	}

	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}

	suffix := strings.Join(labels[len(labels)-2:], ".")
	if _, ok := compoundSuffixes[suffix]; ok {
		return strings.Join(labels[len(labels)-3:], ".")
	}
	return suffix
}

// hostname extracts the lowercased host from a URL string. Bare hosts
// without a scheme ("localhost:3000") are accepted.
func hostname(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
