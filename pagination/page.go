package pagination

import "time"

// Link relations found in page metadata.
const (
	RelNext  = "next"
	RelPrev  = "prev"
	RelFirst = "first"
	RelLast  = "last"
)

// RateLimit is the rate limit state reported alongside a page.
// It is carried through unmodified.
type RateLimit struct {
	Limit     int       `json:"limit" yaml:"limit"`
	Remaining int       `json:"remaining" yaml:"remaining"`
	Reset     time.Time `json:"reset" yaml:"reset"`
}

// Info holds the response metadata of a single page.
type Info struct {
	// Links maps a link relation (e.g. "next") to an absolute URL.
	Links map[string]string

	OAuthScopes         []string
	AcceptedOAuthScopes []string
	ETag                string
	RateLimit           RateLimit
}

// Page is one response's worth of items plus its metadata.
// A Page is not modified after it has been received.
type Page[T any] struct {
	Items []T
	Info  Info
}

// NextLink returns the URL of the following page.
// The second return value is false on the terminal page.
func (p *Page[T]) NextLink() (string, bool) {
	if p == nil {
		return "", false
	}
	return NextLink(p.Info)
}

// NextLink extracts the "next" relation from page metadata.
func NextLink(info Info) (string, bool) {
	link, ok := info.Links[RelNext]
	if !ok || link == "" {
		return "", false
	}
	return link, true
}
