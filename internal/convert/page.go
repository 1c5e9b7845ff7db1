package convert

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmgilman/go/issues/pagination"
	"github.com/tomnomnom/linkheader"
)

// Response headers carried into pagination.Info.
const (
	HeaderLink                = "Link"
	HeaderETag                = "ETag"
	HeaderOAuthScopes         = "X-OAuth-Scopes"
	HeaderAcceptedOAuthScopes = "X-Accepted-OAuth-Scopes"
	HeaderRateLimit           = "X-RateLimit-Limit"
	HeaderRateRemaining       = "X-RateLimit-Remaining"
	HeaderRateReset           = "X-RateLimit-Reset"
)

// PageInfo extracts pagination metadata from the headers of a list response.
// Links are keyed by relation; a missing Link header yields an empty map.
func PageInfo(header http.Header) pagination.Info {
	info := pagination.Info{Links: make(map[string]string)}
	if header == nil {
		return info
	}

	for _, link := range linkheader.ParseMultiple(header.Values(HeaderLink)) {
		// A single link may carry several space-separated relations.
		for _, rel := range strings.Fields(link.Rel) {
			info.Links[rel] = link.URL
		}
	}

	info.ETag = header.Get(HeaderETag)
	info.OAuthScopes = splitScopes(header.Get(HeaderOAuthScopes))
	info.AcceptedOAuthScopes = splitScopes(header.Get(HeaderAcceptedOAuthScopes))
	info.RateLimit = rateLimit(header)

	return info
}

func rateLimit(header http.Header) pagination.RateLimit {
	var rate pagination.RateLimit
	if v, err := strconv.Atoi(header.Get(HeaderRateLimit)); err == nil {
		rate.Limit = v
	}
	if v, err := strconv.Atoi(header.Get(HeaderRateRemaining)); err == nil {
		rate.Remaining = v
	}
	if v, err := strconv.ParseInt(header.Get(HeaderRateReset), 10, 64); err == nil {
		rate.Reset = time.Unix(v, 0)
	}
	return rate
}

func splitScopes(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}

	scopes := strings.Split(header, ",")
	for i, scope := range scopes {
		scopes[i] = strings.TrimSpace(scope)
	}
	return scopes
}
