package rest

import (
	"net/url"

	"github.com/tomnomnom/linkheader"
)

// Page is the list response envelope: one page of items plus the token of
// the next page. An empty token means there is no next page.
type Page[T any] interface {
	PageItems() []T
	PageToken() string
}

// PageTokenSetter is implemented (on the pointer) by list responses so the
// executor can fill in a next-page token carried by a Link header.
type PageTokenSetter interface {
	SetNextPageToken(token string)
}

// PagedQuery is a list query that can be re-issued for another page.
type PagedQuery[Q any] interface {
	QueryParams
	WithPageToken(token string) Q
}

// nextTokenFromLink extracts the pageToken of the rel="next" link of an
// RFC 5988 Link header. Returns "" if there is none.
func nextTokenFromLink(header string) string {
	if header == "" {
		return ""
	}
	for _, link := range linkheader.Parse(header).FilterByRel("next") {
		u, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if token := u.Query().Get("pageToken"); token != "" {
			return token
		}
	}
	return ""
}
