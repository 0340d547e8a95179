// Package links maps backend-origin URLs onto the public API host.
package links

import (
	"net/http"
	"strings"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

type Rewriter struct {
	base string
}

// NewRewriter takes the public base URL, e.g. "https://publicapi.example".
func NewRewriter(baseURL string) *Rewriter {
	return &Rewriter{base: strings.TrimRight(baseURL, "/")}
}

// URL returns the public URL of path.
func (r *Rewriter) URL(path string) string {
	return r.base + path
}

func (r *Rewriter) Link(method, path string) *domain.Link {
	return &domain.Link{Href: r.URL(path), Method: method}
}

// Rewrite points a backend link at path on the public host. The query
// string is carried over byte for byte. A nil or empty link stays absent.
func (r *Rewriter) Rewrite(link *domain.Link, path string) *domain.Link {
	if link == nil || link.Href == "" {
		return nil
	}

	href := r.URL(path)
	if i := strings.IndexByte(link.Href, '?'); i >= 0 {
		href += link.Href[i:]
	}

	method := link.Method
	if method == "" {
		method = http.MethodGet
	}
	return &domain.Link{Href: href, Method: method}
}

// Navigation rewrites each pagination link that is present.
func (r *Rewriter) Navigation(nav domain.NavigationLinks, path string) domain.NavigationLinks {
	return domain.NavigationLinks{
		Self:  r.Rewrite(nav.Self, path),
		First: r.Rewrite(nav.First, path),
		Prev:  r.Rewrite(nav.Prev, path),
		Next:  r.Rewrite(nav.Next, path),
		Last:  r.Rewrite(nav.Last, path),
	}
}
