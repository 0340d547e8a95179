package domain

// Link is a single HAL link.
type Link struct {
	Href   string `json:"href"`
	Method string `json:"method"`
}

// NavigationLinks holds the pagination links of a search page. Absent
// links stay nil.
type NavigationLinks struct {
	Self  *Link `json:"self,omitempty"`
	First *Link `json:"first_page,omitempty"`
	Prev  *Link `json:"prev_page,omitempty"`
	Next  *Link `json:"next_page,omitempty"`
	Last  *Link `json:"last_page,omitempty"`
}

type SearchPage[T any] struct {
	Total   int
	Count   int
	Page    int
	Results []T
	Links   NavigationLinks
}
