package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/pay-publicapi/internal/domain"
)

func TestRewrite(t *testing.T) {
	r := NewRewriter("https://api.public/")

	tests := []struct {
		name string
		link *domain.Link
		path string
		want *domain.Link
	}{
		{
			name: "query preserved verbatim",
			link: &domain.Link{Href: "https://backend.internal/v1/payments?page=2&display_size=10", Method: "GET"},
			path: "/v1/payments",
			want: &domain.Link{Href: "https://api.public/v1/payments?page=2&display_size=10", Method: "GET"},
		},
		{
			name: "encoded query untouched",
			link: &domain.Link{Href: "http://ledger:8080/v1/transaction?account_id=42&reference=a%20b&email=x%40y.z"},
			path: "/v1/payments",
			want: &domain.Link{Href: "https://api.public/v1/payments?account_id=42&reference=a%20b&email=x%40y.z", Method: "GET"},
		},
		{
			name: "no query",
			link: &domain.Link{Href: "http://connector/v1/api/accounts/1/charges", Method: "GET"},
			path: "/v1/payments",
			want: &domain.Link{Href: "https://api.public/v1/payments", Method: "GET"},
		},
		{
			name: "nil stays nil",
			path: "/v1/payments",
		},
		{
			name: "empty href is absent",
			link: &domain.Link{Method: "GET"},
			path: "/v1/payments",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Rewrite(tc.link, tc.path))
		})
	}
}

func TestNavigation_PartialSet(t *testing.T) {
	r := NewRewriter("https://api.public")
	nav := domain.NavigationLinks{
		Self:  &domain.Link{Href: "http://connector/x?page=1", Method: "GET"},
		First: &domain.Link{Href: "http://connector/x?page=1", Method: "GET"},
		Next:  &domain.Link{Href: "http://connector/x?page=2", Method: "GET"},
	}

	got := r.Navigation(nav, "/v1/refunds")

	require.NotNil(t, got.Self)
	assert.Equal(t, "https://api.public/v1/refunds?page=1", got.Self.Href)
	assert.Equal(t, "https://api.public/v1/refunds?page=1", got.First.Href)
	assert.Equal(t, "https://api.public/v1/refunds?page=2", got.Next.Href)
	assert.Nil(t, got.Prev)
	assert.Nil(t, got.Last)
}

func TestLink(t *testing.T) {
	r := NewRewriter("https://api.public")
	assert.Equal(t,
		&domain.Link{Href: "https://api.public/v1/payments/abc/cancel", Method: "POST"},
		r.Link("POST", "/v1/payments/abc/cancel"))
}
