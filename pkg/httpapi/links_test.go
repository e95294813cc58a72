// Caminho: pkg/httpapi/links_test.go
// Resumo: Testes da montagem dos links de paginação.

package httpapi

import (
    "net/url"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestPageLinksFirstFullPage(t *testing.T) {
    links := pageLinks("/sentences", nil, 0, 10, 10)

    assert.Equal(t, "/sentences?limit=10&offset=0", links.Self.Href)
    assert.Nil(t, links.Prev)
    if assert.NotNil(t, links.Next) {
        assert.Equal(t, "/sentences?limit=10&offset=10", links.Next.Href)
    }
}

func TestPageLinksMiddlePage(t *testing.T) {
    links := pageLinks("/sentences", nil, 20, 10, 10)

    if assert.NotNil(t, links.Prev) {
        assert.Equal(t, "/sentences?limit=10&offset=10", links.Prev.Href)
    }
    if assert.NotNil(t, links.Next) {
        assert.Equal(t, "/sentences?limit=10&offset=30", links.Next.Href)
    }
}

func TestPageLinksShortPageHasNoNext(t *testing.T) {
    links := pageLinks("/sentences", nil, 20, 10, 3)

    assert.NotNil(t, links.Prev)
    assert.Nil(t, links.Next)
}

func TestPageLinksPrevMayUnderflow(t *testing.T) {
    // offset menor que limit: prev aponta para offset negativo e cabe ao
    // cliente fazer o clamp em zero
    links := pageLinks("/sentences", nil, 5, 10, 10)

    if assert.NotNil(t, links.Prev) {
        assert.Equal(t, "/sentences?limit=10&offset=-5", links.Prev.Href)
    }
}

func TestPageLinksPreservesExtraQuery(t *testing.T) {
    extra := url.Values{}
    extra.Set("order", "leaderboard")
    links := pageLinks("/users", extra, 0, 10, 10)

    assert.Equal(t, "/users?limit=10&offset=0&order=leaderboard", links.Self.Href)
    if assert.NotNil(t, links.Next) {
        assert.Equal(t, "/users?limit=10&offset=10&order=leaderboard", links.Next.Href)
    }
}
