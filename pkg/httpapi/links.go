// Caminho: pkg/httpapi/links.go
// Resumo: Construção dos links de navegação (_links) das listagens paginadas.

package httpapi

import (
    "net/url"
    "strconv"
)

// Link referencia um recurso navegável.
type Link struct {
    Href string `json:"href"`
}

// Links agrupa self/prev/next de uma página de resultados.
// prev e next são omitidos quando não fazem sentido para a página atual.
type Links struct {
    Self Link  `json:"self"`
    Prev *Link `json:"prev,omitempty"`
    Next *Link `json:"next,omitempty"`
}

// pageLinks monta os links de uma listagem paginada. prev existe quando
// offset > 0 (o alvo pode ficar negativo, cabe ao cliente corrigir o clamp);
// next existe quando a página veio cheia, heurística que admite um next
// apontando para uma página vazia quando o total é múltiplo exato do limit.
func pageLinks(path string, extra url.Values, offset, limit, returned int) Links {
    href := func(off int) string {
        q := url.Values{}
        for k, vs := range extra {
            for _, v := range vs {
                q.Add(k, v)
            }
        }
        q.Set("offset", strconv.Itoa(off))
        q.Set("limit", strconv.Itoa(limit))
        return path + "?" + q.Encode()
    }

    links := Links{Self: Link{Href: href(offset)}}
    if offset > 0 {
        links.Prev = &Link{Href: href(offset - limit)}
    }
    if returned == limit {
        links.Next = &Link{Href: href(offset + limit)}
    }
    return links
}
