// Caminho: pkg/httpapi/sentences.go
// Resumo: Handlers públicos e autenticados de sentenças e simplificações.

package httpapi

import (
    "database/sql"
    "errors"
    "fmt"
    "net/http"
    "strconv"

    "github.com/lfcontato/simplifica_api/internal/contants"
    "github.com/lfcontato/simplifica_api/internal/domain"
)

// listSentences devolve a listagem paginada de sentenças originais.
func (a *API) listSentences(w http.ResponseWriter, r *http.Request) {
    offset, limit := parsePage(r)

    sentences, err := a.sentences.List(r.Context(), offset, limit)
    if err != nil {
        a.logError("listSentences: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "_links":    pageLinks("/sentences", nil, offset, limit, len(sentences)),
        "sentences": sentences,
    })
}

// randomSentence devolve uma sentença aleatória ainda sem simplificação aceita.
func (a *API) randomSentence(w http.ResponseWriter, r *http.Request) {
    sentence, err := a.sentences.Random(r.Context())
    if err != nil {
        if errors.Is(err, domain.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("randomSentence: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, sentence)
}

// listSimplified devolve a listagem paginada das simplificações submetidas.
func (a *API) listSimplified(w http.ResponseWriter, r *http.Request) {
    offset, limit := parsePage(r)

    simplified, err := a.sentences.ListSimplified(r.Context(), offset, limit)
    if err != nil {
        a.logError("listSimplified: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "_links":              pageLinks("/sentences/simplified", nil, offset, limit, len(simplified)),
        "simplifiedSentences": simplified,
    })
}

// allSimplified devolve todos os pares originais/simplificados aceitos,
// filtrados pelo parâmetro verified (default true). Pensado para exportar
// o corpus completo, sem paginação.
func (a *API) allSimplified(w http.ResponseWriter, r *http.Request) {
    verified := true
    if v := r.URL.Query().Get("verified"); v != "" {
        b, err := strconv.ParseBool(v)
        if err != nil {
            writeJSON(w, http.StatusBadRequest, map[string]any{"error": "verified must be a boolean"})
            return
        }
        verified = b
    }

    pairs, err := a.sentences.AllPairs(r.Context(), verified)
    if err != nil {
        a.logError("allSimplified: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"sentences": pairs})
}

type createSimplifiedRequest struct {
    SimplifiedSentence string `json:"simplifiedSentence"`
    SentenceID         int64  `json:"sentenceId"`
}

// createSimplified registra uma simplificação submetida pelo usuário autenticado.
func (a *API) createSimplified(w http.ResponseWriter, r *http.Request) {
    user, ok := identityFrom(r)
    if !ok {
        writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid token"})
        return
    }
    var req createSimplifiedRequest
    if !readJSON(w, r, &req) {
        return
    }
    if len(req.SimplifiedSentence) < contants.MinSentenceLength {
        writeJSON(w, http.StatusBadRequest, map[string]any{
            "error": fmt.Sprintf("simplifiedSentence must be at least %d characters", contants.MinSentenceLength),
        })
        return
    }
    if req.SentenceID <= 0 {
        writeJSON(w, http.StatusBadRequest, map[string]any{"error": "sentenceId is required"})
        return
    }

    simplified, err := a.sentences.CreateSimplified(r.Context(), req.SimplifiedSentence, req.SentenceID, user.ID)
    if err != nil {
        if errors.Is(err, domain.ErrNotFound) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("createSimplified user=%d sentence=%d: %v", user.ID, req.SentenceID, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    a.logInfo("simplified created id=%d sentence=%d user=%d", simplified.ID, req.SentenceID, user.ID)
    writeJSON(w, http.StatusCreated, simplified)
}

// randomUnreviewed devolve uma simplificação aleatória ainda sem revisão,
// para a fila de verificação dos usuários.
func (a *API) randomUnreviewed(w http.ResponseWriter, r *http.Request) {
    simplified, err := a.sentences.RandomUnreviewed(r.Context())
    if err != nil {
        if errors.Is(err, domain.ErrNotFound) || errors.Is(err, sql.ErrNoRows) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("randomUnreviewed: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, simplified)
}
