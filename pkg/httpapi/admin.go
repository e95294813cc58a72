// Caminho: pkg/httpapi/admin.go
// Resumo: Handlers administrativos: CRUD de sentenças originais, revisão de
// simplificações (verify/reject/undo) e remoção de usuários.

package httpapi

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/gorilla/mux"

    "github.com/lfcontato/simplifica_api/internal/contants"
    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
    sentencessvc "github.com/lfcontato/simplifica_api/internal/services/sentences"
)

type createSentenceRequest struct {
    Sentence string `json:"sentence"`
}

// createSentence adiciona uma sentença original ao corpus.
func (a *API) createSentence(w http.ResponseWriter, r *http.Request) {
    var req createSentenceRequest
    if !readJSON(w, r, &req) {
        return
    }
    if len(req.Sentence) < contants.MinSentenceLength {
        writeJSON(w, http.StatusBadRequest, map[string]any{
            "error": fmt.Sprintf("sentence must be at least %d characters", contants.MinSentenceLength),
        })
        return
    }

    sentence, err := a.sentences.Create(r.Context(), req.Sentence)
    if err != nil {
        a.logError("createSentence: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    a.logInfo("sentence created id=%d", sentence.ID)
    writeJSON(w, http.StatusCreated, sentence)
}

type patchSentenceRequest struct {
    Sentence *string `json:"sentence"`
}

// patchSentence atualiza o texto de uma sentença. Campo ausente (nil) não é
// atualização; o corpo sem nada a aplicar vira 400.
func (a *API) patchSentence(w http.ResponseWriter, r *http.Request) {
    id := pathID(r, "sentenceId")
    var req patchSentenceRequest
    if !readJSON(w, r, &req) {
        return
    }
    if req.Sentence != nil && len(*req.Sentence) < contants.MinSentenceLength {
        writeJSON(w, http.StatusBadRequest, map[string]any{
            "error": fmt.Sprintf("sentence must be at least %d characters", contants.MinSentenceLength),
        })
        return
    }

    sentence, err := a.sentences.Patch(r.Context(), id, req.Sentence)
    if err != nil {
        switch {
        case errors.Is(err, db.ErrNothingToUpdate):
            writeJSON(w, http.StatusBadRequest, map[string]any{"error": "nothing to update"})
        case errors.Is(err, domain.ErrNotFound):
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
        default:
            a.logError("patchSentence id=%d: %v", id, err)
            writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        }
        return
    }
    writeJSON(w, http.StatusOK, sentence)
}

// deleteSentence remove a sentença e, na mesma transação, todas as
// simplificações ligadas a ela.
func (a *API) deleteSentence(w http.ResponseWriter, r *http.Request) {
    id := pathID(r, "sentenceId")

    if err := a.sentences.Delete(r.Context(), id); err != nil {
        if errors.Is(err, domain.ErrNotFound) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("deleteSentence id=%d: %v", id, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    a.logInfo("sentence deleted id=%d", id)
    writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "sentenceId": id})
}

// reviewSimplified aplica a ação de revisão (verify, reject ou undo) sobre
// uma simplificação. verify também marca a sentença original como resolvida.
func (a *API) reviewSimplified(w http.ResponseWriter, r *http.Request) {
    id := pathID(r, "sentenceId")
    action := sentencessvc.ReviewAction(mux.Vars(r)["action"])
    if !sentencessvc.ValidReviewAction(string(action)) {
        writeJSON(w, http.StatusBadRequest, map[string]any{"error": "action must be one of verify, reject, undo"})
        return
    }

    simplified, err := a.sentences.Review(r.Context(), id, action)
    if err != nil {
        if errors.Is(err, domain.ErrNotFound) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("reviewSimplified id=%d action=%s: %v", id, action, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    a.logInfo("simplified reviewed id=%d action=%s", id, action)
    writeJSON(w, http.StatusOK, simplified)
}

// deleteSimplified remove uma simplificação submetida.
func (a *API) deleteSimplified(w http.ResponseWriter, r *http.Request) {
    id := pathID(r, "sentenceId")

    if err := a.sentences.DeleteSimplified(r.Context(), id); err != nil {
        if errors.Is(err, domain.ErrNotFound) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("deleteSimplified id=%d: %v", id, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "simplifiedSentenceId": id})
}

// deleteUser remove um usuário pelo id.
func (a *API) deleteUser(w http.ResponseWriter, r *http.Request) {
    id := pathID(r, "userId")

    if err := a.users.Delete(r.Context(), id); err != nil {
        if errors.Is(err, domain.ErrNotFound) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("deleteUser id=%d: %v", id, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    a.logInfo("user deleted id=%d", id)
    writeJSON(w, http.StatusOK, map[string]any{"deleted": true, "userId": id})
}
