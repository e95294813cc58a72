// Caminho: pkg/httpapi/users.go
// Resumo: Handlers de usuários: listagem pública, registro, login, perfil e
// atualização dos contadores de contribuição.

package httpapi

import (
    "errors"
    "fmt"
    "net/http"
    "net/url"
    "time"

    "github.com/lfcontato/simplifica_api/internal/contants"
    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
    "github.com/lfcontato/simplifica_api/internal/kv"
)

// listUsers devolve a listagem paginada de usuários, com ordenação opcional
// (default, sentences, verifications, leaderboard).
func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
    offset, limit := parsePage(r)
    order := r.URL.Query().Get("order")

    users, err := a.users.List(r.Context(), order, offset, limit)
    if err != nil {
        a.logError("listUsers: %v", err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }

    extra := url.Values{}
    if order != "" {
        extra.Set("order", order)
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "_links": pageLinks("/users", extra, offset, limit, len(users)),
        "users":  users,
    })
}

type registerRequest struct {
    Name     string `json:"name"`
    Username string `json:"username"`
    Password string `json:"password"`
}

// validateRegistration devolve a primeira violação encontrada, ou "" quando ok.
func validateRegistration(req registerRequest) string {
    if n := len(req.Name); n < contants.MinNameLength || n > contants.MaxNameLength {
        return fmt.Sprintf("name must be between %d and %d characters", contants.MinNameLength, contants.MaxNameLength)
    }
    if n := len(req.Username); n < contants.MinUsernameLength || n > contants.MaxUsernameLength {
        return fmt.Sprintf("username must be between %d and %d characters", contants.MinUsernameLength, contants.MaxUsernameLength)
    }
    if len(req.Password) < contants.MinPasswordLength {
        return fmt.Sprintf("password must be at least %d characters", contants.MinPasswordLength)
    }
    if len(req.Password) > contants.MaxPasswordLength {
        return fmt.Sprintf("password must be at most %d characters", contants.MaxPasswordLength)
    }
    return ""
}

// register cria um usuário comum. Nunca concede admin; a resposta jamais
// inclui o hash da senha.
func (a *API) register(w http.ResponseWriter, r *http.Request) {
    var req registerRequest
    if !readJSON(w, r, &req) {
        return
    }
    if msg := validateRegistration(req); msg != "" {
        writeJSON(w, http.StatusBadRequest, map[string]any{"error": msg})
        return
    }

    user, err := a.users.Create(r.Context(), req.Name, req.Username, req.Password)
    if err != nil {
        if errors.Is(err, domain.ErrUsernameTaken) {
            writeJSON(w, http.StatusBadRequest, map[string]any{"error": "username already registered"})
            return
        }
        a.logError("register %q: %v", req.Username, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    a.logInfo("user registered id=%d username=%q", user.ID, user.Username)
    writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
    Username string `json:"username"`
    Password string `json:"password"`
}

// login autentica e emite o token. Falhas de credencial são indistinguíveis
// entre usuário inexistente e senha errada. Com Redis configurado aplica
// rate limit por IP e lockout por usuário após falhas repetidas.
func (a *API) login(w http.ResponseWriter, r *http.Request) {
    var req loginRequest
    if !readJSON(w, r, &req) {
        return
    }
    if req.Username == "" || req.Password == "" {
        writeJSON(w, http.StatusBadRequest, map[string]any{"error": "username and password are required"})
        return
    }

    ctx := r.Context()
    ip := clientIP(r)
    if kv.Available() {
        ok, n, err := kv.AllowRate(ctx, "login:ip:"+ip,
            int64(a.cfg.LoginIPLimit), time.Duration(a.cfg.LoginIPWindowMinutes)*time.Minute)
        if err != nil {
            a.logWarn("login rate check failed for %s: %v", ip, err)
        }
        if !ok {
            a.logWarn("login rate limited ip=%s count=%d", ip, n)
            writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "too many requests"})
            return
        }
        locked, err := kv.IsLocked(ctx, "login:lock:"+req.Username)
        if err != nil {
            a.logWarn("login lock check failed for %q: %v", req.Username, err)
        }
        if locked {
            writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "too many requests"})
            return
        }
    }

    user, token, expiresIn, err := a.auth.Login(ctx, req.Username, req.Password)
    if err != nil {
        if errors.Is(err, domain.ErrInvalidCredentials) {
            a.registerLoginFailure(r, req.Username)
            writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid user/password"})
            return
        }
        a.logError("login %q: %v", req.Username, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }

    kv.Del(ctx, "login:fail:"+req.Username)
    a.logInfo("login ok id=%d username=%q", user.ID, user.Username)
    writeJSON(w, http.StatusOK, map[string]any{
        "user":      user,
        "token":     token,
        "expiresIn": expiresIn,
    })
}

// registerLoginFailure acumula falhas por usuário e arma o lockout ao
// ultrapassar o limiar configurado.
func (a *API) registerLoginFailure(r *http.Request, username string) {
    if !kv.Available() {
        return
    }
    ctx := r.Context()
    window := time.Duration(a.cfg.LoginFailLockTTLMinutes) * time.Minute
    _, n, err := kv.AllowRate(ctx, "login:fail:"+username, int64(a.cfg.LoginFailLockThreshold), window)
    if err != nil {
        a.logWarn("login failure count for %q: %v", username, err)
        return
    }
    if n >= int64(a.cfg.LoginFailLockThreshold) {
        if err := kv.SetLock(ctx, "login:lock:"+username, window); err != nil {
            a.logWarn("login lock for %q: %v", username, err)
            return
        }
        a.logWarn("login locked username=%q failures=%d", username, n)
    }
}

// me devolve o perfil do usuário autenticado.
func (a *API) me(w http.ResponseWriter, r *http.Request) {
    user, ok := identityFrom(r)
    if !ok {
        writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid token"})
        return
    }
    writeJSON(w, http.StatusOK, user)
}

type patchMeRequest struct {
    CompletedSentences     *bool `json:"completedSentences"`
    CompletedVerifications *bool `json:"completedVerifications"`
}

// patchMe incrementa os contadores de contribuição do usuário autenticado.
// Campos ausentes (nil) são ignorados; ambos ausentes não é uma atualização.
func (a *API) patchMe(w http.ResponseWriter, r *http.Request) {
    user, ok := identityFrom(r)
    if !ok {
        writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid token"})
        return
    }
    var req patchMeRequest
    if !readJSON(w, r, &req) {
        return
    }

    bumpSentences := req.CompletedSentences != nil && *req.CompletedSentences
    bumpVerifications := req.CompletedVerifications != nil && *req.CompletedVerifications

    updated, err := a.users.RecordContribution(r.Context(), user.ID, bumpSentences, bumpVerifications)
    if err != nil {
        if errors.Is(err, db.ErrNothingToUpdate) {
            writeJSON(w, http.StatusBadRequest, map[string]any{"error": "nothing to update"})
            return
        }
        if errors.Is(err, domain.ErrNotFound) {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        a.logError("patchMe id=%d: %v", user.ID, err)
        writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
        return
    }
    writeJSON(w, http.StatusOK, updated)
}
