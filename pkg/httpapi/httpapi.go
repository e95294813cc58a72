// Caminho: pkg/httpapi/httpapi.go
// Resumo: Superfície HTTP do serviço: roteador, middlewares de autenticação/autorização,
// logging de requisições e helpers JSON compartilhados pelos handlers.

package httpapi

import (
    "context"
    "database/sql"
    "encoding/json"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/google/uuid"
    "github.com/gorilla/mux"

    "github.com/lfcontato/simplifica_api/internal/config"
    "github.com/lfcontato/simplifica_api/internal/contants"
    "github.com/lfcontato/simplifica_api/internal/domain"
    authsvc "github.com/lfcontato/simplifica_api/internal/services/auth"
    sentencessvc "github.com/lfcontato/simplifica_api/internal/services/sentences"
    userssvc "github.com/lfcontato/simplifica_api/internal/services/users"
)

// API agrega as dependências injetadas nos handlers. Nada aqui é inicializado
// em import-time: os entrypoints constroem o pool e entregam tudo via New.
type API struct {
    cfg       *config.Config
    auth      *authsvc.Service
    users     *userssvc.Service
    sentences *sentencessvc.Service
}

// New monta a API sobre um pool de conexões já aberto.
func New(cfg *config.Config, sqldb *sql.DB) *API {
    return &API{
        cfg:       cfg,
        auth:      authsvc.New(sqldb, cfg.SecretKey, time.Duration(cfg.TokenLifetimeSeconds)*time.Second),
        users:     userssvc.New(sqldb, cfg.BcryptCost),
        sentences: sentencessvc.New(sqldb),
    }
}

// Router constrói o roteador com todas as rotas públicas, autenticadas e de admin.
func (a *API) Router() http.Handler {
    r := mux.NewRouter()
    r.Use(a.logging, a.recovery)

    r.NotFoundHandler = a.withAccessLog(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
        writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
    }))
    r.MethodNotAllowedHandler = r.NotFoundHandler

    r.HandleFunc("/", a.index).Methods(http.MethodGet)
    r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)

    r.HandleFunc("/sentences", a.listSentences).Methods(http.MethodGet)
    r.HandleFunc("/sentences/sentence", a.randomSentence).Methods(http.MethodGet)
    r.HandleFunc("/sentences/simplified", a.listSimplified).Methods(http.MethodGet)
    r.HandleFunc("/sentences/simplified", a.requireAuth(a.createSimplified)).Methods(http.MethodPost)
    r.HandleFunc("/sentences/simplified/all", a.allSimplified).Methods(http.MethodGet)
    r.HandleFunc("/sentences/simplified/random", a.requireAuth(a.randomUnreviewed)).Methods(http.MethodGet)

    r.HandleFunc("/users", a.listUsers).Methods(http.MethodGet)
    r.HandleFunc("/users/register", a.register).Methods(http.MethodPost)
    r.HandleFunc("/users/login", a.login).Methods(http.MethodPost)
    r.HandleFunc("/users/me", a.requireAuth(a.me)).Methods(http.MethodGet)
    r.HandleFunc("/users/me", a.requireAuth(a.patchMe)).Methods(http.MethodPatch)

    r.HandleFunc("/admin/sentences", a.adminOnly(a.createSentence)).Methods(http.MethodPost)
    r.HandleFunc("/admin/sentences/{sentenceId:[0-9]+}", a.adminOnly(a.patchSentence)).Methods(http.MethodPatch)
    r.HandleFunc("/admin/sentences/{sentenceId:[0-9]+}", a.adminOnly(a.deleteSentence)).Methods(http.MethodDelete)
    r.HandleFunc("/admin/sentences/simplified/{sentenceId:[0-9]+}/{action}", a.adminOnly(a.reviewSimplified)).Methods(http.MethodPatch)
    r.HandleFunc("/admin/sentences/simplified/{sentenceId:[0-9]+}", a.adminOnly(a.deleteSimplified)).Methods(http.MethodDelete)
    r.HandleFunc("/admin/users/{userId:[0-9]+}", a.adminOnly(a.deleteUser)).Methods(http.MethodDelete)

    return r
}

// index responde um resumo navegável dos endpoints do serviço.
func (a *API) index(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]any{
        "sentences": map[string]any{
            "sentences":           map[string]any{"href": "/sentences", "methods": []string{"GET"}},
            "simplifiedSentences": map[string]any{"href": "/sentences/simplified", "methods": []string{"GET", "POST"}},
        },
        "users": map[string]any{
            "users":    map[string]any{"href": "/users", "methods": []string{"GET"}},
            "register": map[string]any{"href": "/users/register", "methods": []string{"POST"}},
            "login":    map[string]any{"href": "/users/login", "methods": []string{"POST"}},
            "me":       map[string]any{"href": "/users/me", "methods": []string{"GET", "PATCH"}},
        },
        "admin": map[string]any{
            "sentences":           map[string]any{"href": "/admin/sentences", "methods": []string{"POST", "PATCH", "DELETE"}},
            "simplifiedSentences": map[string]any{"href": "/admin/sentences/simplified", "methods": []string{"PATCH", "DELETE"}},
        },
    })
}

// health responde OK para verificação de saúde do serviço.
func (a *API) health(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]any{
        "ok":      true,
        "service": a.cfg.ServiceName,
        "status":  "healthy",
    })
}

// ---- Identidade no contexto ----

type contextKey string

const identityContextKey contextKey = "simplifica.identity"

func withIdentity(ctx context.Context, u domain.User) context.Context {
    return context.WithValue(ctx, identityContextKey, u)
}

// identityFrom recupera a identidade anexada pelo middleware de autenticação.
func identityFrom(r *http.Request) (domain.User, bool) {
    u, ok := r.Context().Value(identityContextKey).(domain.User)
    return u, ok
}

// requireAuth valida o header Authorization: Bearer, resolve o usuário e o
// anexa ao contexto. Token expirado é distinguido de token inválido; usuário
// removido portando token ainda válido conta como não autenticado.
func (a *API) requireAuth(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        h := strings.TrimSpace(r.Header.Get("Authorization"))
        if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
            writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid token"})
            return
        }
        tokenStr := strings.TrimSpace(h[len("Bearer "):])

        userID, err := a.auth.VerifyToken(tokenStr)
        if err != nil {
            msg := "invalid token"
            if err == domain.ErrTokenExpired {
                msg = "expired token"
            }
            writeJSON(w, http.StatusUnauthorized, map[string]any{"error": msg})
            return
        }

        user, err := a.users.ByID(r.Context(), userID)
        if err != nil {
            writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "invalid token"})
            return
        }
        next(w, r.WithContext(withIdentity(r.Context(), user)))
    }
}

// requireAdmin exige a flag de admin na identidade já autenticada.
// Não-admins recebem 404, como se a rota não existisse.
func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        user, ok := identityFrom(r)
        if !ok || !user.Admin {
            writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
            return
        }
        next(w, r)
    }
}

// adminOnly encadeia autenticação e a checagem de admin.
func (a *API) adminOnly(next http.HandlerFunc) http.HandlerFunc {
    return a.requireAuth(a.requireAdmin(next))
}

// ---- Middlewares de logging e recuperação ----

// logging registra método, caminho, status, duração, UA e bytes de cada requisição,
// com um request id para correlação.
func (a *API) logging(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
        reqID := uuid.NewString()
        start := time.Now()
        defer func() {
            dur := time.Since(start)
            ua := strings.TrimSpace(r.Header.Get("User-Agent"))
            a.logInfo("req=%s %s %s -> %d (%s) ua=%q bytes=%d", reqID, r.Method, r.URL.Path, sw.status, dur.String(), ua, sw.nbytes)
        }()
        next.ServeHTTP(sw, r)
    })
}

// withAccessLog aplica o logging fora da cadeia normal do mux (NotFoundHandler).
func (a *API) withAccessLog(next http.Handler) http.Handler {
    return a.logging(next)
}

// recovery converte panics em 500 genérico, sem derrubar o processo.
func (a *API) recovery(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        defer func() {
            if rec := recover(); rec != nil {
                a.logError("panic handling %s %s: %v", r.Method, r.URL.Path, rec)
                writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
            }
        }()
        next.ServeHTTP(w, r)
    })
}

// statusWriter captura status/bytes para logging.
type statusWriter struct {
    http.ResponseWriter
    status int
    nbytes int
}

func (w *statusWriter) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
    n, err := w.ResponseWriter.Write(b)
    w.nbytes += n
    return n, err
}

// ---- Helpers JSON ----

// writeJSON escreve uma resposta JSON com status e payload arbitrários.
func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json; charset=utf-8")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

// readJSON decodifica o corpo em dst; corpo malformado vira 400 "invalid json".
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
    if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
        writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
        return false
    }
    return true
}

// parsePage extrai offset/limit da query string, com clamp nos limites aceitos.
func parsePage(r *http.Request) (offset, limit int) {
    offset = 0
    limit = contants.DefaultPageLimit
    q := r.URL.Query()
    if v := strings.TrimSpace(q.Get("offset")); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n >= 0 {
            offset = n
        }
    }
    if v := strings.TrimSpace(q.Get("limit")); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            if n < 1 {
                n = 1
            }
            if n > contants.MaxPageLimit {
                n = contants.MaxPageLimit
            }
            limit = n
        }
    }
    return offset, limit
}

// pathID extrai uma variável numérica de rota (garantida pelo padrão [0-9]+ do mux).
func pathID(r *http.Request, name string) int64 {
    n, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
    return n
}

// clientIP extrai IP do X-Forwarded-For ou RemoteAddr.
func clientIP(r *http.Request) string {
    if xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); xff != "" {
        parts := strings.Split(xff, ",")
        if len(parts) > 0 {
            return strings.TrimSpace(parts[0])
        }
    }
    host := r.RemoteAddr
    if i := strings.LastIndex(host, ":"); i > 0 {
        host = host[:i]
    }
    return host
}

// ---- Logging helpers com níveis simples (DEBUG, INFO, WARN, ERROR) ----

func (a *API) logEnabled(level string) bool {
    order := map[string]int{"DEBUG": 10, "INFO": 20, "WARN": 30, "ERROR": 40}
    cur := strings.ToUpper(strings.TrimSpace(a.cfg.LogLevel))
    if cur == "" {
        cur = "INFO"
    }
    return order[strings.ToUpper(level)] >= order[cur]
}

func (a *API) logDebug(format string, args ...any) {
    if a.logEnabled("DEBUG") {
        log.Printf("[DEBUG] "+format, args...)
    }
}

func (a *API) logInfo(format string, args ...any) {
    if a.logEnabled("INFO") {
        log.Printf("[INFO]  "+format, args...)
    }
}

func (a *API) logWarn(format string, args ...any) {
    if a.logEnabled("WARN") {
        log.Printf("[WARN]  "+format, args...)
    }
}

func (a *API) logError(format string, args ...any) {
    if a.logEnabled("ERROR") {
        log.Printf("[ERROR] "+format, args...)
    }
}
