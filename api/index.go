// Caminho: api/index.go
// Resumo: Adaptador serverless (Vercel). O cold start monta o pool, as
// migrações e o roteador uma única vez; as invocações seguintes reutilizam tudo.

package handler

import (
    "context"
    "log"
    "net/http"
    "sync"

    "github.com/lfcontato/simplifica_api/internal/config"
    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/kv"
    userssvc "github.com/lfcontato/simplifica_api/internal/services/users"
    "github.com/lfcontato/simplifica_api/pkg/httpapi"
)

var (
    setupOnce sync.Once
    router    http.Handler
    setupErr  error
)

func setup() {
    cfg := config.Load()
    if setupErr = cfg.Validate(); setupErr != nil {
        return
    }

    pool, err := db.Connect(cfg.DatabaseURL)
    if err != nil {
        setupErr = err
        return
    }
    // O pool fica vivo pela duração da instância serverless.

    if setupErr = db.Migrate(context.Background(), pool); setupErr != nil {
        return
    }

    if cfg.AdminUser != "" && cfg.AdminPassword != "" {
        users := userssvc.New(pool, cfg.BcryptCost)
        if setupErr = users.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminUser, cfg.AdminPassword); setupErr != nil {
            return
        }
    }

    if err := kv.Init(cfg.RedisURL, cfg.RedisHost, cfg.RedisPort, cfg.RedisPass, cfg.RedisTLS); err != nil {
        log.Printf("[WARN]  redis unavailable, login rate limit disabled: %v", err)
    }

    router = httpapi.New(cfg, pool).Router()
}

// Handler é o ponto de entrada das invocações serverless.
func Handler(w http.ResponseWriter, r *http.Request) {
    setupOnce.Do(setup)
    if setupErr != nil {
        log.Printf("[ERROR] cold start: %v", setupErr)
        http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
        return
    }
    router.ServeHTTP(w, r)
}
