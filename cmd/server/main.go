// Caminho: cmd/server/main.go
// Resumo: Entrypoint do servidor HTTP. Abre o pool de conexões, aplica as
// migrações, semeia o admin raiz e serve a API com desligamento gracioso.

package main

import (
    "context"
    "errors"
    "log"
    "net/http"
    "os/signal"
    "strconv"
    "syscall"
    "time"

    "github.com/joho/godotenv"

    "github.com/lfcontato/simplifica_api/internal/config"
    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/kv"
    userssvc "github.com/lfcontato/simplifica_api/internal/services/users"
    "github.com/lfcontato/simplifica_api/pkg/httpapi"
)

func main() {
    // .env é opcional; em produção as variáveis vêm do ambiente
    _ = godotenv.Load()

    cfg := config.Load()
    if err := cfg.Validate(); err != nil {
        log.Fatalf("[ERROR] invalid configuration: %v", err)
    }

    pool, err := db.Connect(cfg.DatabaseURL)
    if err != nil {
        log.Fatalf("[ERROR] database connection: %v", err)
    }
    defer pool.Close()

    if err := db.Migrate(context.Background(), pool); err != nil {
        log.Fatalf("[ERROR] database migration: %v", err)
    }

    if cfg.AdminUser != "" && cfg.AdminPassword != "" {
        users := userssvc.New(pool, cfg.BcryptCost)
        if err := users.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminUser, cfg.AdminPassword); err != nil {
            log.Fatalf("[ERROR] admin seed: %v", err)
        }
        log.Printf("[INFO]  admin user %q ready", cfg.AdminUser)
    }

    if err := kv.Init(cfg.RedisURL, cfg.RedisHost, cfg.RedisPort, cfg.RedisPass, cfg.RedisTLS); err != nil {
        // Redis é opcional: sem ele o login segue sem rate limit
        log.Printf("[WARN]  redis unavailable, login rate limit disabled: %v", err)
    }

    api := httpapi.New(cfg, pool)
    srv := &http.Server{
        Addr:              ":" + strconv.Itoa(cfg.Port),
        Handler:           api.Router(),
        ReadHeaderTimeout: 10 * time.Second,
        ReadTimeout:       30 * time.Second,
        WriteTimeout:      30 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    go func() {
        log.Printf("[INFO]  %s v%s listening on %s (%s)", cfg.ServiceName, cfg.Version, srv.Addr, cfg.DeploymentEnv)
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            log.Fatalf("[ERROR] server: %v", err)
        }
    }()

    <-ctx.Done()
    log.Printf("[INFO]  shutting down")

    shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        log.Printf("[WARN]  shutdown: %v", err)
    }
}
