// Caminho: cmd/devseed/main.go
// Resumo: Utilitário de desenvolvimento: migra o banco, garante o admin raiz
// e insere sentenças de exemplo para testar o fluxo completo localmente.

package main

import (
    "context"
    "log"

    "github.com/joho/godotenv"

    "github.com/lfcontato/simplifica_api/internal/config"
    "github.com/lfcontato/simplifica_api/internal/db"
    sentencessvc "github.com/lfcontato/simplifica_api/internal/services/sentences"
    userssvc "github.com/lfcontato/simplifica_api/internal/services/users"
)

var sampleSentences = []string{
    "The committee has deferred its decision pending further deliberation on the matter.",
    "Municipal authorities announced the implementation of revised traffic regulations.",
    "The legislation stipulates that all applicants must furnish documentary evidence.",
    "Meteorologists anticipate precipitation throughout the duration of the weekend.",
    "The corporation disclosed a substantial contraction in quarterly revenue figures.",
}

func main() {
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

    ctx := context.Background()
    if err := db.Migrate(ctx, pool); err != nil {
        log.Fatalf("[ERROR] database migration: %v", err)
    }

    if cfg.AdminUser != "" && cfg.AdminPassword != "" {
        users := userssvc.New(pool, cfg.BcryptCost)
        if err := users.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminUser, cfg.AdminPassword); err != nil {
            log.Fatalf("[ERROR] admin seed: %v", err)
        }
        log.Printf("[INFO]  admin user %q ready", cfg.AdminUser)
    }

    sentences := sentencessvc.New(pool)
    for _, text := range sampleSentences {
        s, err := sentences.Create(ctx, text)
        if err != nil {
            log.Fatalf("[ERROR] seed sentence: %v", err)
        }
        log.Printf("[INFO]  sentence id=%d seeded", s.ID)
    }
    log.Printf("[INFO]  development seed complete")
}
