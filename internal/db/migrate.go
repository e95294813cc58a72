// Caminho: internal/db/migrate.go
// Resumo: Migrações mínimas para criar as tabelas do serviço (users, sentences, simplified_sentences).

package db

import (
    "context"
    "database/sql"
)

// Migrate aplica o schema mínimo necessário para operação do serviço.
func Migrate(ctx context.Context, sqldb *sql.DB) error {
    var stmts []string
    if IsPostgres() {
        stmts = []string{
            `CREATE TABLE IF NOT EXISTS users (
                id BIGSERIAL PRIMARY KEY,
                name TEXT NOT NULL,
                username TEXT NOT NULL UNIQUE,
                password TEXT NOT NULL,
                admin BOOLEAN NOT NULL DEFAULT FALSE,
                completed_sentences BIGINT NOT NULL DEFAULT 0,
                completed_verifications BIGINT NOT NULL DEFAULT 0,
                created TIMESTAMPTZ NOT NULL DEFAULT NOW()
            );`,
            `CREATE TABLE IF NOT EXISTS sentences (
                id BIGSERIAL PRIMARY KEY,
                sentence TEXT NOT NULL,
                simplified BOOLEAN NOT NULL DEFAULT FALSE,
                created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
            );`,
            `CREATE TABLE IF NOT EXISTS simplified_sentences (
                id BIGSERIAL PRIMARY KEY,
                sentence_id BIGINT NOT NULL REFERENCES sentences(id),
                user_id BIGINT NOT NULL REFERENCES users(id),
                simplified_sentence TEXT NOT NULL,
                verified BOOLEAN NOT NULL DEFAULT FALSE,
                rejected BOOLEAN NOT NULL DEFAULT FALSE,
                created TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
            );`,
            `CREATE INDEX IF NOT EXISTS idx_simplified_sentences_sentence_id ON simplified_sentences(sentence_id);`,
            `CREATE INDEX IF NOT EXISTS idx_simplified_sentences_user_id ON simplified_sentences(user_id);`,
        }
    } else {
        stmts = []string{
            `CREATE TABLE IF NOT EXISTS users (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                name TEXT NOT NULL,
                username TEXT NOT NULL UNIQUE,
                password TEXT NOT NULL,
                admin BOOLEAN NOT NULL DEFAULT 0,
                completed_sentences INTEGER NOT NULL DEFAULT 0,
                completed_verifications INTEGER NOT NULL DEFAULT 0,
                created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
            );`,
            `CREATE TABLE IF NOT EXISTS sentences (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                sentence TEXT NOT NULL,
                simplified BOOLEAN NOT NULL DEFAULT 0,
                created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
            );`,
            `CREATE TABLE IF NOT EXISTS simplified_sentences (
                id INTEGER PRIMARY KEY AUTOINCREMENT,
                sentence_id INTEGER NOT NULL,
                user_id INTEGER NOT NULL,
                simplified_sentence TEXT NOT NULL,
                verified BOOLEAN NOT NULL DEFAULT 0,
                rejected BOOLEAN NOT NULL DEFAULT 0,
                created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
                updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
                FOREIGN KEY(sentence_id) REFERENCES sentences(id),
                FOREIGN KEY(user_id) REFERENCES users(id)
            );`,
            `CREATE INDEX IF NOT EXISTS idx_simplified_sentences_sentence_id ON simplified_sentences(sentence_id);`,
            `CREATE INDEX IF NOT EXISTS idx_simplified_sentences_user_id ON simplified_sentences(user_id);`,
        }
    }

    for _, s := range stmts {
        if _, err := sqldb.ExecContext(ctx, s); err != nil {
            return err
        }
    }
    return nil
}
