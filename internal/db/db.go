// Caminho: internal/db/db.go
// Resumo: Conexão com o banco de dados a partir de DATABASE_URL, com pool limitado.
// Suporta Postgres (pgx) e SQLite (modernc, Go puro) atrás de database/sql.

package db

import (
    "database/sql"
    "fmt"
    "time"

    _ "github.com/jackc/pgx/v5/stdlib" // registra driver pgx
    _ "modernc.org/sqlite"             // registra driver sqlite puro Go
)

// Connect estabelece a conexão com o banco de dados a partir de DATABASE_URL.
// O pool é limitado: cada operação lógica toma uma conexão e a devolve sempre,
// inclusive em caminhos de erro.
func Connect(databaseURL string) (*sql.DB, error) {
    driver, dsn := ParseDSN(databaseURL)
    sqldb, err := sql.Open(string(driver), dsn)
    if err != nil {
        return nil, fmt.Errorf("open db: %w", err)
    }
    if driver == DriverSQLite {
        // SQLite não tolera escritores concorrentes; serializa no pool.
        sqldb.SetMaxOpenConns(1)
    } else {
        sqldb.SetMaxOpenConns(10)
        sqldb.SetMaxIdleConns(2)
        sqldb.SetConnMaxIdleTime(5 * time.Minute)
    }
    if err := sqldb.Ping(); err != nil {
        _ = sqldb.Close()
        return nil, fmt.Errorf("ping db: %w", err)
    }
    setCurrentDriver(driver)
    return sqldb, nil
}
