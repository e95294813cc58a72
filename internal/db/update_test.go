// Caminho: internal/db/update_test.go
// Resumo: Testes da atualização condicional sobre um SQLite temporário.

package db

import (
    "context"
    "database/sql"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sql.DB {
    t.Helper()
    pool, err := Connect(filepath.Join(t.TempDir(), "test.db"))
    require.NoError(t, err)
    t.Cleanup(func() { _ = pool.Close() })
    require.NoError(t, Migrate(context.Background(), pool))
    return pool
}

func insertUser(t *testing.T, pool *sql.DB, name, username string) int64 {
    t.Helper()
    res, err := pool.Exec(`INSERT INTO users (name, username, password) VALUES (?,?,?)`, name, username, "x")
    require.NoError(t, err)
    id, err := res.LastInsertId()
    require.NoError(t, err)
    return id
}

func TestConditionalUpdateAppliesSurvivingFields(t *testing.T) {
    pool := testDB(t)
    id := insertUser(t, pool, "Jon", "jon")

    // nome ausente (nil), username presente: só username muda
    err := ConditionalUpdate(context.Background(), pool, "users", id,
        []string{"", "username"}, []any{nil, "jon2"})
    require.NoError(t, err)

    var name, username string
    require.NoError(t, pool.QueryRow(`SELECT name, username FROM users WHERE id = ?`, id).Scan(&name, &username))
    assert.Equal(t, "Jon", name)
    assert.Equal(t, "jon2", username)
}

func TestConditionalUpdateZeroValuesAreUpdates(t *testing.T) {
    pool := testDB(t)
    id := insertUser(t, pool, "Jon", "jon")
    _, err := pool.Exec(`UPDATE users SET admin = 1, completed_sentences = 7 WHERE id = ?`, id)
    require.NoError(t, err)

    // string vazia, false e zero são valores válidos; apenas nil é ausência
    err = ConditionalUpdate(context.Background(), pool, "users", id,
        []string{"name", "admin", "completed_sentences"}, []any{"", false, int64(0)})
    require.NoError(t, err)

    var name string
    var admin bool
    var completed int64
    require.NoError(t, pool.QueryRow(`SELECT name, admin, completed_sentences FROM users WHERE id = ?`, id).
        Scan(&name, &admin, &completed))
    assert.Equal(t, "", name)
    assert.False(t, admin)
    assert.Equal(t, int64(0), completed)
}

func TestConditionalUpdateNothingToUpdate(t *testing.T) {
    pool := testDB(t)
    id := insertUser(t, pool, "Jon", "jon")

    err := ConditionalUpdate(context.Background(), pool, "users", id,
        []string{"", ""}, []any{nil, nil})
    assert.ErrorIs(t, err, ErrNothingToUpdate)

    var name string
    require.NoError(t, pool.QueryRow(`SELECT name FROM users WHERE id = ?`, id).Scan(&name))
    assert.Equal(t, "Jon", name)
}

func TestConditionalUpdateFieldsValuesMismatch(t *testing.T) {
    pool := testDB(t)
    id := insertUser(t, pool, "Jon", "jon")

    // campo sobrevive à filtragem mas o valor pareado era nil
    err := ConditionalUpdate(context.Background(), pool, "users", id,
        []string{"name"}, []any{nil})
    assert.ErrorIs(t, err, ErrFieldsValuesMismatch)
}

func TestConditionalUpdateMissingRow(t *testing.T) {
    pool := testDB(t)

    err := ConditionalUpdate(context.Background(), pool, "users", 9999,
        []string{"name"}, []any{"ghost"})
    assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestConditionalUpdateAcceptsTimeValues(t *testing.T) {
    pool := testDB(t)
    _, err := pool.Exec(`INSERT INTO sentences (sentence) VALUES (?)`, "original text goes here")
    require.NoError(t, err)

    when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
    err = ConditionalUpdate(context.Background(), pool, "sentences", 1,
        []string{"sentence", "updated"}, []any{"patched text goes here", when})
    require.NoError(t, err)

    var text string
    require.NoError(t, pool.QueryRow(`SELECT sentence FROM sentences WHERE id = 1`).Scan(&text))
    assert.Equal(t, "patched text goes here", text)
}

func TestValidIdent(t *testing.T) {
    cases := []struct {
        in string
        ok bool
    }{
        {"users", true},
        {"completed_sentences", true},
        {"Sentence2", true},
        {"", false},
        {"2fast", false},
        {"name; DROP TABLE users", false},
        {"na me", false},
    }
    for _, c := range cases {
        assert.Equal(t, c.ok, validIdent(c.in), "ident %q", c.in)
    }
}
