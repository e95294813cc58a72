// Caminho: internal/services/auth/service_test.go
// Resumo: Testes de login e do ciclo de vida dos tokens.

package authsvc

import (
    "context"
    "database/sql"
    "path/filepath"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"

    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
)

func testDB(t *testing.T) *sql.DB {
    t.Helper()
    pool, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
    require.NoError(t, err)
    t.Cleanup(func() { _ = pool.Close() })
    require.NoError(t, db.Migrate(context.Background(), pool))
    return pool
}

func seedUser(t *testing.T, pool *sql.DB, username, password string) {
    t.Helper()
    hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
    require.NoError(t, err)
    _, err = pool.Exec(`INSERT INTO users (name, username, password) VALUES (?,?,?)`, "Test User", username, string(hash))
    require.NoError(t, err)
}

func TestLoginSuccess(t *testing.T) {
    pool := testDB(t)
    seedUser(t, pool, "jon", "secret123")
    svc := New(pool, "test-secret", time.Hour)

    user, token, expiresIn, err := svc.Login(context.Background(), "jon", "secret123")
    require.NoError(t, err)
    assert.Equal(t, "jon", user.Username)
    assert.NotEmpty(t, token)
    assert.Equal(t, 3600, expiresIn)

    id, err := svc.VerifyToken(token)
    require.NoError(t, err)
    assert.Equal(t, user.ID, id)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
    pool := testDB(t)
    seedUser(t, pool, "jon", "secret123")
    svc := New(pool, "test-secret", time.Hour)

    _, _, _, errWrongPass := svc.Login(context.Background(), "jon", "wrong")
    _, _, _, errNoUser := svc.Login(context.Background(), "ghost", "secret123")

    assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
    assert.ErrorIs(t, errNoUser, domain.ErrInvalidCredentials)
    assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
}

func TestVerifyTokenExpired(t *testing.T) {
    pool := testDB(t)
    svc := New(pool, "test-secret", -time.Hour)

    token, err := svc.signToken(42)
    require.NoError(t, err)

    _, err = svc.VerifyToken(token)
    assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerifyTokenInvalid(t *testing.T) {
    pool := testDB(t)
    svc := New(pool, "test-secret", time.Hour)

    _, err := svc.VerifyToken("not-a-token")
    assert.ErrorIs(t, err, domain.ErrInvalidToken)

    other := New(pool, "other-secret", time.Hour)
    forged, err := other.signToken(42)
    require.NoError(t, err)
    _, err = svc.VerifyToken(forged)
    assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
