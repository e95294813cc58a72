// Caminho: internal/services/sentences/service_test.go
// Resumo: Testes de sentenças e simplificações: CRUD, revisão e cascata de remoção.

package sentencessvc

import (
    "context"
    "database/sql"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
)

func testService(t *testing.T) *Service {
    t.Helper()
    pool, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
    require.NoError(t, err)
    t.Cleanup(func() { _ = pool.Close() })
    require.NoError(t, db.Migrate(context.Background(), pool))
    return New(pool)
}

func seedUserID(t *testing.T, pool *sql.DB) int64 {
    t.Helper()
    res, err := pool.Exec(`INSERT INTO users (name, username, password) VALUES (?,?,?)`, "Test User", "tester", "x")
    require.NoError(t, err)
    id, err := res.LastInsertId()
    require.NoError(t, err)
    return id
}

func TestCreateAndPatchSentence(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()

    created, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)
    assert.False(t, created.Simplified)

    text := "the rewritten sentence text"
    patched, err := svc.Patch(ctx, created.ID, &text)
    require.NoError(t, err)
    assert.Equal(t, text, patched.Sentence)
}

func TestPatchSentenceNilIsNotAnUpdate(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()

    created, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)

    _, err = svc.Patch(ctx, created.ID, nil)
    assert.ErrorIs(t, err, db.ErrNothingToUpdate)

    // a linha permanece intacta
    got, err := svc.ByID(ctx, created.ID)
    require.NoError(t, err)
    assert.Equal(t, "the original sentence text", got.Sentence)
}

func TestPatchSentenceMissing(t *testing.T) {
    svc := testService(t)
    text := "does not matter here"
    _, err := svc.Patch(context.Background(), 9999, &text)
    assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSentenceCascades(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    sentence, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)
    other, err := svc.Create(ctx, "another original sentence")
    require.NoError(t, err)

    _, err = svc.CreateSimplified(ctx, "a simplified version", sentence.ID, userID)
    require.NoError(t, err)
    kept, err := svc.CreateSimplified(ctx, "simplified for another", other.ID, userID)
    require.NoError(t, err)

    require.NoError(t, svc.Delete(ctx, sentence.ID))

    _, err = svc.ByID(ctx, sentence.ID)
    assert.ErrorIs(t, err, domain.ErrNotFound)

    // dependentes da sentença removida somem; as demais ficam
    var n int
    require.NoError(t, svc.DB.QueryRow(`SELECT COUNT(1) FROM simplified_sentences WHERE sentence_id = ?`, sentence.ID).Scan(&n))
    assert.Zero(t, n)
    _, err = svc.SimplifiedByID(ctx, kept.ID)
    assert.NoError(t, err)
}

func TestDeleteSentenceRollsBackWhenCascadeFails(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    sentence, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)
    ss, err := svc.CreateSimplified(ctx, "a simplified version", sentence.ID, userID)
    require.NoError(t, err)

    // força a falha do passo dependente da cascata
    _, err = svc.DB.Exec(`CREATE TRIGGER block_simplified_delete BEFORE DELETE ON simplified_sentences
        BEGIN SELECT RAISE(ABORT, 'delete blocked'); END;`)
    require.NoError(t, err)

    require.Error(t, svc.Delete(ctx, sentence.ID))

    // a transação inteira volta atrás: sentença e simplificação sobrevivem
    got, err := svc.ByID(ctx, sentence.ID)
    require.NoError(t, err)
    assert.Equal(t, sentence.Sentence, got.Sentence)
    _, err = svc.SimplifiedByID(ctx, ss.ID)
    assert.NoError(t, err)
}

func TestDeleteSentenceMissing(t *testing.T) {
    svc := testService(t)
    assert.ErrorIs(t, svc.Delete(context.Background(), 9999), domain.ErrNotFound)
}

func TestCreateSimplifiedRequiresSentence(t *testing.T) {
    svc := testService(t)
    userID := seedUserID(t, svc.DB)

    _, err := svc.CreateSimplified(context.Background(), "a simplified version", 9999, userID)
    assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewTransitions(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    sentence, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)
    ss, err := svc.CreateSimplified(ctx, "a simplified version", sentence.ID, userID)
    require.NoError(t, err)

    verified, err := svc.Review(ctx, ss.ID, ReviewVerify)
    require.NoError(t, err)
    assert.True(t, verified.Verified)
    assert.False(t, verified.Rejected)

    // verify marca a sentença original como resolvida na mesma transação
    got, err := svc.ByID(ctx, sentence.ID)
    require.NoError(t, err)
    assert.True(t, got.Simplified)

    rejected, err := svc.Review(ctx, ss.ID, ReviewReject)
    require.NoError(t, err)
    assert.False(t, rejected.Verified)
    assert.True(t, rejected.Rejected)

    pending, err := svc.Review(ctx, ss.ID, ReviewUndo)
    require.NoError(t, err)
    assert.False(t, pending.Verified)
    assert.False(t, pending.Rejected)
}

func TestReviewMissing(t *testing.T) {
    svc := testService(t)
    _, err := svc.Review(context.Background(), 9999, ReviewVerify)
    assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRandomSkipsSimplifiedSentences(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    done, err := svc.Create(ctx, "an already handled sentence")
    require.NoError(t, err)
    pendingSentence, err := svc.Create(ctx, "a sentence still pending work")
    require.NoError(t, err)

    ss, err := svc.CreateSimplified(ctx, "a simplified version", done.ID, userID)
    require.NoError(t, err)
    _, err = svc.Review(ctx, ss.ID, ReviewVerify)
    require.NoError(t, err)

    for i := 0; i < 5; i++ {
        got, err := svc.Random(ctx)
        require.NoError(t, err)
        assert.Equal(t, pendingSentence.ID, got.ID)
    }
}

func TestRandomUnreviewedSkipsReviewed(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    sentence, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)

    reviewed, err := svc.CreateSimplified(ctx, "the reviewed version", sentence.ID, userID)
    require.NoError(t, err)
    _, err = svc.Review(ctx, reviewed.ID, ReviewReject)
    require.NoError(t, err)

    pending, err := svc.CreateSimplified(ctx, "the pending version", sentence.ID, userID)
    require.NoError(t, err)

    for i := 0; i < 5; i++ {
        got, err := svc.RandomUnreviewed(ctx)
        require.NoError(t, err)
        assert.Equal(t, pending.ID, got.ID)
        assert.Equal(t, sentence.Sentence, got.OriginalSentence)
    }
}

func TestAllPairsFiltersByVerification(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    sentence, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)
    ss, err := svc.CreateSimplified(ctx, "a simplified version", sentence.ID, userID)
    require.NoError(t, err)
    _, err = svc.Review(ctx, ss.ID, ReviewVerify)
    require.NoError(t, err)

    verified, err := svc.AllPairs(ctx, true)
    require.NoError(t, err)
    require.Len(t, verified, 1)
    assert.Equal(t, sentence.Sentence, verified[0].Sentence)
    assert.Equal(t, "a simplified version", verified[0].SimplifiedSentence)

    unverified, err := svc.AllPairs(ctx, false)
    require.NoError(t, err)
    assert.Empty(t, unverified)
}

func TestListSimplifiedIncludesOriginal(t *testing.T) {
    svc := testService(t)
    ctx := context.Background()
    userID := seedUserID(t, svc.DB)

    sentence, err := svc.Create(ctx, "the original sentence text")
    require.NoError(t, err)
    _, err = svc.CreateSimplified(ctx, "a simplified version", sentence.ID, userID)
    require.NoError(t, err)

    list, err := svc.ListSimplified(ctx, 0, 10)
    require.NoError(t, err)
    require.Len(t, list, 1)
    assert.Equal(t, sentence.Sentence, list[0].OriginalSentence)
    assert.Equal(t, userID, list[0].UserID)
}
