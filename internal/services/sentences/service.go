// Caminho: internal/services/sentences/service.go
// Resumo: Acesso às entidades de sentenças e sentenças simplificadas: listagens, sorteios,
// criação, atualização parcial, revisão (verify/reject/undo) e remoção com cascata transacional.

package sentencessvc

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
)

// ReviewAction é uma transição de revisão aplicada por administradores.
type ReviewAction string

const (
    ReviewVerify ReviewAction = "verify"
    ReviewReject ReviewAction = "reject"
    ReviewUndo   ReviewAction = "undo"
)

// ValidReviewAction confere se o valor vindo da URL é uma transição conhecida.
func ValidReviewAction(a string) bool {
    switch ReviewAction(a) {
    case ReviewVerify, ReviewReject, ReviewUndo:
        return true
    }
    return false
}

// Service agrega dependências para operações sobre sentenças.
type Service struct {
    DB *sql.DB
}

// New cria uma instância do serviço de sentenças.
func New(sqldb *sql.DB) *Service {
    return &Service{DB: sqldb}
}

// List retorna uma página de sentenças.
func (s *Service) List(ctx context.Context, offset, limit int) ([]domain.Sentence, error) {
    // LIMIT ? OFFSET ? é a forma aceita tanto pelo SQLite quanto pelo Postgres.
    q := db.Rebind(`SELECT id, sentence, simplified, created, updated FROM sentences ORDER BY id ASC LIMIT ? OFFSET ?`)
    rows, err := s.DB.QueryContext(ctx, q, limit, offset)
    if err != nil {
        return nil, fmt.Errorf("list sentences: %w", err)
    }
    defer rows.Close()

    sentences := []domain.Sentence{}
    for rows.Next() {
        var st domain.Sentence
        if err := rows.Scan(&st.ID, &st.Sentence, &st.Simplified, &st.Created, &st.Updated); err != nil {
            return nil, fmt.Errorf("scan sentence: %w", err)
        }
        sentences = append(sentences, st)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("list sentences: %w", err)
    }
    return sentences, nil
}

// ByID busca uma sentença pelo id. Retorna domain.ErrNotFound quando não existe.
func (s *Service) ByID(ctx context.Context, id int64) (domain.Sentence, error) {
    var st domain.Sentence
    q := db.Rebind(`SELECT id, sentence, simplified, created, updated FROM sentences WHERE id = ?`)
    row := s.DB.QueryRowContext(ctx, q, id)
    if err := row.Scan(&st.ID, &st.Sentence, &st.Simplified, &st.Created, &st.Updated); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.Sentence{}, domain.ErrNotFound
        }
        return domain.Sentence{}, fmt.Errorf("select sentence: %w", err)
    }
    return st, nil
}

// Random sorteia uma sentença ainda não simplificada.
func (s *Service) Random(ctx context.Context) (domain.Sentence, error) {
    q := `SELECT id, sentence, simplified, created, updated FROM sentences WHERE simplified = FALSE ORDER BY RANDOM() LIMIT 1`
    row := s.DB.QueryRowContext(ctx, q)
    var st domain.Sentence
    if err := row.Scan(&st.ID, &st.Sentence, &st.Simplified, &st.Created, &st.Updated); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.Sentence{}, domain.ErrNotFound
        }
        return domain.Sentence{}, fmt.Errorf("random sentence: %w", err)
    }
    return st, nil
}

// Create insere uma sentença nova.
func (s *Service) Create(ctx context.Context, sentence string) (domain.Sentence, error) {
    var id int64
    if db.IsPostgres() {
        q := db.Rebind(`INSERT INTO sentences (sentence) VALUES (?) RETURNING id`)
        if err := s.DB.QueryRowContext(ctx, q, sentence).Scan(&id); err != nil {
            return domain.Sentence{}, fmt.Errorf("insert sentence: %w", err)
        }
    } else {
        res, err := s.DB.ExecContext(ctx, db.Rebind(`INSERT INTO sentences (sentence) VALUES (?)`), sentence)
        if err != nil {
            return domain.Sentence{}, fmt.Errorf("insert sentence: %w", err)
        }
        id, _ = res.LastInsertId()
    }
    return s.ByID(ctx, id)
}

// Patch aplica uma atualização parcial sobre a sentença via atualização
// condicional e devolve a linha atualizada. Texto nil significa "sem mudança".
func (s *Service) Patch(ctx context.Context, id int64, sentence *string) (domain.Sentence, error) {
    fields := []string{"", ""}
    values := []any{nil, nil}
    if sentence != nil {
        fields[0] = "sentence"
        values[0] = *sentence
        fields[1] = "updated"
        values[1] = time.Now().UTC()
    }
    if err := db.ConditionalUpdate(ctx, s.DB, "sentences", id, fields, values); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.Sentence{}, domain.ErrNotFound
        }
        return domain.Sentence{}, err
    }
    return s.ByID(ctx, id)
}

// Delete remove a sentença e as simplificações dependentes na mesma transação.
// Qualquer falha desfaz a transação inteira; a sentença nunca fica órfã de cascata.
func (s *Service) Delete(ctx context.Context, id int64) error {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin delete sentence: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM simplified_sentences WHERE sentence_id = ?`), id); err != nil {
        return fmt.Errorf("delete dependent simplified sentences: %w", err)
    }
    res, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM sentences WHERE id = ?`), id)
    if err != nil {
        return fmt.Errorf("delete sentence: %w", err)
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return domain.ErrNotFound
    }
    return tx.Commit()
}

const simplifiedColumns = `s.id, s.sentence_id, s.user_id, s.simplified_sentence, o.sentence, s.verified, s.rejected, s.created, s.updated`

// ListSimplified retorna uma página de sentenças simplificadas com o texto original anexado.
func (s *Service) ListSimplified(ctx context.Context, offset, limit int) ([]domain.SimplifiedSentence, error) {
    q := db.Rebind(`SELECT ` + simplifiedColumns + `
        FROM simplified_sentences s
        JOIN sentences o ON o.id = s.sentence_id
        ORDER BY s.id ASC LIMIT ? OFFSET ?`)
    rows, err := s.DB.QueryContext(ctx, q, limit, offset)
    if err != nil {
        return nil, fmt.Errorf("list simplified sentences: %w", err)
    }
    defer rows.Close()

    list := []domain.SimplifiedSentence{}
    for rows.Next() {
        var ss domain.SimplifiedSentence
        if err := rows.Scan(&ss.ID, &ss.SentenceID, &ss.UserID, &ss.SimplifiedSentence, &ss.OriginalSentence, &ss.Verified, &ss.Rejected, &ss.Created, &ss.Updated); err != nil {
            return nil, fmt.Errorf("scan simplified sentence: %w", err)
        }
        list = append(list, ss)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("list simplified sentences: %w", err)
    }
    return list, nil
}

// AllPairs retorna todos os pares (original, simplificada) com o status de verificação pedido.
func (s *Service) AllPairs(ctx context.Context, verified bool) ([]domain.SentencePair, error) {
    q := db.Rebind(`SELECT o.sentence, s.simplified_sentence
        FROM simplified_sentences s
        JOIN sentences o ON o.id = s.sentence_id
        WHERE o.simplified = TRUE AND s.verified = ?`)
    rows, err := s.DB.QueryContext(ctx, q, verified)
    if err != nil {
        return nil, fmt.Errorf("list sentence pairs: %w", err)
    }
    defer rows.Close()

    pairs := []domain.SentencePair{}
    for rows.Next() {
        var p domain.SentencePair
        if err := rows.Scan(&p.Sentence, &p.SimplifiedSentence); err != nil {
            return nil, fmt.Errorf("scan sentence pair: %w", err)
        }
        pairs = append(pairs, p)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("list sentence pairs: %w", err)
    }
    return pairs, nil
}

// SimplifiedByID busca uma sentença simplificada pelo id.
func (s *Service) SimplifiedByID(ctx context.Context, id int64) (domain.SimplifiedSentence, error) {
    var ss domain.SimplifiedSentence
    q := db.Rebind(`SELECT id, sentence_id, user_id, simplified_sentence, verified, rejected, created, updated
        FROM simplified_sentences WHERE id = ?`)
    row := s.DB.QueryRowContext(ctx, q, id)
    if err := row.Scan(&ss.ID, &ss.SentenceID, &ss.UserID, &ss.SimplifiedSentence, &ss.Verified, &ss.Rejected, &ss.Created, &ss.Updated); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.SimplifiedSentence{}, domain.ErrNotFound
        }
        return domain.SimplifiedSentence{}, fmt.Errorf("select simplified sentence: %w", err)
    }
    return ss, nil
}

// CreateSimplified insere a reescrita de um usuário para uma sentença existente.
// Sentença inexistente resulta em domain.ErrNotFound.
func (s *Service) CreateSimplified(ctx context.Context, simplified string, sentenceID, userID int64) (domain.SimplifiedSentence, error) {
    if _, err := s.ByID(ctx, sentenceID); err != nil {
        return domain.SimplifiedSentence{}, err
    }

    var id int64
    if db.IsPostgres() {
        q := db.Rebind(`INSERT INTO simplified_sentences (simplified_sentence, sentence_id, user_id) VALUES (?,?,?) RETURNING id`)
        if err := s.DB.QueryRowContext(ctx, q, simplified, sentenceID, userID).Scan(&id); err != nil {
            return domain.SimplifiedSentence{}, fmt.Errorf("insert simplified sentence: %w", err)
        }
    } else {
        res, err := s.DB.ExecContext(ctx, db.Rebind(`INSERT INTO simplified_sentences (simplified_sentence, sentence_id, user_id) VALUES (?,?,?)`), simplified, sentenceID, userID)
        if err != nil {
            return domain.SimplifiedSentence{}, fmt.Errorf("insert simplified sentence: %w", err)
        }
        id, _ = res.LastInsertId()
    }
    return s.SimplifiedByID(ctx, id)
}

// RandomUnreviewed sorteia uma simplificação pendente (nem verificada nem
// rejeitada) junto com o texto original, para o fluxo de verificação.
func (s *Service) RandomUnreviewed(ctx context.Context) (domain.SimplifiedSentence, error) {
    q := `SELECT ` + simplifiedColumns + `
        FROM simplified_sentences s
        JOIN sentences o ON o.id = s.sentence_id
        WHERE s.verified = FALSE AND s.rejected = FALSE
        ORDER BY RANDOM() LIMIT 1`
    row := s.DB.QueryRowContext(ctx, q)
    var ss domain.SimplifiedSentence
    if err := row.Scan(&ss.ID, &ss.SentenceID, &ss.UserID, &ss.SimplifiedSentence, &ss.OriginalSentence, &ss.Verified, &ss.Rejected, &ss.Created, &ss.Updated); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.SimplifiedSentence{}, domain.ErrNotFound
        }
        return domain.SimplifiedSentence{}, fmt.Errorf("random simplified sentence: %w", err)
    }
    return ss, nil
}

// Review aplica uma transição de revisão sobre a simplificação:
// verify marca verified e limpa rejected, e na mesma transação marca a
// sentença original como simplificada; reject marca rejected e limpa
// verified; undo limpa ambos (volta ao estado pendente).
func (s *Service) Review(ctx context.Context, id int64, action ReviewAction) (domain.SimplifiedSentence, error) {
    ss, err := s.SimplifiedByID(ctx, id)
    if err != nil {
        return domain.SimplifiedSentence{}, err
    }

    var verified, rejected bool
    switch action {
    case ReviewVerify:
        verified, rejected = true, false
    case ReviewReject:
        verified, rejected = false, true
    case ReviewUndo:
        verified, rejected = false, false
    default:
        return domain.SimplifiedSentence{}, fmt.Errorf("unknown review action %q", action)
    }

    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return domain.SimplifiedSentence{}, fmt.Errorf("begin review: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    now := time.Now().UTC()
    if _, err := tx.ExecContext(ctx, db.Rebind(`UPDATE simplified_sentences SET verified = ?, rejected = ?, updated = ? WHERE id = ?`), verified, rejected, now, ss.ID); err != nil {
        return domain.SimplifiedSentence{}, fmt.Errorf("update review flags: %w", err)
    }
    if action == ReviewVerify {
        if _, err := tx.ExecContext(ctx, db.Rebind(`UPDATE sentences SET simplified = TRUE, updated = ? WHERE id = ?`), now, ss.SentenceID); err != nil {
            return domain.SimplifiedSentence{}, fmt.Errorf("mark sentence simplified: %w", err)
        }
    }
    if err := tx.Commit(); err != nil {
        return domain.SimplifiedSentence{}, fmt.Errorf("commit review: %w", err)
    }

    return s.SimplifiedByID(ctx, id)
}

// DeleteSimplified remove uma sentença simplificada.
func (s *Service) DeleteSimplified(ctx context.Context, id int64) error {
    res, err := s.DB.ExecContext(ctx, db.Rebind(`DELETE FROM simplified_sentences WHERE id = ?`), id)
    if err != nil {
        return fmt.Errorf("delete simplified sentence: %w", err)
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return domain.ErrNotFound
    }
    return nil
}
