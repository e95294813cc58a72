// Caminho: internal/services/users/service.go
// Resumo: Acesso à entidade de usuários: listagens ordenadas, lookups, criação com bcrypt,
// remoção e contadores de contribuição via atualização condicional.

package userssvc

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"

    "golang.org/x/crypto/bcrypt"

    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
)

// Service agrega dependências para operações sobre usuários.
type Service struct {
    DB         *sql.DB
    BcryptCost int
}

// New cria uma instância do serviço de usuários.
func New(sqldb *sql.DB, bcryptCost int) *Service {
    return &Service{DB: sqldb, BcryptCost: bcryptCost}
}

const userColumns = `id, name, username, admin, completed_sentences, completed_verifications, created`

// orderClause mapeia o parâmetro ?order= para um ORDER BY fixo.
// Valores desconhecidos caem na ordenação padrão por id.
func orderClause(order string) string {
    switch strings.ToLower(strings.TrimSpace(order)) {
    case "sentences":
        return `ORDER BY completed_sentences DESC`
    case "verifications":
        return `ORDER BY completed_verifications DESC`
    case "leaderboard":
        // Classifica pelo menor dos dois contadores: premia quem contribui nos dois eixos.
        return `ORDER BY CASE
            WHEN completed_sentences < completed_verifications THEN completed_sentences
            ELSE completed_verifications
        END DESC`
    default:
        return `ORDER BY id ASC`
    }
}

// List retorna uma página de usuários, sem hash de senha, na ordenação pedida.
func (s *Service) List(ctx context.Context, order string, offset, limit int) ([]domain.User, error) {
    // LIMIT ? OFFSET ? é a forma aceita tanto pelo SQLite quanto pelo Postgres.
    q := db.Rebind(fmt.Sprintf(`SELECT %s FROM users %s LIMIT ? OFFSET ?`, userColumns, orderClause(order)))
    rows, err := s.DB.QueryContext(ctx, q, limit, offset)
    if err != nil {
        return nil, fmt.Errorf("list users: %w", err)
    }
    defer rows.Close()

    users := []domain.User{}
    for rows.Next() {
        var u domain.User
        if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Admin, &u.CompletedSentences, &u.CompletedVerifications, &u.Created); err != nil {
            return nil, fmt.Errorf("scan user: %w", err)
        }
        users = append(users, u)
    }
    if err := rows.Err(); err != nil {
        return nil, fmt.Errorf("list users: %w", err)
    }
    return users, nil
}

// ByID busca um usuário pelo id. Retorna domain.ErrNotFound quando não existe.
func (s *Service) ByID(ctx context.Context, id int64) (domain.User, error) {
    var u domain.User
    q := db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
    row := s.DB.QueryRowContext(ctx, q, id)
    if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Admin, &u.CompletedSentences, &u.CompletedVerifications, &u.Created); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.User{}, domain.ErrNotFound
        }
        return domain.User{}, fmt.Errorf("select user by id: %w", err)
    }
    return u, nil
}

// UsernameExists confere se um username já está registrado.
func (s *Service) UsernameExists(ctx context.Context, username string) (bool, error) {
    var n int
    q := db.Rebind(`SELECT COUNT(1) FROM users WHERE username = ?`)
    if err := s.DB.QueryRowContext(ctx, q, username).Scan(&n); err != nil {
        return false, fmt.Errorf("check username: %w", err)
    }
    return n > 0, nil
}

// Create registra um usuário novo com a senha hasheada via bcrypt.
// Username duplicado resulta em domain.ErrUsernameTaken.
func (s *Service) Create(ctx context.Context, name, username, password string) (domain.User, error) {
    exists, err := s.UsernameExists(ctx, username)
    if err != nil {
        return domain.User{}, err
    }
    if exists {
        return domain.User{}, domain.ErrUsernameTaken
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
    if err != nil {
        return domain.User{}, fmt.Errorf("hash password: %w", err)
    }

    var id int64
    if db.IsPostgres() {
        q := db.Rebind(`INSERT INTO users (name, username, password) VALUES (?,?,?) RETURNING id`)
        if err := s.DB.QueryRowContext(ctx, q, name, username, string(hash)).Scan(&id); err != nil {
            return domain.User{}, s.classifyInsertError(ctx, username, err)
        }
    } else {
        res, err := s.DB.ExecContext(ctx, db.Rebind(`INSERT INTO users (name, username, password) VALUES (?,?,?)`), name, username, string(hash))
        if err != nil {
            return domain.User{}, s.classifyInsertError(ctx, username, err)
        }
        id, _ = res.LastInsertId()
    }

    return s.ByID(ctx, id)
}

// classifyInsertError separa a corrida perdida no índice único (o username
// passou a existir entre a checagem e o insert) de falhas reais de
// persistência, que sobem intactas em vez de virarem um falso conflito.
func (s *Service) classifyInsertError(ctx context.Context, username string, insertErr error) error {
    if exists, err := s.UsernameExists(ctx, username); err == nil && exists {
        return domain.ErrUsernameTaken
    }
    return fmt.Errorf("insert user: %w", insertErr)
}

// EnsureAdmin garante a existência do administrador raiz no arranque.
// Se o username já existe, promove a conta a admin; senão cria já com a flag.
func (s *Service) EnsureAdmin(ctx context.Context, name, username, password string) error {
    exists, err := s.UsernameExists(ctx, username)
    if err != nil {
        return err
    }
    if exists {
        q := db.Rebind(`UPDATE users SET admin = TRUE WHERE username = ?`)
        if _, err := s.DB.ExecContext(ctx, q, username); err != nil {
            return fmt.Errorf("promote admin: %w", err)
        }
        return nil
    }

    hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
    if err != nil {
        return fmt.Errorf("hash password: %w", err)
    }
    q := db.Rebind(`INSERT INTO users (name, username, password, admin) VALUES (?,?,?,TRUE)`)
    if _, err := s.DB.ExecContext(ctx, q, name, username, string(hash)); err != nil {
        return fmt.Errorf("seed admin: %w", err)
    }
    return nil
}

// Delete remove o usuário e as simplificações enviadas por ele na mesma
// transação; nada pode ficar apontando para um usuário inexistente.
// Retorna domain.ErrNotFound quando o id não existe.
func (s *Service) Delete(ctx context.Context, id int64) error {
    tx, err := s.DB.BeginTx(ctx, nil)
    if err != nil {
        return fmt.Errorf("begin delete user: %w", err)
    }
    defer func() { _ = tx.Rollback() }()

    if _, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM simplified_sentences WHERE user_id = ?`), id); err != nil {
        return fmt.Errorf("delete user simplified sentences: %w", err)
    }
    res, err := tx.ExecContext(ctx, db.Rebind(`DELETE FROM users WHERE id = ?`), id)
    if err != nil {
        return fmt.Errorf("delete user: %w", err)
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return domain.ErrNotFound
    }
    return tx.Commit()
}

// RecordContribution incrementa os contadores pedidos do usuário através da
// atualização condicional e devolve a linha atualizada.
func (s *Service) RecordContribution(ctx context.Context, id int64, sentences, verifications bool) (domain.User, error) {
    u, err := s.ByID(ctx, id)
    if err != nil {
        return domain.User{}, err
    }

    fields := []string{"", ""}
    values := []any{nil, nil}
    if sentences {
        fields[0] = "completed_sentences"
        values[0] = u.CompletedSentences + 1
    }
    if verifications {
        fields[1] = "completed_verifications"
        values[1] = u.CompletedVerifications + 1
    }

    if err := db.ConditionalUpdate(ctx, s.DB, "users", u.ID, fields, values); err != nil {
        return domain.User{}, err
    }
    return s.ByID(ctx, id)
}
