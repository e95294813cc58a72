// Caminho: internal/db/update.go
// Resumo: Atualização condicional (PATCH esparso) compartilhada por todas as entidades.
// Monta um único UPDATE parametrizado apenas com os campos sobreviventes ao filtro.

package db

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strings"
    "time"
)

// Erros do mecanismo de atualização condicional.
var (
    // ErrNothingToUpdate sinaliza que nenhum par (campo, valor) sobreviveu ao
    // filtro: não é um erro de execução e nenhum SQL é emitido.
    ErrNothingToUpdate = errors.New("nothing to update")
    // ErrFieldsValuesMismatch indica erro de programação no chamador: as
    // fatias de campos e valores devem ser paralelas após a filtragem.
    ErrFieldsValuesMismatch = errors.New("fields and values must be of equal length")
)

// validValue aceita string, números, bool e time.Time como valores de
// atualização. String vazia, zero e false são atualizações válidas; apenas
// nil significa "campo ausente".
func validValue(v any) bool {
    switch v.(type) {
    case string, int, int32, int64, float32, float64, bool, time.Time:
        return true
    }
    return false
}

// validIdent confere que o identificador veio de código (nunca de entrada do
// cliente) e tem forma de nome de coluna/tabela.
func validIdent(s string) bool {
    if s == "" {
        return false
    }
    for i := 0; i < len(s); i++ {
        c := s[i]
        switch {
        case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
        case c >= '0' && c <= '9':
            if i == 0 {
                return false
            }
        default:
            return false
        }
    }
    return true
}

// ConditionalUpdate aplica um PATCH esparso sobre a linha `id` de `table`.
// Campos vazios e valores nil são descartados em paralelo; se nada sobrar,
// retorna ErrNothingToUpdate sem tocar no banco. Todos os valores permanecem
// parametrizados; apenas identificadores vindos de código entram no texto SQL.
func ConditionalUpdate(ctx context.Context, sqldb *sql.DB, table string, id int64, fields []string, values []any) error {
    if !validIdent(table) {
        return fmt.Errorf("conditional update: invalid table %q", table)
    }

    filteredFields := make([]string, 0, len(fields))
    for _, f := range fields {
        if f != "" && validIdent(f) {
            filteredFields = append(filteredFields, f)
        }
    }

    filteredValues := make([]any, 0, len(values))
    for _, v := range values {
        if v != nil && validValue(v) {
            filteredValues = append(filteredValues, v)
        }
    }

    if len(filteredFields) == 0 {
        return ErrNothingToUpdate
    }
    if len(filteredFields) != len(filteredValues) {
        return ErrFieldsValuesMismatch
    }

    sets := make([]string, len(filteredFields))
    for i, f := range filteredFields {
        sets[i] = f + " = ?"
    }

    q := Rebind(fmt.Sprintf(`UPDATE %s SET %s WHERE id = ?`, table, strings.Join(sets, ", ")))
    args := append(filteredValues, id)

    res, err := sqldb.ExecContext(ctx, q, args...)
    if err != nil {
        return fmt.Errorf("conditional update %s: %w", table, err)
    }
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        return sql.ErrNoRows
    }
    return nil
}
