// Caminho: internal/db/rebind.go
// Resumo: Conversão de placeholders '?' para o formato do driver ativo ($n no Postgres).

package db

import "strings"

var currentDriver Driver = DriverSQLite

// setCurrentDriver é chamado por Connect para registrar o driver em uso.
func setCurrentDriver(d Driver) { currentDriver = d }

// IsPostgres informa se o driver ativo é Postgres.
func IsPostgres() bool { return currentDriver == DriverPostgres }

// Rebind converte placeholders '?' para o formato do driver ativo.
// No Postgres (pgx) reescreve para $1, $2, ...; no SQLite devolve inalterado.
func Rebind(query string) string {
    if !IsPostgres() {
        return query
    }
    var b strings.Builder
    b.Grow(len(query) + 8)
    n := 0
    for i := 0; i < len(query); i++ {
        c := query[i]
        if c == '?' {
            n++
            b.WriteByte('$')
            b.WriteString(intToString(n))
        } else {
            b.WriteByte(c)
        }
    }
    return b.String()
}

func intToString(n int) string {
    // itoa pequeno e rápido para n>0
    if n == 0 {
        return "0"
    }
    var buf [16]byte
    i := len(buf)
    for n > 0 {
        i--
        buf[i] = byte('0' + n%10)
        n /= 10
    }
    return string(buf[i:])
}
