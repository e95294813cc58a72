// Caminho: internal/contants/contants.go
// Resumo: Constantes globais do sistema.

package contants

// Limites de validação para cadastro de usuários.
const (
    MinNameLength     = 2
    MaxNameLength     = 64
    MinUsernameLength = 2
    MaxUsernameLength = 64
    MinPasswordLength = 3
    MaxPasswordLength = 256
)

// Comprimento mínimo de uma sentença (original ou simplificada).
const MinSentenceLength = 15

// Paginação padrão das listagens.
const (
    DefaultPageLimit = 10
    MaxPageLimit     = 100
)

// Custo padrão do bcrypt quando BCRYPT_ROUNDS não está definido.
const DefaultBcryptCost = 11

// Tempo de vida padrão do token de acesso, em segundos.
const DefaultTokenLifetimeSeconds = 3600
