// Caminho: internal/config/config.go
// Resumo: Carrega e expõe variáveis de configuração do sistema a partir de variáveis de ambiente.
// Centraliza as chaves usadas no serviço; valores obrigatórios são validados nos entrypoints.

package config

import (
    "errors"
    "os"
    "strconv"

    "github.com/lfcontato/simplifica_api/internal/contants"
)

// Config representa as configurações necessárias do serviço.
type Config struct {
    DeploymentEnv string
    LogLevel      string
    Port          int

    // Banco de dados (Postgres/SQLite)
    DatabaseURL string

    // JWT / Segurança
    SecretKey            string
    TokenLifetimeSeconds int
    BcryptCost           int

    // Redis (opcional, rate limit / lockout de login)
    RedisURL  string
    RedisHost string
    RedisPort int
    RedisPass string
    RedisTLS  bool

    LoginIPLimit            int
    LoginIPWindowMinutes    int
    LoginFailLockThreshold  int
    LoginFailLockTTLMinutes int

    // Seed do administrador raiz (aplicado no arranque quando definido)
    AdminName     string
    AdminUser     string
    AdminPassword string

    // Metadados
    ServiceName string
    Version     string
}

// getenv retorna o valor de uma variável de ambiente, ou o default se não definido.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getenvInt retorna uma variável de ambiente como inteiro, ou o default se ausente/inválido.
func getenvInt(key string, def int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil {
            return n
        }
    }
    return def
}

// getenvBool retorna uma variável de ambiente como bool, ou o default se ausente/inválido.
func getenvBool(key string, def bool) bool {
    if v := os.Getenv(key); v != "" {
        if b, err := strconv.ParseBool(v); err == nil {
            return b
        }
    }
    return def
}

// Load carrega as variáveis de configuração a partir do ambiente e devolve uma instância de Config.
func Load() *Config {
    return &Config{
        DeploymentEnv: getenv("DEPLOYMENT_ENVIRONMENT", "development"),
        LogLevel:      getenv("LOG_LEVEL", "INFO"),
        Port:          getenvInt("PORT", 3000),

        DatabaseURL: getenv("DATABASE_URL", ""),

        SecretKey:            getenv("JWT_SECRET", ""),
        TokenLifetimeSeconds: getenvInt("TOKEN_LIFETIME", contants.DefaultTokenLifetimeSeconds),
        BcryptCost:           getenvInt("BCRYPT_ROUNDS", contants.DefaultBcryptCost),

        RedisURL:  getenv("REDIS_URL", ""),
        RedisHost: getenv("REDIS_HOST", ""),
        RedisPort: getenvInt("REDIS_PORT", 0),
        RedisPass: getenv("REDIS_PASSWORD", ""),
        RedisTLS:  getenvBool("REDIS_USE_TLS", false),

        // Defaults: login IP 20/5min; lock após 5 falhas por 15min
        LoginIPLimit:            getenvInt("LOGIN_IP_LIMIT", 20),
        LoginIPWindowMinutes:    getenvInt("LOGIN_IP_WINDOW_MINUTES", 5),
        LoginFailLockThreshold:  getenvInt("LOGIN_FAIL_LOCK_THRESHOLD", 5),
        LoginFailLockTTLMinutes: getenvInt("LOGIN_FAIL_LOCK_TTL_MINUTES", 15),

        AdminName:     getenv("ADMIN_NAME", "admin"),
        AdminUser:     getenv("ADMIN_USER", ""),
        AdminPassword: getenv("ADMIN_PASSWORD", ""),

        ServiceName: getenv("SERVICE_NAME", "simplifica_api"),
        Version:     getenv("SERVICE_VERSION", "0.1.0"),
    }
}

// Validate confere os valores obrigatórios para subir o serviço.
// DATABASE_URL e JWT_SECRET são exigidos; o processo deve abortar sem eles.
func (c *Config) Validate() error {
    if c.DatabaseURL == "" {
        return errors.New("DATABASE_URL is required")
    }
    if c.SecretKey == "" {
        return errors.New("JWT_SECRET is required")
    }
    return nil
}
