// Caminho: internal/kv/redis.go
// Resumo: Cliente Redis (go-redis/v9) com helpers simples para rate limit e lockout de login.

package kv

import (
    "context"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init inicializa o cliente usando REDIS_URL (URI) ou host/porta/senha separados.
// Quando nada está configurado, os helpers são permissivos (serviço segue sem rate limit).
func Init(redisURL, host string, port int, pass string, useTLS bool) error {
    if redisURL != "" {
        opt, err := redis.ParseURL(redisURL)
        if err != nil {
            return err
        }
        client = redis.NewClient(opt)
        return nil
    }
    if host == "" {
        return nil
    }
    addr := host
    if port > 0 {
        addr = host + ":" + strconv.Itoa(port)
    }
    // Para TLS, prefira configurar via REDIS_URL (rediss://).
    client = redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: 0})
    return nil
}

// Available informa se o cliente está configurado.
func Available() bool { return client != nil }

// AllowRate executa um rate limit simples (contagem por janela). Retorna true se permitido.
func AllowRate(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
    if client == nil {
        return true, 0, nil
    }
    pipe := client.Pipeline()
    incr := pipe.Incr(ctx, key)
    pipe.Expire(ctx, key, window)
    if _, err := pipe.Exec(ctx); err != nil {
        return true, 0, err
    }
    n := incr.Val()
    return n <= limit, n, nil
}

// SetLock define um lock com TTL.
func SetLock(ctx context.Context, key string, ttl time.Duration) error {
    if client == nil {
        return nil
    }
    return client.Set(ctx, key, "1", ttl).Err()
}

// IsLocked retorna true se existe um lock ativo.
func IsLocked(ctx context.Context, key string) (bool, error) {
    if client == nil {
        return false, nil
    }
    _, err := client.Get(ctx, key).Result()
    if err == redis.Nil {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    return true, nil
}

// Del remove chaves (melhor esforço).
func Del(ctx context.Context, keys ...string) {
    if client == nil {
        return
    }
    _ = client.Del(ctx, keys...).Err()
}
