// Caminho: internal/services/auth/service.go
// Resumo: Serviço de autenticação: login por username/password, emissão e verificação de JWT.

package authsvc

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "golang.org/x/crypto/bcrypt"

    "github.com/lfcontato/simplifica_api/internal/db"
    "github.com/lfcontato/simplifica_api/internal/domain"
)

// Service agrega dependências necessárias para autenticação.
type Service struct {
    DB        *sql.DB
    SecretKey string
    TokenTTL  time.Duration
}

// New cria uma instância do serviço de autenticação.
func New(sqldb *sql.DB, secret string, tokenTTL time.Duration) *Service {
    return &Service{DB: sqldb, SecretKey: secret, TokenTTL: tokenTTL}
}

// Login autentica por username/password e emite um token de acesso.
// Retorna o usuário (sem hash na serialização), o token e o tempo de vida em segundos.
// Falhas de usuário inexistente e de senha errada produzem o mesmo erro, sem
// revelar qual campo estava incorreto.
func (s *Service) Login(ctx context.Context, username, password string) (domain.User, string, int, error) {
    var u domain.User
    q := db.Rebind(`SELECT id, name, username, password, admin, completed_sentences, completed_verifications, created FROM users WHERE username = ?`)
    row := s.DB.QueryRowContext(ctx, q, username)
    if err := row.Scan(&u.ID, &u.Name, &u.Username, &u.PasswordHash, &u.Admin, &u.CompletedSentences, &u.CompletedVerifications, &u.Created); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return domain.User{}, "", 0, domain.ErrInvalidCredentials
        }
        return domain.User{}, "", 0, fmt.Errorf("select user: %w", err)
    }
    if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
        return domain.User{}, "", 0, domain.ErrInvalidCredentials
    }

    token, err := s.signToken(u.ID)
    if err != nil {
        return domain.User{}, "", 0, fmt.Errorf("sign token: %w", err)
    }
    return u, token, int(s.TokenTTL / time.Second), nil
}

// VerifyToken valida assinatura e expiração de um token e extrai o id do usuário.
// Expiração é distinguida de token inválido para que o cliente saiba que basta
// autenticar de novo, em vez de tratar como credencial corrompida.
func (s *Service) VerifyToken(tokenString string) (int64, error) {
    tok, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, errors.New("unexpected signing method")
        }
        return []byte(s.SecretKey), nil
    })
    if err != nil {
        if errors.Is(err, jwt.ErrTokenExpired) {
            return 0, domain.ErrTokenExpired
        }
        return 0, domain.ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok || !tok.Valid {
        return 0, domain.ErrInvalidToken
    }
    id, err := subjectID(claims)
    if err != nil {
        return 0, domain.ErrInvalidToken
    }
    return id, nil
}

// signToken assina um JWT HS256 com o payload mínimo {id}.
func (s *Service) signToken(userID int64) (string, error) {
    now := time.Now()
    claims := jwt.MapClaims{
        "id":  userID,
        "iat": now.Unix(),
        "exp": now.Add(s.TokenTTL).Unix(),
    }
    token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return token.SignedString([]byte(s.SecretKey))
}

// subjectID extrai a claim "id", tolerando número ou string.
func subjectID(claims jwt.MapClaims) (int64, error) {
    switch v := claims["id"].(type) {
    case float64:
        return int64(v), nil
    case int64:
        return v, nil
    case string:
        return strconv.ParseInt(v, 10, 64)
    }
    return 0, errors.New("missing id claim")
}
