// Caminho: internal/domain/models.go
// Resumo: Modelos de domínio e erros centrais do sistema (User, Sentence, SimplifiedSentence).

package domain

import (
    "errors"
    "time"
)

// User representa um usuário registrado do serviço.
// PasswordHash nunca é serializado em respostas.
type User struct {
    ID                     int64     `json:"id"`
    Name                   string    `json:"name"`
    Username               string    `json:"username"`
    PasswordHash           string    `json:"-"`
    Admin                  bool      `json:"admin"`
    CompletedSentences     int64     `json:"completedSentences"`
    CompletedVerifications int64     `json:"completedVerifications"`
    Created                time.Time `json:"created"`
}

// Sentence representa uma sentença original, ainda não simplificada ou já simplificada.
type Sentence struct {
    ID         int64     `json:"id"`
    Sentence   string    `json:"sentence"`
    Simplified bool      `json:"simplified"`
    Created    time.Time `json:"created"`
    Updated    time.Time `json:"updated"`
}

// SimplifiedSentence representa uma reescrita enviada por um usuário,
// sujeita a verificação ou rejeição por um administrador.
// OriginalSentence é preenchido apenas nas listagens com join.
type SimplifiedSentence struct {
    ID                 int64     `json:"id"`
    SentenceID         int64     `json:"sentenceId"`
    UserID             int64     `json:"userId"`
    SimplifiedSentence string    `json:"simplifiedSentence"`
    OriginalSentence   string    `json:"originalSentence,omitempty"`
    Verified           bool      `json:"verified"`
    Rejected           bool      `json:"rejected"`
    Created            time.Time `json:"created"`
    Updated            time.Time `json:"updated"`
}

// SentencePair é o par (original, simplificada) exposto em /sentences/simplified/all.
type SentencePair struct {
    Sentence           string `json:"sentence"`
    SimplifiedSentence string `json:"simplifiedSentence"`
}

// Erros comuns de domínio.
var (
    ErrInvalidCredentials = errors.New("invalid user/password")
    ErrInvalidToken       = errors.New("invalid token")
    ErrTokenExpired       = errors.New("expired token")
    ErrNotFound           = errors.New("not found")
    ErrUsernameTaken      = errors.New("username already registered")
)
