package auth

import "time"

// TokenIssuer signs a token asserting subject.
type TokenIssuer interface {
	Issue(subject string, ttl ...time.Duration) (string, error)
}

// TokenParser verifies a token and returns its subject.
type TokenParser interface {
	Parse(token string) (string, error)
}

// TokenCodec both issues and parses tokens; *jwt.Codec implements it.
type TokenCodec interface {
	TokenIssuer
	TokenParser
}

// TokenType is the label returned alongside issued tokens.
const TokenType = "bearer"

// Principal is a registered user.
type Principal struct {
	Username string `json:"username"`
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
