package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/d60-Lab/gin-blog/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims 令牌携带的身份信息，Subject 为用户 ID
type Claims struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// UserID 调用方身份
func (c *Claims) UserID() string { return c.Subject }

// TokenIssuer 签发与校验有时效的身份令牌
type TokenIssuer interface {
	Issue(user *model.User) (string, error)
	Parse(token string) (*Claims, error)
}

type jwtIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration) TokenIssuer {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &jwtIssuer{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (j *jwtIssuer) Issue(user *model.User) (string, error) {
	now := j.now()
	claims := Claims{
		Name:     user.Name,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (j *jwtIssuer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return j.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
