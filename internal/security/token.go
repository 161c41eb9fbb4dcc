package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"atelier-backend/internal/domain"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// UserClaims carries the caller's identity and resolved scope: branch binding
// plus department capabilities. The core never inspects tokens; the HTTP
// boundary turns claims into a domain.CallerScope.
type UserClaims struct {
	UserID      string   `json:"user_id"`
	Email       string   `json:"email,omitempty"`
	BranchID    *int32   `json:"branch_id,omitempty"`
	Departments []string `json:"departments,omitempty"`
	jwt.RegisteredClaims
}

// Scope resolves the claims into the explicit caller scope passed to core
// operations.
func (c *UserClaims) Scope() domain.CallerScope {
	depts := make(domain.DepartmentSet, len(c.Departments))
	for _, d := range c.Departments {
		depts[domain.Department(d)] = true
	}
	return domain.CallerScope{
		UserID:      c.UserID,
		BranchID:    c.BranchID,
		Departments: depts,
	}
}

type TokenManager interface {
	Generate(user *domain.User, ttl time.Duration) (string, error)
	Validate(tokenString string) (*UserClaims, error)
}

type tokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) TokenManager {
	return &tokenManager{secret: []byte(secret)}
}

func (m *tokenManager) Generate(user *domain.User, ttl time.Duration) (string, error) {
	depts := user.Departments().Slice()
	names := make([]string, len(depts))
	for i, d := range depts {
		names[i] = string(d)
	}
	claims := UserClaims{
		UserID:      user.ID,
		Email:       user.Email,
		BranchID:    user.BranchID,
		Departments: names,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) Validate(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
