package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "cfc-deblocages/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Usecase struct {
	repo      domain.Repository
	secretKey []byte
	tokenTTL  time.Duration
}

func NewUsecase(repo domain.Repository, secretKey string, tokenTTL time.Duration) *Usecase {
	return &Usecase{repo: repo, secretKey: []byte(secretKey), tokenTTL: tokenTTL}
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginDTO struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	User        UserDTO `json:"user"`
}

type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login verifies credentials (username or email) and issues an HS256
// access token whose subject is the numeric user id.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginDTO, error) {
	usr, err := u.repo.GetByLogin(ctx, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !usr.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(usr.HashedPassword), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   fmt.Sprint(usr.ID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secretKey)
	if err != nil {
		return nil, err
	}

	return &LoginDTO{
		AccessToken: token,
		TokenType:   "bearer",
		User: UserDTO{
			ID:       usr.ID,
			Username: usr.Username,
			Email:    usr.Email,
			FullName: usr.FullName,
			Role:     string(usr.Role),
		},
	}, nil
}

// VerifyToken validates an access token and returns its subject (user id).
func (u *Usecase) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return u.secretKey, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// HashPassword is used by user provisioning scripts.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}
