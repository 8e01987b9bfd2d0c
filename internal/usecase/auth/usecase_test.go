package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "cfc-deblocages/internal/domain/user"
	"cfc-deblocages/internal/testutil/usermock"

	"gorm.io/gorm"
)

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return &domain.User{
		ID:             42,
		Username:       "aminata",
		Email:          "aminata@cfc.cm",
		HashedPassword: hash,
		FullName:       "Aminata Mbarga",
		Role:           domain.RoleAgent,
		IsActive:       true,
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	usr := activeUser(t, "s3cret")
	repo := &usermock.Repo{
		GetByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			if login != "aminata" {
				return nil, gorm.ErrRecordNotFound
			}
			return usr, nil
		},
	}
	uc := NewUsecase(repo, "test-secret", time.Hour)

	dto, err := uc.Login(context.Background(), LoginInput{Username: "aminata", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if dto.TokenType != "bearer" || dto.AccessToken == "" {
		t.Fatalf("unexpected token payload: %+v", dto)
	}
	if dto.User.ID != 42 || dto.User.Role != "AGENT" {
		t.Fatalf("unexpected user payload: %+v", dto.User)
	}

	sub, err := uc.VerifyToken(dto.AccessToken)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if sub != "42" {
		t.Fatalf("subject = %q, want 42", sub)
	}
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	usr := activeUser(t, "s3cret")
	repo := &usermock.Repo{
		GetByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			if login == "aminata" || login == "aminata@cfc.cm" {
				return usr, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo, "test-secret", time.Hour)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "ghost", "s3cret"},
		{"wrong password", "aminata", "nope"},
		{"empty password", "aminata", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), LoginInput{Username: tc.username, Password: tc.password})
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("err = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLogin_ByEmail(t *testing.T) {
	usr := activeUser(t, "s3cret")
	repo := &usermock.Repo{
		GetByLoginFn: func(ctx context.Context, login string) (*domain.User, error) {
			if login == "aminata@cfc.cm" {
				return usr, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(repo, "test-secret", time.Hour)

	dto, err := uc.Login(context.Background(), LoginInput{Username: "aminata@cfc.cm", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login by email: %v", err)
	}
	if dto.User.Username != "aminata" {
		t.Fatalf("username = %q", dto.User.Username)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	usr := activeUser(t, "s3cret")
	usr.IsActive = false
	repo := &usermock.Repo{
		GetByLoginFn: func(ctx context.Context, login string) (*domain.User, error) { return usr, nil },
	}
	uc := NewUsecase(repo, "test-secret", time.Hour)

	if _, err := uc.Login(context.Background(), LoginInput{Username: "aminata", Password: "s3cret"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestVerifyToken_RejectsForgedAndExpired(t *testing.T) {
	usr := activeUser(t, "s3cret")
	repo := &usermock.Repo{
		GetByLoginFn: func(ctx context.Context, login string) (*domain.User, error) { return usr, nil },
	}

	// Token signed with a different secret must not verify.
	other := NewUsecase(repo, "other-secret", time.Hour)
	dto, err := other.Login(context.Background(), LoginInput{Username: "aminata", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	uc := NewUsecase(repo, "test-secret", time.Hour)
	if _, err := uc.VerifyToken(dto.AccessToken); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}

	// Expired token must not verify.
	expired := NewUsecase(repo, "test-secret", -time.Minute)
	dto, err = expired.Login(context.Background(), LoginInput{Username: "aminata", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := expired.VerifyToken(dto.AccessToken); err == nil {
		t.Fatal("expected error for expired token")
	}

	if _, err := uc.VerifyToken("not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}
