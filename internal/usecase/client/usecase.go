package client

import (
	"context"
	"errors"
	"time"

	domain "cfc-deblocages/internal/domain/client"
	"cfc-deblocages/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct{ repo domain.Repository }

func NewUsecase(repo domain.Repository) *Usecase { return &Usecase{repo: repo} }

type CreateClientInput struct {
	Name         string `json:"name"`
	CompanyName  string `json:"company_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	IDCardNumber string `json:"id_card_number"`
}

type ClientDTO struct {
	ClientNumber string    `json:"client_number"`
	Name         string    `json:"name"`
	CompanyName  string    `json:"company_name"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	IDCardNumber string    `json:"id_card_number"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateClientInput) (*ClientDTO, error) {
	if in.Name == "" || in.Address == "" || in.Phone == "" {
		return nil, errors.New("name, address and phone are required")
	}
	c := &domain.Client{
		ClientNumber: id.NewClientNumber(),
		Name:         in.Name,
		CompanyName:  in.CompanyName,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		IDCardNumber: in.IDCardNumber,
		IsActive:     true,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, clientNumber string) (*ClientDTO, error) {
	c, err := u.repo.GetByClientNumber(ctx, clientNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) List(ctx context.Context, offset, limit int) ([]ClientDTO, error) {
	cs, err := u.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]ClientDTO, 0, len(cs))
	for i := range cs {
		out = append(out, *toDTO(&cs[i]))
	}
	return out, nil
}

type UpdateClientInput struct {
	CompanyName *string `json:"company_name,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
}

func (u *Usecase) Update(ctx context.Context, clientNumber string, in UpdateClientInput) (*ClientDTO, error) {
	c, err := u.repo.GetByClientNumber(ctx, clientNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if in.CompanyName != nil {
		c.CompanyName = *in.CompanyName
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Deactivate(ctx context.Context, clientNumber string) error {
	c, err := u.repo.GetByClientNumber(ctx, clientNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	c.IsActive = false
	return u.repo.Save(ctx, c)
}

func toDTO(c *domain.Client) *ClientDTO {
	return &ClientDTO{
		ClientNumber: c.ClientNumber,
		Name:         c.Name,
		CompanyName:  c.CompanyName,
		Address:      c.Address,
		Phone:        c.Phone,
		Email:        c.Email,
		IDCardNumber: c.IDCardNumber,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}
