package mysql

import (
	"context"

	clientDomain "cfc-deblocages/internal/domain/client"

	"gorm.io/gorm"
)

type ClientRepository struct{ db *gorm.DB }

func NewClientRepository(db *gorm.DB) *ClientRepository { return &ClientRepository{db: db} }

func (r *ClientRepository) Create(ctx context.Context, c *clientDomain.Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClientRepository) Save(ctx context.Context, c *clientDomain.Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id uint64) (*clientDomain.Client, error) {
	var out clientDomain.Client
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *ClientRepository) GetByClientNumber(ctx context.Context, clientNumber string) (*clientDomain.Client, error) {
	var out clientDomain.Client
	res := r.db.WithContext(ctx).Where("client_number = ?", clientNumber).First(&out)
	return &out, res.Error
}

func (r *ClientRepository) List(ctx context.Context, offset, limit int) ([]clientDomain.Client, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var out []clientDomain.Client
	res := r.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&out)
	return out, res.Error
}
