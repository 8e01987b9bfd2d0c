package mysql

import (
	"context"

	userDomain "cfc-deblocages/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&out)
	return &out, res.Error
}
