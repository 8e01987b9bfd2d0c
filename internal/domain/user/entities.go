package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleAgent   Role = "AGENT"
)

type User struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"id"`
	Username       string `gorm:"size:100;uniqueIndex:ux_users_username;not null" json:"username"`
	Email          string `gorm:"size:100;uniqueIndex:ux_users_email;not null" json:"email"`
	HashedPassword string `gorm:"column:hashed_password;size:100;not null" json:"-"`
	FullName       string `gorm:"column:full_name;size:200" json:"full_name"`
	Role           Role   `gorm:"size:32;default:'AGENT'" json:"role"`
	IsActive       bool   `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
