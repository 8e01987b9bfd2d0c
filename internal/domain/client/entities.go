package client

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("client not found")

type Client struct {
	ID           uint64 `gorm:"primaryKey;column:id" json:"id"`
	ClientNumber string `gorm:"column:client_number;size:50;uniqueIndex:ux_clients_client_number" json:"client_number"`

	Name         string `gorm:"size:200;not null" json:"name"`
	CompanyName  string `gorm:"column:company_name;size:200" json:"company_name"`
	Address      string `gorm:"type:text;not null" json:"address"`
	Phone        string `gorm:"size:50;not null" json:"phone"`
	Email        string `gorm:"size:100" json:"email"`
	IDCardNumber string `gorm:"column:id_card_number;size:50" json:"id_card_number"`
	IsActive     bool   `gorm:"column:is_active;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
