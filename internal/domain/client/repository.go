package client

import "context"

type Repository interface {
	Create(ctx context.Context, c *Client) error
	Save(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uint64) (*Client, error)
	GetByClientNumber(ctx context.Context, clientNumber string) (*Client, error)
	List(ctx context.Context, offset, limit int) ([]Client, error)
}
