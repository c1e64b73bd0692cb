package port

import (
	"context"

	"github.com/rl1809/stock-control/internal/core/domain"
)

type StockRepository interface {
	// CreateSchema creates the produtos table if it does not exist
	CreateSchema(ctx context.Context) error

	// Insert appends a row, duplicates by name are allowed
	Insert(ctx context.Context, name string, quantity int) (domain.StockItem, error)

	// DeleteByName removes every row with the name and returns how many went away
	DeleteByName(ctx context.Context, name string) (int64, error)

	// FindByName returns the first row with the name, or nil when there is none
	FindByName(ctx context.Context, name string) (*domain.StockItem, error)

	// UpdateQuantity sets the quantity of every row with the name
	UpdateQuantity(ctx context.Context, name string, quantity int) (int64, error)

	// UpdateNameAndQuantity renames and sets the quantity of every row with the name
	UpdateNameAndQuantity(ctx context.Context, name, newName string, quantity int) (int64, error)

	// ListAll returns every row in storage order
	ListAll(ctx context.Context) ([]domain.StockItem, error)
}
