package repository

import (
	"context"

	"couponmart/internal/models"
)

// CustomerRepository is the durable store for customer records.
type CustomerRepository interface {
	Create(ctx context.Context, customer models.Customer) (models.Customer, error)
	GetByID(ctx context.Context, id int64) (models.Customer, error)
	FindByEmail(ctx context.Context, email string) (models.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.Customer, error)
	Update(ctx context.Context, customer models.Customer) (models.Customer, error)
	Delete(ctx context.Context, id int64) error
}
