package repository

import (
	"context"

	"couponmart/internal/models"
)

// CompanyRepository is the durable store for company records.
type CompanyRepository interface {
	Create(ctx context.Context, company models.Company) (models.Company, error)
	GetByID(ctx context.Context, id int64) (models.Company, error)
	FindByEmail(ctx context.Context, email string) (models.Company, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.Company, error)
	Update(ctx context.Context, company models.Company) (models.Company, error)
	Delete(ctx context.Context, id int64) error
}
