package apartment

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// GetAll returns every row ordered by ascending price, nulls last, id as
// tiebreak. The "price IS NULL" term sorts identically on Postgres and the
// SQLite test database.
func (r *Repository) GetAll(ctx context.Context) ([]ApartmentModel, error) {
	rows := make([]ApartmentModel, 0)
	err := r.DB.WithContext(ctx).
		Order("price IS NULL, price ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Create(ctx context.Context, apt *ApartmentModel) error {
	return r.DB.WithContext(ctx).Create(apt).Error
}

// DeleteByID deletes by id. Deleting a nonexistent id is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&ApartmentModel{}).Error
}
