package session

import (
	"gorm.io/gorm"
)

type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// GetUserByUsername returns the single user row for username. The unique
// index on username guarantees at most one match.
func (r *Repository) GetUserByUsername(username string) (*UserModel, error) {
	var user UserModel
	err := r.DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
