package apartment

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ValidationError carries a 400-able message about missing or malformed
// input. The store is never touched when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type Service struct {
	repo *Repository
}

func NewService(db *gorm.DB) *Service {
	return &Service{repo: NewRepository(db)}
}

func (s *Service) List(ctx context.Context) ([]ApartmentModel, error) {
	return s.repo.GetAll(ctx)
}

// Create validates the request and inserts a new row. The returned record
// carries the server-assigned id.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ApartmentModel, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	apt := &ApartmentModel{
		Name:          strings.TrimSpace(*req.Name),
		Price:         req.Price,
		SquareFootage: *req.SquareFootage,
		Bedrooms:      *req.Bedrooms,
		Bathrooms:     *req.Bathrooms,
		Distance1:     req.Distance1,
		Distance2:     req.Distance2,
	}
	if req.URL != nil && strings.TrimSpace(*req.URL) != "" {
		url := strings.TrimSpace(*req.URL)
		apt.URL = &url
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to insert apartment: %v", err)
	}

	return apt, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}

func validateCreate(req CreateRequest) error {
	var missing []string

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		missing = append(missing, "name")
	}
	numeric := []struct {
		name  string
		value *float64
	}{
		{"price", req.Price},
		{"square_footage", req.SquareFootage},
		{"bedrooms", req.Bedrooms},
		{"bathrooms", req.Bathrooms},
		{"distance1", req.Distance1},
		{"distance2", req.Distance2},
	}
	for _, f := range numeric {
		if f.value == nil {
			missing = append(missing, f.name)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Message: "missing required fields: " + strings.Join(missing, ", ")}
	}
	return nil
}
