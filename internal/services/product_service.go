package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"stockroom/internal/models"
	"stockroom/internal/repositories"
	"stockroom/internal/validators"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidDate     = errors.New("expiration_date must be in YYYY-MM-DD format")
)

type ProductService struct {
	Repo *repositories.ProductRepository
}

func NewProductService(repo *repositories.ProductRepository) *ProductService {
	return &ProductService{Repo: repo}
}

func (s *ProductService) Create(name, expirationDate string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if err := validators.ProductNameValidator(name); err != nil {
		return nil, err
	}
	date, err := models.ParseDate(expirationDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	p := &models.Product{Name: name, ExpirationDate: date}
	id, err := s.Repo.Create(p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

func (s *ProductService) List() ([]*models.Product, error) {
	return s.Repo.List()
}

// Get resolves a path value that is either a numeric id or a product name.
// Numeric values fall back to a name lookup when no product has that id.
func (s *ProductService) Get(idOrName string) (*models.Product, error) {
	if id, err := strconv.Atoi(idOrName); err == nil {
		p, err := s.Repo.GetByID(id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
	}

	p, err := s.Repo.GetByName(idOrName)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Delete removes the product and returns what was removed.
func (s *ProductService) Delete(id int) (*models.Product, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}
	return p, nil
}
