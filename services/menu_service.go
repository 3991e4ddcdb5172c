package services

import (
	"errors"

	"moi-backend/entity"
	"moi-backend/repository"
)

type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{Repo: repo}
}

func (s *MenuService) List(category string) ([]entity.MenuItem, error) {
	return s.Repo.List(category)
}

func (s *MenuService) Get(id uint) (*entity.MenuItem, error) {
	return s.Repo.Get(id)
}

type MenuItemIn struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"min=0"`
	Category    string `json:"category" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Available   *bool  `json:"available"`
}

func (s *MenuService) Create(in *MenuItemIn) (*entity.MenuItem, error) {
	if in.Price < 0 {
		return nil, errors.New("price must not be negative")
	}
	m := entity.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Available:   true,
	}
	if in.Available != nil {
		m.Available = *in.Available
	}
	if err := s.Repo.Create(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MenuService) Update(id uint, updates map[string]any) (*entity.MenuItem, error) {
	if p, ok := updates["price"]; ok {
		if v, ok := p.(int64); ok && v < 0 {
			return nil, errors.New("price must not be negative")
		}
	}
	if err := s.Repo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.Repo.Get(id)
}

func (s *MenuService) Delete(id uint) error {
	return s.Repo.Delete(id)
}
