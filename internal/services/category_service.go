package services

import (
	"errors"
	"strings"

	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	err := s.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (s *CategoryService) Create(name, description string) (*models.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name is required")
	}

	var existing models.Category
	if err := s.db.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category := models.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(categoryID uuid.UUID, name, description string) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if name != "" && !strings.EqualFold(name, category.Name) {
		var existing models.Category
		if err := s.db.Where("LOWER(name) = LOWER(?) AND id <> ?", name, categoryID).First(&existing).Error; err == nil {
			return nil, ErrCategoryExists
		}
		category.Name = name
	}
	if description != "" {
		category.Description = description
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// Delete refuses to remove a category still referenced by questions.
func (s *CategoryService) Delete(categoryID uuid.UUID) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Question{}).Where("category = ?", category.Name).Count(&inUse).Error; err != nil {
		return err
	}
	if inUse > 0 {
		return ErrCategoryInUse
	}

	return s.db.Delete(&category).Error
}
