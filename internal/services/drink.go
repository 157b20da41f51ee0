package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trivia-coffee-backend/internal/apperr"
	"trivia-coffee-backend/internal/models"

	"gorm.io/gorm"
)

type DrinkService struct {
	db *gorm.DB
}

func NewDrinkService(db *gorm.DB) *DrinkService {
	return &DrinkService{db: db}
}

// DrinkPatch carries only the fields present in a PATCH body.
type DrinkPatch struct {
	Title  *string
	Recipe *models.Recipe
}

func (s *DrinkService) ListDrinks(ctx context.Context) ([]models.Drink, error) {
	var drinks []models.Drink
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&drinks).Error; err != nil {
		return nil, fmt.Errorf("load drinks: %w", err)
	}
	return drinks, nil
}

func (s *DrinkService) CreateDrink(ctx context.Context, title string, recipe models.Recipe) (*models.Drink, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperr.Unprocessable(errors.New("title is required"))
	}
	if err := recipe.Validate(); err != nil {
		return nil, apperr.Unprocessable(err)
	}

	drink := models.Drink{Title: title, Recipe: []models.Ingredient(recipe)}
	if err := s.db.WithContext(ctx).Create(&drink).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Unprocessable(fmt.Errorf("drink %q already exists", title))
		}
		return nil, fmt.Errorf("create drink: %w", err)
	}
	return &drink, nil
}

func (s *DrinkService) UpdateDrink(ctx context.Context, id uint, patch DrinkPatch) (*models.Drink, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, apperr.Unprocessable(errors.New("title cannot be empty"))
	}
	if patch.Recipe != nil {
		if err := patch.Recipe.Validate(); err != nil {
			return nil, apperr.Unprocessable(err)
		}
	}

	var drink models.Drink
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&drink, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Errorf("drink %d", id))
			}
			return err
		}
		if patch.Title != nil {
			drink.Title = *patch.Title
		}
		if patch.Recipe != nil {
			drink.Recipe = []models.Ingredient(*patch.Recipe)
		}
		return tx.Save(&drink).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Unprocessable(errors.New("drink title already in use"))
		}
		return nil, fmt.Errorf("update drink %d: %w", id, err)
	}
	return &drink, nil
}

func (s *DrinkService) DeleteDrink(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Drink{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete drink %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound(fmt.Errorf("drink %d", id))
	}
	return nil
}
