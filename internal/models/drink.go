package models

import (
	"bytes"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
)

type Ingredient struct {
	Color string `json:"color"`
	Name  string `json:"name"`
	Parts int    `json:"parts"`
}

type Drink struct {
	ID     uint                           `gorm:"primaryKey" json:"id"`
	Title  string                         `gorm:"size:80;uniqueIndex;not null" json:"title"`
	Recipe datatypes.JSONSlice[Ingredient] `gorm:"not null" json:"recipe"`
}

type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

type ShortDrink struct {
	ID     uint              `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

type LongDrink struct {
	ID     uint         `json:"id"`
	Title  string       `json:"title"`
	Recipe []Ingredient `json:"recipe"`
}

// Short is the public projection: colors and proportions only.
func (d Drink) Short() ShortDrink {
	recipe := make([]ShortIngredient, 0, len(d.Recipe))
	for _, in := range d.Recipe {
		recipe = append(recipe, ShortIngredient{Color: in.Color, Parts: in.Parts})
	}
	return ShortDrink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long includes ingredient names and is only served behind get:drinks-detail.
func (d Drink) Long() LongDrink {
	recipe := make([]Ingredient, len(d.Recipe))
	copy(recipe, d.Recipe)
	return LongDrink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

var ErrEmptyRecipe = errors.New("recipe must contain at least one ingredient")

// Recipe is the request form of a recipe. Clients send either a single
// ingredient object or a list; both decode to a list.
type Recipe []Ingredient

func (r *Recipe) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.HasPrefix(data, []byte("{")) {
		var one Ingredient
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*r = Recipe{one}
		return nil
	}
	var many []Ingredient
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = many
	return nil
}

func (r Recipe) Validate() error {
	if len(r) == 0 {
		return ErrEmptyRecipe
	}
	return nil
}
