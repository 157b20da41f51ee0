package handlers

import (
	"net/http"
	"strconv"

	"trivia-coffee-backend/internal/logger"
	"trivia-coffee-backend/internal/models"
	"trivia-coffee-backend/internal/response"
	"trivia-coffee-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DrinkHandler struct {
	drinks *services.DrinkService
	log    *logger.Logger
}

func NewDrinkHandler(drinks *services.DrinkService, log *logger.Logger) *DrinkHandler {
	return &DrinkHandler{drinks: drinks, log: log.With("handler", "drinks")}
}

type CreateDrinkRequest struct {
	Title  string         `json:"title" binding:"required" example:"Latte"`
	Recipe *models.Recipe `json:"recipe" binding:"required"`
}

// UpdateDrinkRequest leaves absent fields nil; only present ones are merged.
type UpdateDrinkRequest struct {
	Title  *string        `json:"title" example:"Latte"`
	Recipe *models.Recipe `json:"recipe"`
}

func (h *DrinkHandler) fail(c *gin.Context, err error, fallback int) {
	renderError(c, h.log, CoffeeMessages, err, fallback)
}

func drinkID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		CoffeeMessages.Abort(c, http.StatusNotFound)
		return 0, false
	}
	return uint(id), true
}

// ListDrinks godoc
// @Summary      Public drink menu
// @Tags         drinks
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /drinks [get]
func (h *DrinkHandler) ListDrinks(c *gin.Context) {
	drinks, err := h.drinks.ListDrinks(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	out := make([]models.ShortDrink, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, d.Short())
	}
	response.OK(c, http.StatusOK, gin.H{"drinks": out})
}

// ListDrinkDetails godoc
// @Summary      Drink menu with full recipes
// @Tags         drinks
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} ErrorEnvelope
// @Failure      403 {object} ErrorEnvelope
// @Router       /drinks-detail [get]
func (h *DrinkHandler) ListDrinkDetails(c *gin.Context) {
	drinks, err := h.drinks.ListDrinks(c.Request.Context())
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}
	out := make([]models.LongDrink, 0, len(drinks))
	for _, d := range drinks {
		out = append(out, d.Long())
	}
	response.OK(c, http.StatusOK, gin.H{"drinks": out})
}

// CreateDrink godoc
// @Summary      Add a drink
// @Tags         drinks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateDrinkRequest true "Drink data"
// @Success      200 {object} map[string]interface{}
// @Failure      422 {object} ErrorEnvelope
// @Router       /drinks [post]
func (h *DrinkHandler) CreateDrink(c *gin.Context) {
	var req CreateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badBody(err), http.StatusUnprocessableEntity)
		return
	}

	drink, err := h.drinks.CreateDrink(c.Request.Context(), req.Title, *req.Recipe)
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}

	h.log.Info("drink created", "drink_id", drink.ID, "subject", subject(c))
	response.OK(c, http.StatusOK, gin.H{"drinks": []models.LongDrink{drink.Long()}})
}

// UpdateDrink godoc
// @Summary      Patch a drink; absent fields are left unchanged
// @Tags         drinks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Drink ID"
// @Param        request body UpdateDrinkRequest true "Fields to change"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorEnvelope
// @Router       /drinks/{id} [patch]
func (h *DrinkHandler) UpdateDrink(c *gin.Context) {
	id, ok := drinkID(c)
	if !ok {
		return
	}
	var req UpdateDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, badBody(err), http.StatusUnprocessableEntity)
		return
	}

	drink, err := h.drinks.UpdateDrink(c.Request.Context(), id, services.DrinkPatch{Title: req.Title, Recipe: req.Recipe})
	if err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}

	h.log.Info("drink updated", "drink_id", drink.ID, "subject", subject(c))
	response.OK(c, http.StatusOK, gin.H{"drinks": []models.LongDrink{drink.Long()}})
}

// DeleteDrink godoc
// @Summary      Remove a drink
// @Tags         drinks
// @Security     BearerAuth
// @Param        id path int true "Drink ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} ErrorEnvelope
// @Router       /drinks/{id} [delete]
func (h *DrinkHandler) DeleteDrink(c *gin.Context) {
	id, ok := drinkID(c)
	if !ok {
		return
	}
	if err := h.drinks.DeleteDrink(c.Request.Context(), id); err != nil {
		h.fail(c, err, http.StatusUnprocessableEntity)
		return
	}

	h.log.Info("drink deleted", "drink_id", id, "subject", subject(c))
	response.OK(c, http.StatusOK, gin.H{"delete": id})
}
