package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/baselayer-api/internal/plan"
)

const maxDescriptionLength = 200

// Upper bounds for user-entered nutrition; both columns are INTEGER.
const (
	maxMealCalories = 20000
	maxMealProteinG = 2000
)

// resolveMealNutrition fills in what the user left out. Calories that are
// missing or zero come from the estimator, and protein is then estimated
// too unless it was given.
func resolveMealNutrition(description string, calories, proteinG *int) (cal, prot int, estimated bool) {
	if calories != nil && *calories > 0 {
		cal = *calories
		if proteinG != nil {
			prot = *proteinG
		}
		return cal, prot, false
	}

	est := plan.EstimateNutrition(description)
	cal, prot = est.Calories, est.ProteinG
	if proteinG != nil {
		prot = *proteinG
	}
	return cal, prot, true
}

func validateDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("description is required")
	}
	if len(s) > maxDescriptionLength {
		return "", errors.New("description is too long")
	}
	return s, nil
}

// createMeal logs a free-text meal for a date (default today).
// POST /api/meals. Body: { "description", "date"?, "calories"?, "protein_g"? }.
func (h *Handler) createMeal(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	desc, err := validateDescription(body.Description)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}
	if (body.Calories != nil && *body.Calories < 0) || (body.ProteinG != nil && *body.ProteinG < 0) {
		apiError(c, http.StatusBadRequest, "calories and protein_g must not be negative")
		return
	}
	if (body.Calories != nil && *body.Calories > maxMealCalories) || (body.ProteinG != nil && *body.ProteinG > maxMealProteinG) {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("calories must be at most %d and protein_g at most %d", maxMealCalories, maxMealProteinG))
		return
	}
	date, err := resolveDate(body.Date, h.clock())
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	calories, protein, estimated := resolveMealNutrition(desc, body.Calories, body.ProteinG)

	meal, err := queryOne[mealLog](h.db, c,
		`INSERT INTO meal_logs (user_id, date, description, calories, protein_g, estimated)
		 VALUES (@userID, @date, @description, @calories, @proteinG, @estimated)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":      userID,
			"date":        date.Format(dateLayout),
			"description": desc,
			"calories":    calories,
			"proteinG":    protein,
			"estimated":   estimated,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to log meal")
		return
	}

	c.JSON(http.StatusCreated, meal)
}

// deleteMeal removes a meal by ID. Ownership is enforced by requiring both
// id and user_id to match.
// DELETE /api/meals/:id. Returns 204 on success, 404 if not found.
func (h *Handler) deleteMeal(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM meal_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete meal")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "meal not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// estimateMeal previews the estimator without saving anything.
// POST /api/meals/estimate. Body: { "description": "2 eggs" }.
func (h *Handler) estimateMeal(c *gin.Context) {
	var body struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	desc, err := validateDescription(body.Description)
	if err != nil {
		apiError(c, http.StatusBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, plan.EstimateNutrition(desc))
}
