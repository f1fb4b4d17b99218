// Package recipe defines the core domain type for recipes.
package recipe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recipe is a single dish kept in the recipe store.
type Recipe struct {
	ID           string    `json:"id"`                          // Generated on insert (UUIDv7)
	Title        string    `json:"title"`                       // Required, lookup key
	Description  string    `json:"description,omitempty"`       // Optional short text
	Ingredients  []string  `json:"ingredients"`                 // Required, at least one entry
	Instructions string    `json:"instructions"`                // Required, free-form steps
	PrepTime     *float64  `json:"prepTimeInMinutes,omitempty"` // Optional, minimum MinPrepTime
	CreatedAt    time.Time `json:"createdAt"`                   // Set on insert, never modified
}

// MinPrepTime is the smallest accepted preparation time in minutes.
const MinPrepTime = 1

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptyIngredients  = errors.New("ingredients are required")
	ErrEmptyInstructions = errors.New("instructions are required")
	ErrPrepTimeTooShort  = fmt.Errorf("prepTimeInMinutes must be at least %d", MinPrepTime)
)

// ValidationError collects every rule a recipe breaks.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return "recipe validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes the individual rule errors to errors.Is.
func (e *ValidationError) Unwrap() []error {
	return e.Errs
}

// Validate checks the stored-record rules. It returns a *ValidationError
// listing all failures, or nil.
func (r *Recipe) Validate() error {
	var errs []error
	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, ErrEmptyTitle)
	}
	if len(r.Ingredients) == 0 {
		errs = append(errs, ErrEmptyIngredients)
	}
	if strings.TrimSpace(r.Instructions) == "" {
		errs = append(errs, ErrEmptyInstructions)
	}
	// NaN fails every comparison, so test for the accepted range
	if r.PrepTime != nil && !(*r.PrepTime >= MinPrepTime) {
		errs = append(errs, fmt.Errorf("%w (got %s)", ErrPrepTimeTooShort, formatMinutes(*r.PrepTime)))
	}
	if len(errs) > 0 {
		return &ValidationError{Errs: errs}
	}
	return nil
}

// ParseIngredients splits a comma-separated list and trims each token.
// Order is kept and empty tokens are not dropped.
func ParseIngredients(csv string) []string {
	parts := strings.Split(csv, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Minutes returns a pointer to n, for building recipes with a prep time.
// Fractional minutes are allowed.
func Minutes(n float64) *float64 {
	return &n
}

// Sample returns the fixed Garlic Bread recipe used by the sample command.
func Sample() Recipe {
	return Recipe{
		Title:        "Garlic Bread",
		Description:  "Crispy garlic bread perfect with pasta or soup.",
		Ingredients:  []string{"Bread", "Garlic", "Butter", "Parsley"},
		Instructions: "Spread garlic butter on bread and bake at 375°F for 10 mins.",
		PrepTime:     Minutes(15),
	}
}

// IngredientList joins ingredients for display.
func (r *Recipe) IngredientList() string {
	return strings.Join(r.Ingredients, ", ")
}

// PrepTimeText renders the prep time, or "unspecified" when absent.
func (r *Recipe) PrepTimeText() string {
	if r.PrepTime == nil {
		return "unspecified"
	}
	return formatMinutes(*r.PrepTime) + " minutes"
}

// formatMinutes prints whole values without a decimal point.
func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
