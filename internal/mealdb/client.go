// Package mealdb is a client for TheMealDB-compatible public recipe APIs.
package mealdb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultBaseURL is the free public endpoint.
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

// maxIngredientSlots is the number of strIngredientN/strMeasureN pairs per meal.
const maxIngredientSlots = 20

// Category is a third-party recipe category.
type Category struct {
	ID          string `json:"idCategory"`
	Name        string `json:"strCategory"`
	Thumb       string `json:"strCategoryThumb"`
	Description string `json:"strCategoryDescription"`
}

// MealRef is the short form returned by category filters.
type MealRef struct {
	ID    string `json:"idMeal"`
	Name  string `json:"strMeal"`
	Thumb string `json:"strMealThumb"`
}

// Ingredient is one ingredient line of a meal.
type Ingredient struct {
	Name    string
	Measure string
}

// Meal is a fully decoded third-party recipe.
type Meal struct {
	ID           string
	Name         string
	Category     string
	Area         string
	Instructions string
	Thumb        string
	Source       string
	Tags         []string
	Ingredients  []Ingredient
}

// Client talks to the recipe API.
type Client struct {
	http *resty.Client
}

// New creates a client for baseURL. An empty baseURL uses DefaultBaseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

type categoriesResponse struct {
	Categories []Category `json:"categories"`
}

type refsResponse struct {
	Meals []MealRef `json:"meals"`
}

type mealsResponse struct {
	Meals []map[string]*string `json:"meals"`
}

// Categories lists every category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out categoriesResponse
	if err := c.get(ctx, "/categories.php", nil, &out); err != nil {
		return nil, err
	}
	return out.Categories, nil
}

// FilterByCategory lists the meals of a category.
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]MealRef, error) {
	var out refsResponse
	if err := c.get(ctx, "/filter.php", map[string]string{"c": category}, &out); err != nil {
		return nil, err
	}
	return out.Meals, nil
}

// Lookup fetches one meal by id. It returns nil, nil when the id is unknown.
func (c *Client) Lookup(ctx context.Context, id string) (*Meal, error) {
	var out mealsResponse
	if err := c.get(ctx, "/lookup.php", map[string]string{"i": id}, &out); err != nil {
		return nil, err
	}
	if len(out.Meals) == 0 {
		return nil, nil
	}
	m := c.decode(out.Meals[0])
	return &m, nil
}

// Search finds meals whose name contains query.
func (c *Client) Search(ctx context.Context, query string) ([]Meal, error) {
	var out mealsResponse
	if err := c.get(ctx, "/search.php", map[string]string{"s": query}, &out); err != nil {
		return nil, err
	}
	meals := make([]Meal, 0, len(out.Meals))
	for _, raw := range out.Meals {
		meals = append(meals, c.decode(raw))
	}
	return meals, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, result interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(result).
		Get(path)
	if err != nil {
		return fmt.Errorf("mealdb %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("mealdb %s: unexpected status %d", path, resp.StatusCode())
	}
	return nil
}

// decode maps the flat strIngredientN/strMeasureN layout onto a Meal and
// title-cases ingredient names so they line up with locally created ones.
func (c *Client) decode(raw map[string]*string) Meal {
	title := cases.Title(language.English)
	field := func(k string) string {
		if v := raw[k]; v != nil {
			return strings.TrimSpace(*v)
		}
		return ""
	}

	m := Meal{
		ID:           field("idMeal"),
		Name:         field("strMeal"),
		Category:     field("strCategory"),
		Area:         field("strArea"),
		Instructions: field("strInstructions"),
		Thumb:        field("strMealThumb"),
		Source:       field("strSource"),
	}
	for _, t := range strings.Split(field("strTags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			m.Tags = append(m.Tags, t)
		}
	}
	for i := 1; i <= maxIngredientSlots; i++ {
		name := field("strIngredient" + strconv.Itoa(i))
		if name == "" {
			continue
		}
		m.Ingredients = append(m.Ingredients, Ingredient{
			Name:    title.String(strings.ToLower(name)),
			Measure: field("strMeasure" + strconv.Itoa(i)),
		})
	}
	return m
}
