// Package catalog holds the shop's product model and its repositories. The
// memory and sqlite repositories are registered in the service registry under
// the keys "memory" and "sqlite" and selected by configuration.
package catalog

import (
	"context"
	"errors"
)

// ErrPieNotFound is returned when a pie ID does not exist.
var ErrPieNotFound = errors.New("pie not found")

// Category groups pies on the shop front.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Pie is a single catalog item.
type Pie struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	ShortDescription string  `json:"short_description"`
	Price            float64 `json:"price"`
	CategoryID       int64   `json:"category_id"`
	InStock          bool    `json:"in_stock"`
	PieOfTheWeek     bool    `json:"pie_of_the_week"`
}

// CategoryRepository lists the shop's categories.
type CategoryRepository interface {
	Categories(ctx context.Context) ([]Category, error)
}

// PieRepository provides read access to the pie catalog.
type PieRepository interface {
	Pies(ctx context.Context) ([]Pie, error)
	PiesOfTheWeek(ctx context.Context) ([]Pie, error)
	PieByID(ctx context.Context, id int64) (Pie, error)
}
