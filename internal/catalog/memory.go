package catalog

import "context"

// MemoryRepository serves the static seed catalog. It backs both repository
// interfaces and is the default "memory" binding.
type MemoryRepository struct {
	categories []Category
	pies       []Pie
}

// NewMemoryRepository returns a repository seeded with the shop's catalog.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		categories: SeedCategories(),
		pies:       SeedPies(),
	}
}

func (r *MemoryRepository) Categories(ctx context.Context) ([]Category, error) {
	return append([]Category(nil), r.categories...), nil
}

func (r *MemoryRepository) Pies(ctx context.Context) ([]Pie, error) {
	return append([]Pie(nil), r.pies...), nil
}

func (r *MemoryRepository) PiesOfTheWeek(ctx context.Context) ([]Pie, error) {
	var week []Pie
	for _, p := range r.pies {
		if p.PieOfTheWeek {
			week = append(week, p)
		}
	}
	return week, nil
}

func (r *MemoryRepository) PieByID(ctx context.Context, id int64) (Pie, error) {
	for _, p := range r.pies {
		if p.ID == id {
			return p, nil
		}
	}
	return Pie{}, ErrPieNotFound
}

// SeedCategories returns the static category data.
func SeedCategories() []Category {
	return []Category{
		{ID: 1, Name: "Fruit pies", Description: "All-fruity pies"},
		{ID: 2, Name: "Cheese cakes", Description: "Cheesy all the way"},
		{ID: 3, Name: "Seasonal pies", Description: "Get in the mood for a seasonal pie"},
	}
}

// SeedPies returns the static pie data.
func SeedPies() []Pie {
	return []Pie{
		{ID: 1, Name: "Apple Pie", ShortDescription: "Our famous apple pie", Price: 12.95, CategoryID: 1, InStock: true, PieOfTheWeek: true},
		{ID: 2, Name: "Blueberry Cheese Cake", ShortDescription: "You'll love it", Price: 18.95, CategoryID: 2, InStock: true},
		{ID: 3, Name: "Cheese Cake", ShortDescription: "Plain cheese cake, plain pleasure", Price: 18.95, CategoryID: 2, InStock: true},
		{ID: 4, Name: "Cherry Pie", ShortDescription: "A summer classic", Price: 15.95, CategoryID: 1, InStock: true, PieOfTheWeek: true},
		{ID: 5, Name: "Christmas Apple Pie", ShortDescription: "Happy holidays with this pie", Price: 13.95, CategoryID: 3, InStock: true},
		{ID: 6, Name: "Cranberry Pie", ShortDescription: "A winter favorite", Price: 17.95, CategoryID: 3, InStock: true},
		{ID: 7, Name: "Peach Pie", ShortDescription: "Sweet as peach", Price: 15.95, CategoryID: 1, InStock: false},
		{ID: 8, Name: "Pumpkin Pie", ShortDescription: "Our favorite autumn pie", Price: 12.95, CategoryID: 3, InStock: true, PieOfTheWeek: true},
		{ID: 9, Name: "Rhubarb Pie", ShortDescription: "My God, so sweet!", Price: 15.95, CategoryID: 1, InStock: true},
		{ID: 10, Name: "Strawberry Pie", ShortDescription: "Our delicious strawberry pie", Price: 15.95, CategoryID: 1, InStock: true},
		{ID: 11, Name: "Strawberry Cheese Cake", ShortDescription: "You'll love it", Price: 18.95, CategoryID: 2, InStock: false},
	}
}
