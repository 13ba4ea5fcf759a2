package costcategory

import "strings"

type Category struct {
	Name string
}

func (c Category) Code() string {
	return c.Name
}

func (c Category) Label() string {
	if len(c.Name) == 0 {
		return ""
	}
	return strings.ToUpper(c.Name[:1]) + c.Name[1:]
}

type Enum struct {
	Ingredients Category
	Labor       Category
	Utilities   Category
	Equipment   Category
	Overhead    Category
	Waste       Category
	Other       Category
}

var Categories = Enum{
	Ingredients: Category{Name: "ingredients"},
	Labor:       Category{Name: "labor"},
	Utilities:   Category{Name: "utilities"},
	Equipment:   Category{Name: "equipment"},
	Overhead:    Category{Name: "overhead"},
	Waste:       Category{Name: "waste"},
	Other:       Category{Name: "other"},
}

var All = []Category{
	Categories.Ingredients,
	Categories.Labor,
	Categories.Utilities,
	Categories.Equipment,
	Categories.Overhead,
	Categories.Waste,
	Categories.Other,
}

// ByName returns the category for a given name, or nil if not found
func ByName(name string) *Category {
	for _, c := range All {
		if c.Name == name {
			return &c
		}
	}
	return nil
}
