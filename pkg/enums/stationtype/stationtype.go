package stationtype

import "strings"

type StationType struct {
	Name string
}

func (s StationType) Code() string {
	return s.Name
}

func (s StationType) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

type Enum struct {
	Grill  StationType
	Fry    StationType
	Saute  StationType
	Salad  StationType
	Pastry StationType
	Prep   StationType
	Expo   StationType
	Bar    StationType
}

var Types = Enum{
	Grill:  StationType{Name: "grill"},
	Fry:    StationType{Name: "fry"},
	Saute:  StationType{Name: "saute"},
	Salad:  StationType{Name: "salad"},
	Pastry: StationType{Name: "pastry"},
	Prep:   StationType{Name: "prep"},
	Expo:   StationType{Name: "expo"},
	Bar:    StationType{Name: "bar"},
}

var All = []StationType{
	Types.Grill,
	Types.Fry,
	Types.Saute,
	Types.Salad,
	Types.Pastry,
	Types.Prep,
	Types.Expo,
	Types.Bar,
}

// ByName returns the station type for a given name, or nil if not found
func ByName(name string) *StationType {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
