package severity

import "strings"

type Severity struct {
	Name string
}

func (s Severity) Code() string {
	return s.Name
}

func (s Severity) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

// Rank orders severities from low (0) upward so callers can compare.
func (s Severity) Rank() int {
	for i, sev := range All {
		if sev.Name == s.Name {
			return i
		}
	}
	return -1
}

type Enum struct {
	Low      Severity
	Medium   Severity
	High     Severity
	Critical Severity
}

var Severities = Enum{
	Low:      Severity{Name: "low"},
	Medium:   Severity{Name: "medium"},
	High:     Severity{Name: "high"},
	Critical: Severity{Name: "critical"},
}

var All = []Severity{
	Severities.Low,
	Severities.Medium,
	Severities.High,
	Severities.Critical,
}

// ByName returns the severity for a given name, or nil if not found
func ByName(name string) *Severity {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
