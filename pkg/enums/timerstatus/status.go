package timerstatus

import "strings"

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	if len(s.Name) == 0 {
		return ""
	}
	return strings.ToUpper(s.Name[:1]) + s.Name[1:]
}

type Enum struct {
	Created   Status
	Running   Status
	Paused    Status
	Completed Status
	Cancelled Status
	Expired   Status
}

var Statuses = Enum{
	Created:   Status{Name: "created"},
	Running:   Status{Name: "running"},
	Paused:    Status{Name: "paused"},
	Completed: Status{Name: "completed"},
	Cancelled: Status{Name: "cancelled"},
	Expired:   Status{Name: "expired"},
}

var All = []Status{
	Statuses.Created,
	Statuses.Running,
	Statuses.Paused,
	Statuses.Completed,
	Statuses.Cancelled,
	Statuses.Expired,
}

// ByName returns the status for a given name, or nil if not found
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
