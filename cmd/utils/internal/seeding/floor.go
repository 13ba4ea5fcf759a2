package seeding

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/brigadeclub/brigade/internal/kitchen"
	"github.com/brigadeclub/brigade/internal/staff"
	"github.com/brigadeclub/brigade/internal/tables"
	"github.com/brigadeclub/brigade/pkg/enums/stationtype"
)

// SeedStations creates the demo kitchen line.
func SeedStations(ctx context.Context, db *mongo.Database) ([]uuid.UUID, error) {
	specs := []struct {
		name        string
		stationType string
		capacity    int
	}{
		{"Grill", stationtype.Types.Grill.Code(), 6},
		{"Fry", stationtype.Types.Fry.Code(), 4},
		{"Saute", stationtype.Types.Saute.Code(), 4},
		{"Salad", stationtype.Types.Salad.Code(), 3},
		{"Pastry", stationtype.Types.Pastry.Code(), 2},
		{"Expo", stationtype.Types.Expo.Code(), 10},
	}

	stations := make([]*kitchen.Station, 0, len(specs))
	for _, spec := range specs {
		station := kitchen.NewStation()
		station.Name = spec.name
		station.Type = spec.stationType
		station.Capacity = spec.capacity
		station.BeforeCreate()
		stations = append(stations, station)
	}

	return insertAll(ctx, db.Collection("stations"), stations)
}

// SeedTables lays out the demo dining floor: a main room and a patio.
func SeedTables(ctx context.Context, db *mongo.Database) ([]uuid.UUID, error) {
	specs := []struct {
		number   string
		capacity int
		section  string
	}{
		{"1", 2, "main"},
		{"2", 2, "main"},
		{"3", 4, "main"},
		{"4", 4, "main"},
		{"5", 6, "main"},
		{"6", 8, "main"},
		{"P1", 2, "patio"},
		{"P2", 4, "patio"},
		{"P3", 4, "patio"},
	}

	floor := make([]*tables.Table, 0, len(specs))
	for _, spec := range specs {
		table := tables.NewTable()
		table.Number = spec.number
		table.Capacity = spec.capacity
		table.Section = spec.section
		table.BeforeCreate()
		floor = append(floor, table)
	}

	return insertAll(ctx, db.Collection("tables"), floor)
}

// SeedUsers creates the demo brigade roster.
func SeedUsers(ctx context.Context, db *mongo.Database) ([]uuid.UUID, error) {
	specs := []struct {
		email string
		name  string
		role  string
	}{
		{"marta@brigade.demo", "Marta Ruiz", staff.RoleManager},
		{"kenji@brigade.demo", "Kenji Watanabe", staff.RoleChef},
		{"paula@brigade.demo", "Paula Stein", staff.RoleSousChef},
		{"leon@brigade.demo", "Leon Okafor", staff.RoleLineCook},
		{"iris@brigade.demo", "Iris Laurent", staff.RoleServer},
		{"tomas@brigade.demo", "Tomas Vega", staff.RoleServer},
		{"amara@brigade.demo", "Amara Diallo", staff.RoleHost},
	}

	users := make([]*staff.User, 0, len(specs))
	for _, spec := range specs {
		user := staff.NewUser()
		user.Email = staff.NormalizeEmail(spec.email)
		user.Name = spec.name
		user.Role = spec.role
		user.BeforeCreate()
		users = append(users, user)
	}

	return insertAll(ctx, db.Collection("users"), users)
}
