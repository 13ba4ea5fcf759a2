package staff

import (
	"context"
	"testing"
	"time"

	"github.com/brigadeclub/brigade/pkg/fail"
)

func newTestUser() *User {
	user := NewUser()
	user.Email = "chef@example.com"
	user.Name = "Auguste"
	user.Role = RoleChef
	user.Permissions = []string{"orders:write", "stations:write"}
	user.BeforeCreate()
	return user
}

func TestUserHasPermission(t *testing.T) {
	user := newTestUser()
	if !user.HasPermission("orders:write") {
		t.Error("HasPermission(orders:write) = false")
	}
	if user.HasPermission("staff:admin") {
		t.Error("HasPermission(staff:admin) = true")
	}
}

func TestUserSession(t *testing.T) {
	user := newTestUser()
	if user.SessionValid() {
		t.Error("new user should not have a valid session")
	}

	user.StartSession("tok-123", time.Hour)
	if !user.SessionValid() {
		t.Error("session should be valid after StartSession")
	}
	if user.LastLoginAt == nil {
		t.Error("StartSession should record login time")
	}

	user.EndSession()
	if user.SessionValid() {
		t.Error("session should be invalid after EndSession")
	}

	user.StartSession("tok-456", -time.Minute)
	if user.SessionValid() {
		t.Error("expired session should be invalid")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Chef@Example.COM "); got != "chef@example.com" {
		t.Errorf("NormalizeEmail() = %q", got)
	}
}

func TestFakeUserRepoContract(t *testing.T) {
	repo := NewFakeUserRepo()
	ctx := context.Background()

	user := newTestUser()
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Create(ctx, user); !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate Create() kind = %v, want Conflict", fail.KindOf(err))
	}

	got, err := repo.Get(ctx, user.ID)
	if err != nil || got.Email != user.Email {
		t.Fatalf("Get() = %v, err %v", got, err)
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, user.ID); !fail.Is(err, fail.NotFound) {
		t.Errorf("Get() after Delete() kind = %v, want NotFound", fail.KindOf(err))
	}
	if err := repo.Save(ctx, user); !fail.Is(err, fail.NotFound) {
		t.Errorf("Save() on deleted kind = %v, want NotFound", fail.KindOf(err))
	}
}

func TestFakeUserRepoEmailUnique(t *testing.T) {
	repo := NewFakeUserRepo()
	ctx := context.Background()

	first := newTestUser()
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Same address in different casing still collides.
	duplicate := NewUser()
	duplicate.Email = "CHEF@example.com"
	duplicate.Name = "Impostor"
	duplicate.Role = RoleLineCook
	duplicate.BeforeCreate()
	if err := repo.Create(ctx, duplicate); !fail.Is(err, fail.Conflict) {
		t.Errorf("duplicate email Create() kind = %v, want Conflict", fail.KindOf(err))
	}

	if err := repo.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Create(ctx, duplicate); err != nil {
		t.Errorf("Create() after email freed error = %v", err)
	}
}

func TestFakeUserRepoGetByEmail(t *testing.T) {
	repo := NewFakeUserRepo()
	ctx := context.Background()

	user := newTestUser()
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByEmail(ctx, "Chef@Example.com")
	if err != nil || got.ID != user.ID {
		t.Errorf("GetByEmail() = %v, err %v", got, err)
	}

	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !fail.Is(err, fail.NotFound) {
		t.Errorf("GetByEmail() missing kind = %v, want NotFound", fail.KindOf(err))
	}
}

func TestFakeUserRepoListByRole(t *testing.T) {
	repo := NewFakeUserRepo()
	ctx := context.Background()

	chef := newTestUser()
	server := NewUser()
	server.Email = "server@example.com"
	server.Name = "Remy"
	server.Role = RoleServer
	server.BeforeCreate()

	for _, user := range []*User{chef, server} {
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	chefs, err := repo.ListByRole(ctx, RoleChef)
	if err != nil || len(chefs) != 1 || chefs[0].ID != chef.ID {
		t.Errorf("ListByRole() = %d users", len(chefs))
	}

	hosts, err := repo.ListByRole(ctx, RoleHost)
	if err != nil || hosts == nil || len(hosts) != 0 {
		t.Errorf("ListByRole() on empty role should return empty slice")
	}
}
