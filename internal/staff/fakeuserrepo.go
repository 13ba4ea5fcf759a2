package staff

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeUserRepo is an in-memory implementation of UserRepo for testing and
// local development. Email uniqueness mirrors the mongo path's unique index.
type FakeUserRepo struct {
	mu     sync.RWMutex
	users  map[uuid.UUID]*User
	emails map[string]uuid.UUID
	order  []uuid.UUID
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users:  make(map[uuid.UUID]*User),
		emails: make(map[string]uuid.UUID),
		order:  make([]uuid.UUID, 0),
	}
}

func (r *FakeUserRepo) Create(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return fail.New(fail.Conflict, "user already exists")
	}
	email := NormalizeEmail(user.Email)
	if _, exists := r.emails[email]; exists {
		return fail.Newf(fail.Conflict, "email %s already registered", email)
	}

	userCopy := *user
	r.users[user.ID] = &userCopy
	r.emails[email] = user.ID
	r.order = append(r.order, user.ID)
	return nil
}

func (r *FakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "user not found")
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *FakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.emails[NormalizeEmail(email)]
	if !exists {
		return nil, fail.New(fail.NotFound, "user not found")
	}

	userCopy := *r.users[id]
	return &userCopy, nil
}

func (r *FakeUserRepo) List(ctx context.Context) ([]*User, error) {
	return r.listWhere(func(*User) bool { return true })
}

func (r *FakeUserRepo) ListByRole(ctx context.Context, role string) ([]*User, error) {
	return r.listWhere(func(user *User) bool {
		return user.Role == role
	})
}

func (r *FakeUserRepo) Save(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.users[user.ID]
	if !exists {
		return fail.New(fail.NotFound, "user not found")
	}

	email := NormalizeEmail(user.Email)
	if NormalizeEmail(existing.Email) != email {
		if _, taken := r.emails[email]; taken {
			return fail.Newf(fail.Conflict, "email %s already registered", email)
		}
		delete(r.emails, NormalizeEmail(existing.Email))
		r.emails[email] = user.ID
	}

	userCopy := *user
	r.users[user.ID] = &userCopy
	return nil
}

func (r *FakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[id]
	if !exists {
		return fail.New(fail.NotFound, "user not found")
	}

	delete(r.emails, NormalizeEmail(user.Email))
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeUserRepo) listWhere(match func(*User) bool) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*User, 0)
	for _, id := range r.order {
		user := r.users[id]
		if match(user) {
			userCopy := *user
			result = append(result, &userCopy)
		}
	}
	return result, nil
}
