package tables

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeReservationRepo is an in-memory implementation of ReservationRepo.
type FakeReservationRepo struct {
	mu           sync.RWMutex
	reservations map[uuid.UUID]*Reservation
	order        []uuid.UUID
}

func NewFakeReservationRepo() *FakeReservationRepo {
	return &FakeReservationRepo{
		reservations: make(map[uuid.UUID]*Reservation),
		order:        make([]uuid.UUID, 0),
	}
}

func (r *FakeReservationRepo) Create(ctx context.Context, reservation *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[reservation.ID]; exists {
		return fail.New(fail.Conflict, "reservation already exists")
	}

	resCopy := *reservation
	r.reservations[reservation.ID] = &resCopy
	r.order = append(r.order, reservation.ID)
	return nil
}

func (r *FakeReservationRepo) Get(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, exists := r.reservations[id]
	if !exists {
		return nil, fail.New(fail.NotFound, "reservation not found")
	}

	resCopy := *reservation
	return &resCopy, nil
}

func (r *FakeReservationRepo) List(ctx context.Context) ([]*Reservation, error) {
	return r.listWhere(func(*Reservation) bool { return true })
}

func (r *FakeReservationRepo) ListByTable(ctx context.Context, tableID uuid.UUID) ([]*Reservation, error) {
	return r.listWhere(func(reservation *Reservation) bool {
		return reservation.TableID != nil && *reservation.TableID == tableID
	})
}

func (r *FakeReservationRepo) Save(ctx context.Context, reservation *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[reservation.ID]; !exists {
		return fail.New(fail.NotFound, "reservation not found")
	}

	resCopy := *reservation
	r.reservations[reservation.ID] = &resCopy
	return nil
}

func (r *FakeReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reservations[id]; !exists {
		return fail.New(fail.NotFound, "reservation not found")
	}

	delete(r.reservations, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *FakeReservationRepo) listWhere(match func(*Reservation) bool) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Reservation, 0)
	for _, id := range r.order {
		reservation := r.reservations[id]
		if match(reservation) {
			resCopy := *reservation
			result = append(result, &resCopy)
		}
	}
	return result, nil
}
