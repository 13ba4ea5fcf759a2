package kitchen

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/brigadeclub/brigade/pkg/fail"
)

// FakeStationRepo provides an in-memory implementation of StationRepo for
// development and tests.
type FakeStationRepo struct {
	mu       sync.RWMutex
	stations map[uuid.UUID]*Station
	sequence []uuid.UUID
}

func NewFakeStationRepo() *FakeStationRepo {
	return &FakeStationRepo{
		stations: make(map[uuid.UUID]*Station),
	}
}

func (r *FakeStationRepo) Create(ctx context.Context, station *Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stations[station.ID]; exists {
		return fail.Newf(fail.Conflict, "station %s already exists", station.ID)
	}

	stationCopy := *station
	r.stations[station.ID] = &stationCopy
	r.sequence = append(r.sequence, station.ID)
	return nil
}

func (r *FakeStationRepo) Get(ctx context.Context, id uuid.UUID) (*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	station, exists := r.stations[id]
	if !exists {
		return nil, fail.Newf(fail.NotFound, "station %s not found", id)
	}

	stationCopy := *station
	return &stationCopy, nil
}

func (r *FakeStationRepo) List(ctx context.Context) ([]*Station, error) {
	return r.listWhere(func(*Station) bool { return true })
}

func (r *FakeStationRepo) ListByType(ctx context.Context, stationType string) ([]*Station, error) {
	return r.listWhere(func(s *Station) bool { return s.Type == stationType })
}

func (r *FakeStationRepo) listWhere(keep func(*Station) bool) ([]*Station, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Station, 0, len(r.stations))
	for _, id := range r.sequence {
		station, exists := r.stations[id]
		if !exists || !keep(station) {
			continue
		}
		stationCopy := *station
		result = append(result, &stationCopy)
	}
	return result, nil
}

func (r *FakeStationRepo) Save(ctx context.Context, station *Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stations[station.ID]; !exists {
		return fail.Newf(fail.NotFound, "station %s not found", station.ID)
	}

	stationCopy := *station
	r.stations[station.ID] = &stationCopy
	return nil
}

func (r *FakeStationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stations[id]; !exists {
		return fail.Newf(fail.NotFound, "station %s not found", id)
	}

	delete(r.stations, id)
	return nil
}
