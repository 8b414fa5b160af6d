// README: Append-only in-memory registries with read-only projections.
package rides

import (
	"sync"

	"carona/internal/types"
)

type Store struct {
	mu       sync.RWMutex
	offers   []OfferedRide
	requests []PassengerRequest
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) AppendOffer(o OfferedRide) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers = append(s.offers, o)
}

// OffersByDriver is a projection; it copies so callers cannot mutate
// the underlying collection.
func (s *Store) OffersByDriver(driverID types.ID) []OfferedRide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []OfferedRide
	for _, o := range s.offers {
		if o.DriverID == driverID {
			out = append(out, o)
		}
	}
	return out
}

func (s *Store) SeedRequests(reqs []PassengerRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, reqs...)
}

func (s *Store) AllRequests() []PassengerRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]PassengerRequest, len(s.requests))
	copy(out, s.requests)
	return out
}
