// README: Ride registry service: offer publication and reporting.
package rides

import (
	"errors"
	"strings"
	"time"

	"carona/internal/modules/user"
	"carona/internal/types"
)

var (
	ErrBlankDestination = errors.New("destination must not be blank")
	ErrInvalidSeats     = errors.New("seat count must be at least 1")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	s := &Service{store: store}
	s.store.SeedRequests(fixtureRequests())
	return s
}

// PublishOffer validates and appends a driver's offered ride.
func (s *Service) PublishOffer(driverID types.ID, destination string, seats int) (OfferedRide, error) {
	if strings.TrimSpace(destination) == "" {
		return OfferedRide{}, ErrBlankDestination
	}
	if seats < 1 {
		return OfferedRide{}, ErrInvalidSeats
	}
	o := OfferedRide{
		ID:          types.NewID(),
		DriverID:    driverID,
		Destination: strings.TrimSpace(destination),
		Seats:       seats,
		CreatedAt:   time.Now(),
	}
	s.store.AppendOffer(o)
	return o, nil
}

func (s *Service) OffersByDriver(driverID types.ID) []OfferedRide {
	return s.store.OffersByDriver(driverID)
}

func (s *Service) PassengerRequests() []PassengerRequest {
	return s.store.AllRequests()
}

// fixtureRequests stands in for the external request feed.
func fixtureRequests() []PassengerRequest {
	now := time.Now()
	return []PassengerRequest{
		{
			ID:          types.NewID(),
			Passenger:   user.User{ID: "req-01", Name: "Ana Souza", AvatarURL: "https://i.pravatar.cc/150?u=Ana"},
			Destination: "Aeroporto Internacional",
			CreatedAt:   now.Add(-25 * time.Minute),
		},
		{
			ID:          types.NewID(),
			Passenger:   user.User{ID: "req-02", Name: "Carlos Lima", AvatarURL: "https://i.pravatar.cc/150?u=Carlos"},
			Destination: "Shopping Norte",
			CreatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          types.NewID(),
			Passenger:   user.User{ID: "req-03", Name: "Beatriz Fonseca", AvatarURL: "https://i.pravatar.cc/150?u=Beatriz"},
			Destination: "Campus Universitário",
			CreatedAt:   now.Add(-45 * time.Second),
		},
	}
}
