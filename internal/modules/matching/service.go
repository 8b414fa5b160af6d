// README: Ride matching simulator: synthesizes a full trip after a fixed delay.
package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"carona/internal/modules/trip"
	"carona/internal/modules/user"
	"carona/internal/types"
)

var ErrBadRequest = errors.New("destination must not be blank")

type Service struct {
	delay  time.Duration
	logger *slog.Logger

	// rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewService builds a simulator. rng may be nil, in which case a
// time-seeded source is used; tests inject a fixed seed.
func NewService(delay time.Duration, rng *rand.Rand, logger *slog.Logger) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{delay: delay, rng: rng, logger: logger}
}

// FindRide waits the simulated latency and returns a fully formed trip.
// The caller owns the timeout: a cancelled context is returned as-is so
// the session can map it to a retryable failure.
func (s *Service) FindRide(ctx context.Context, destination string) (*trip.Trip, error) {
	if strings.TrimSpace(destination) == "" {
		return nil, ErrBadRequest
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(s.delay):
	}

	t := s.synthesize(destination)
	s.logger.Info("ride matched",
		"trip_id", t.ID,
		"destination", t.Destination,
		"total_cost", t.TotalCost.String(),
		"duration_min", t.EstimatedMinutes,
	)
	return t, nil
}

func (s *Service) synthesize(destination string) *trip.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()

	passengers := s.drawPassengers()
	total := types.BRL(int64(minCostReais+s.rng.Intn(maxCostReais-minCostReais+1)) * 100)

	return &trip.Trip{
		ID:               types.NewID(),
		Origin:           origin,
		Destination:      destination,
		Date:             time.Now(),
		Driver:           mockDriver,
		Vehicle:          mockVehicle,
		Passengers:       passengers,
		CostPerPassenger: trip.CostShare(total, len(passengers)),
		TotalCost:        total,
		PickupCode:       fmt.Sprintf("ID-%d", pickupCodeBase+s.rng.Intn(pickupCodeSpan)),
		EstimatedMinutes: minDurationMinutes + s.rng.Intn(maxDurationMinutes-minDurationMinutes+1),
		SeatCapacity:     seatCapacity,
	}
}

func (s *Service) drawPassengers() []user.User {
	n := 1 + s.rng.Intn(maxCoPassengers)
	pool := make([]user.User, len(passengerPool))
	copy(pool, passengerPool)
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n]
}
