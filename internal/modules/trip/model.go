// README: Trip record produced by the matching simulator.
package trip

import (
	"time"

	"carona/internal/modules/user"
	"carona/internal/types"
)

// Trip is the central record of a matched ride. It is created
// atomically by the matcher and immutable afterwards; live progress
// belongs to the progress engine, never to the trip itself.
type Trip struct {
	ID               types.ID
	Origin           string
	Destination      string
	Date             time.Time
	Driver           user.DriverProfile
	Vehicle          user.Vehicle
	Passengers       []user.User
	CostPerPassenger types.Money
	TotalCost        types.Money
	PickupCode       string
	EstimatedMinutes int
	SeatCapacity     int
}

// CostShare derives the per-passenger share from the canonical total:
// the total split across the co-passengers plus the rider.
func CostShare(total types.Money, coPassengers int) types.Money {
	return total.Split(coPassengers + 1)
}
