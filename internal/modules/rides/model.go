// README: Offered rides and passenger requests.
package rides

import (
	"time"

	"carona/internal/modules/user"
	"carona/internal/types"
)

// OfferedRide is a driver-published intent to drive to a destination
// with available seats. Append-only, never mutated.
type OfferedRide struct {
	ID          types.ID
	DriverID    types.ID
	Destination string
	Seats       int
	CreatedAt   time.Time
}

// PassengerRequest is a passenger's externally-recorded intent to find
// a ride. The list is sourced outside this core and read-only here.
type PassengerRequest struct {
	ID          types.ID
	Passenger   user.User
	Destination string
	CreatedAt   time.Time
}
