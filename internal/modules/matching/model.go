// README: Fixture data and bounds for the ride matching simulator.
package matching

import (
	"time"

	"carona/internal/modules/user"
)

const (
	// DefaultDelay mimics the network latency of a real matching backend.
	DefaultDelay = 2500 * time.Millisecond

	origin = "Centro da Cidade"

	// Total cost is uniform over whole reais in [minCostReais, maxCostReais].
	minCostReais = 40
	maxCostReais = 70

	minDurationMinutes = 15
	maxDurationMinutes = 45

	// Pickup codes read ID-1000 .. ID-9999.
	pickupCodeBase = 1000
	pickupCodeSpan = 9000

	seatCapacity = 4

	maxCoPassengers = 3
)

var mockDriver = user.DriverProfile{
	User: user.User{
		ID:        "driver-01",
		Name:      "Ricardo",
		AvatarURL: "https://picsum.photos/id/1005/100/100",
		Role:      user.RoleDriver,
	},
	Rating:     4.9,
	TotalTrips: 124,
}

var mockVehicle = user.Vehicle{
	Make:         "Honda",
	Model:        "Civic",
	Color:        "Cinza",
	LicensePlate: "BRA-2E19",
}

// passengerPool supplies co-passengers; each match draws a bounded
// random prefix of a shuffled copy.
var passengerPool = []user.User{
	{ID: "pass-01", Name: "Juliana", AvatarURL: "https://picsum.photos/id/1011/100/100"},
	{ID: "pass-02", Name: "Marcos", AvatarURL: "https://picsum.photos/id/1025/100/100"},
	{ID: "pass-03", Name: "Fernanda", AvatarURL: "https://picsum.photos/id/1027/100/100"},
	{ID: "pass-04", Name: "Paulo", AvatarURL: "https://picsum.photos/id/1074/100/100"},
}
