// README: User aggregate, role tags, and vehicle definition.
package user

import "carona/internal/types"

type Role string

const (
	RoleNone      Role = ""
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
)

// User identity (ID, Name) is immutable after registration. Role is
// assigned once at role selection and Vehicle once at driver
// registration, always by the owner's own actions.
type User struct {
	ID        types.ID
	Name      string
	AvatarURL string
	Role      Role
	Vehicle   *Vehicle
}

type Vehicle struct {
	Make         string
	Model        string
	Color        string
	LicensePlate string
}

// DriverProfile is the role-qualified view of a user shown to
// passengers. Rating and TotalTrips are display values synthesized by
// the matcher, never accumulated from real trips.
type DriverProfile struct {
	User
	Rating     float64
	TotalTrips int
}
