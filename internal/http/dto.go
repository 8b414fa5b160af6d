// README: JSON shapes exchanged with the client.
package http

import (
	"time"

	"carona/internal/modules/rides"
	"carona/internal/modules/trip"
	"carona/internal/modules/user"
	"carona/internal/session"
	"carona/internal/types"
)

type moneyDTO struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Display     string `json:"display"`
}

func toMoney(m types.Money) moneyDTO {
	return moneyDTO{AmountCents: m.Amount, Currency: m.Currency, Display: m.String()}
}

type userDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role,omitempty"`
}

func toUser(u *user.User) *userDTO {
	if u == nil {
		return nil
	}
	return &userDTO{ID: string(u.ID), Name: u.Name, AvatarURL: u.AvatarURL, Role: string(u.Role)}
}

type driverDTO struct {
	userDTO
	Rating     float64 `json:"rating"`
	TotalTrips int     `json:"total_trips"`
}

type vehicleDTO struct {
	Make         string `json:"make"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	LicensePlate string `json:"license_plate"`
}

type tripDTO struct {
	ID               string     `json:"id"`
	Origin           string     `json:"origin"`
	Destination      string     `json:"destination"`
	Date             time.Time  `json:"date"`
	Driver           driverDTO  `json:"driver"`
	Vehicle          vehicleDTO `json:"vehicle"`
	Passengers       []userDTO  `json:"passengers"`
	CostPerPassenger moneyDTO   `json:"cost_per_passenger"`
	TotalCost        moneyDTO   `json:"total_cost"`
	PickupCode       string     `json:"pickup_code"`
	EstimatedMinutes int        `json:"estimated_minutes"`
	SeatCapacity     int        `json:"seat_capacity"`
}

func toTrip(t *trip.Trip) *tripDTO {
	if t == nil {
		return nil
	}
	passengers := make([]userDTO, len(t.Passengers))
	for i, p := range t.Passengers {
		passengers[i] = *toUser(&p)
	}
	return &tripDTO{
		ID:          string(t.ID),
		Origin:      t.Origin,
		Destination: t.Destination,
		Date:        t.Date,
		Driver: driverDTO{
			userDTO:    *toUser(&t.Driver.User),
			Rating:     t.Driver.Rating,
			TotalTrips: t.Driver.TotalTrips,
		},
		Vehicle: vehicleDTO{
			Make:         t.Vehicle.Make,
			Model:        t.Vehicle.Model,
			Color:        t.Vehicle.Color,
			LicensePlate: t.Vehicle.LicensePlate,
		},
		Passengers:       passengers,
		CostPerPassenger: toMoney(t.CostPerPassenger),
		TotalCost:        toMoney(t.TotalCost),
		PickupCode:       t.PickupCode,
		EstimatedMinutes: t.EstimatedMinutes,
		SeatCapacity:     t.SeatCapacity,
	}
}

type progressDTO struct {
	Percent     int `json:"percent"`
	TimeLeftMin int `json:"time_left_min"`
}

type snapshotDTO struct {
	State       string      `json:"state"`
	User        *userDTO    `json:"user,omitempty"`
	Trip        *tripDTO    `json:"trip,omitempty"`
	Destination string      `json:"destination,omitempty"`
	Error       string      `json:"error,omitempty"`
	Payment     string      `json:"payment,omitempty"`
	Rating      int         `json:"rating,omitempty"`
	Progress    progressDTO `json:"progress"`
	Summary     string      `json:"summary,omitempty"`
	RouteInfo   string      `json:"route_info,omitempty"`
	HistoryLen  int         `json:"history_len"`
}

func toSnapshot(s session.Snapshot) snapshotDTO {
	return snapshotDTO{
		State:       string(s.State),
		User:        toUser(s.User),
		Trip:        toTrip(s.Trip),
		Destination: s.Destination,
		Error:       s.Error,
		Payment:     s.Payment,
		Rating:      s.Rating,
		Progress:    progressDTO{Percent: s.Progress.Percent, TimeLeftMin: s.Progress.TimeLeftMin},
		Summary:     s.Summary,
		RouteInfo:   s.RouteInfo,
		HistoryLen:  s.HistoryLen,
	}
}

type offerDTO struct {
	ID          string    `json:"id"`
	DriverID    string    `json:"driver_id"`
	Destination string    `json:"destination"`
	Seats       int       `json:"seats"`
	CreatedAt   time.Time `json:"created_at"`
}

func toOffers(offers []rides.OfferedRide) []offerDTO {
	out := make([]offerDTO, len(offers))
	for i, o := range offers {
		out[i] = offerDTO{
			ID:          string(o.ID),
			DriverID:    string(o.DriverID),
			Destination: o.Destination,
			Seats:       o.Seats,
			CreatedAt:   o.CreatedAt,
		}
	}
	return out
}

type requestDTO struct {
	ID          string    `json:"id"`
	Passenger   userDTO   `json:"passenger"`
	Destination string    `json:"destination"`
	CreatedAt   time.Time `json:"created_at"`
}

func toRequests(reqs []rides.PassengerRequest) []requestDTO {
	out := make([]requestDTO, len(reqs))
	for i, r := range reqs {
		out[i] = requestDTO{
			ID:          string(r.ID),
			Passenger:   *toUser(&r.Passenger),
			Destination: r.Destination,
			CreatedAt:   r.CreatedAt,
		}
	}
	return out
}
