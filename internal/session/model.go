// README: Screen states, transition table, and session-level errors.
package session

import "errors"

// State is the single current screen of the application; states are
// mutually exclusive.
type State string

const (
	StateLogin              State = "login"
	StateRoleSelection      State = "role_selection"
	StateDriverRegistration State = "driver_registration"
	StateDashboard          State = "dashboard"
	StateDriverDashboard    State = "driver_dashboard"
	StateSearching          State = "searching"
	StateFinding            State = "finding"
	StateRideFound          State = "ride_found"
	StateInProgress         State = "in_progress"
	StateCompleted          State = "completed"
	StateHistory            State = "history"
	StateOfferRide          State = "offer_ride"
	StateRidesReport        State = "driver_rides_report"
	StatePassengerBoard     State = "driver_passenger_dashboard"
)

// AllowedTransitions represents the screen flow as code. Logout is
// modeled as the StateLogin target present in every row.
var AllowedTransitions = map[State][]State{
	StateLogin:              {StateRoleSelection, StateDashboard, StateDriverDashboard, StateDriverRegistration},
	StateRoleSelection:      {StateDriverRegistration, StateDashboard, StateLogin},
	StateDriverRegistration: {StateDriverDashboard, StateLogin},
	StateDashboard:          {StateSearching, StateHistory, StateOfferRide, StateDriverDashboard, StateLogin},
	StateDriverDashboard:    {StateSearching, StateHistory, StateOfferRide, StateRidesReport, StatePassengerBoard, StateLogin},
	StateSearching:          {StateFinding, StateDashboard, StateDriverDashboard, StateLogin},
	StateFinding:            {StateRideFound, StateSearching, StateLogin},
	StateRideFound:          {StateInProgress, StateDashboard, StateDriverDashboard, StateLogin},
	StateInProgress:         {StateCompleted, StateLogin},
	StateCompleted:          {StateDashboard, StateDriverDashboard, StateLogin},
	StateHistory:            {StateDashboard, StateDriverDashboard, StateLogin},
	StateOfferRide:          {StateDriverDashboard, StateDashboard, StateLogin},
	StateRidesReport:        {StateDriverDashboard, StateLogin},
	StatePassengerBoard:     {StateDriverDashboard, StateLogin},
}

func CanTransition(from, to State) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

var (
	ErrInvalidState    = errors.New("invalid state transition")
	ErrValidation      = errors.New("validation failed")
	ErrPaymentRequired = errors.New("payment method not selected")
	ErrAlreadyRated    = errors.New("trip already rated")
)

// User-facing messages kept verbatim from the product copy.
const (
	msgMissingName         = "Por favor, insira seu nome para continuar."
	msgMissingDestination  = "Por favor, insira um destino."
	msgNoRideFound         = "Não foi possível encontrar uma carona. Tente novamente mais tarde."
	msgMissingVehicleField = "Por favor, preencha todos os campos."
	msgInvalidPlate        = "Formato de placa inválido. Use AAA-1234 ou ABC1D23."
	msgOfferValidation     = "Informe destino e pelo menos um lugar disponível."
)

// paymentMethods the ride-found screen offers.
var paymentMethods = map[string]bool{
	"credit": true,
	"debit":  true,
	"pix":    true,
	"cash":   true,
}
