// README: User registry service: login lookup, role pick, vehicle registration.
package user

import (
	"errors"
	"fmt"
	"strings"

	"carona/internal/types"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrBadRequest        = errors.New("bad request")
	ErrRoleAlreadySet    = errors.New("role already set")
	ErrUnknownRole       = errors.New("unknown role")
	ErrVehicleAlreadySet = errors.New("vehicle already registered")
	ErrMissingFields     = errors.New("vehicle fields must not be blank")
	ErrInvalidPlate      = errors.New("invalid license plate format")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Login returns the existing user matching name case-insensitively, or
// registers a fresh user with no role yet. The second result reports
// whether the user already existed.
func (s *Service) Login(name string) (*User, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, ErrBadRequest
	}
	if u, ok := s.store.FindByName(name); ok {
		return u, true, nil
	}
	u := &User{
		ID:        types.NewID(),
		Name:      name,
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name),
	}
	s.store.Create(u)
	return u, false, nil
}

func (s *Service) Get(id types.ID) (*User, error) {
	u, ok := s.store.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

// AssignRole sets the role exactly once.
func (s *Service) AssignRole(id types.ID, role Role) error {
	if role != RolePassenger && role != RoleDriver {
		return ErrUnknownRole
	}
	u, ok := s.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	if u.Role != RoleNone {
		return ErrRoleAlreadySet
	}
	u.Role = role
	return nil
}

// AttachVehicle validates and attaches the vehicle exactly once. The
// plate is normalized to upper case before validation.
func (s *Service) AttachVehicle(id types.ID, v Vehicle) error {
	u, ok := s.store.Get(id)
	if !ok {
		return ErrNotFound
	}
	if u.Vehicle != nil {
		return ErrVehicleAlreadySet
	}
	v.LicensePlate = NormalizePlate(v.LicensePlate)
	if strings.TrimSpace(v.Make) == "" || strings.TrimSpace(v.Model) == "" ||
		strings.TrimSpace(v.Color) == "" || v.LicensePlate == "" {
		return ErrMissingFields
	}
	if !ValidPlate(v.LicensePlate) {
		return ErrInvalidPlate
	}
	u.Vehicle = &v
	return nil
}
