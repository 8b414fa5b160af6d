package user

import "testing"

func newTestService() *Service {
	return NewService(NewStore())
}

func TestLogin_NewAndExisting(t *testing.T) {
	svc := newTestService()

	u, existed, err := svc.Login("Maria")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if existed {
		t.Fatal("first login should create a fresh user")
	}
	if u.ID == "" || u.Name != "Maria" || u.AvatarURL == "" {
		t.Errorf("unexpected user: %+v", u)
	}

	// Case-insensitive match returns the same user.
	again, existed, err := svc.Login("  mArIa ")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if !existed {
		t.Fatal("second login should match the existing user")
	}
	if again.ID != u.ID {
		t.Errorf("expected same user, got %s and %s", u.ID, again.ID)
	}
}

func TestLogin_BlankName(t *testing.T) {
	svc := newTestService()
	if _, _, err := svc.Login("   "); err != ErrBadRequest {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestAssignRole_Once(t *testing.T) {
	svc := newTestService()
	u, _, _ := svc.Login("Joana")

	if err := svc.AssignRole(u.ID, RoleDriver); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if u.Role != RoleDriver {
		t.Errorf("role = %q, want driver", u.Role)
	}
	if err := svc.AssignRole(u.ID, RolePassenger); err != ErrRoleAlreadySet {
		t.Errorf("expected ErrRoleAlreadySet, got %v", err)
	}
	if err := svc.AssignRole(u.ID, Role("admin")); err != ErrRoleAlreadySet && err != ErrUnknownRole {
		t.Errorf("unexpected error for bogus role: %v", err)
	}
}

func TestAttachVehicle(t *testing.T) {
	svc := newTestService()
	u, _, _ := svc.Login("Pedro")
	_ = svc.AssignRole(u.ID, RoleDriver)

	tests := []struct {
		name    string
		vehicle Vehicle
		wantErr error
	}{
		{"blank make", Vehicle{Model: "Civic", Color: "Cinza", LicensePlate: "ABC1D23"}, ErrMissingFields},
		{"bad plate", Vehicle{Make: "Honda", Model: "Civic", Color: "Cinza", LicensePlate: "ABCD123"}, ErrInvalidPlate},
		{"lowercase plate accepted", Vehicle{Make: "Honda", Model: "Civic", Color: "Cinza", LicensePlate: "abc1d23"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.AttachVehicle(u.ID, tt.vehicle); err != tt.wantErr {
				t.Errorf("AttachVehicle() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if u.Vehicle == nil || u.Vehicle.LicensePlate != "ABC1D23" {
		t.Fatalf("vehicle not normalized and attached: %+v", u.Vehicle)
	}

	// A second registration is rejected.
	err := svc.AttachVehicle(u.ID, Vehicle{Make: "Fiat", Model: "Uno", Color: "Azul", LicensePlate: "XYZ-9876"})
	if err != ErrVehicleAlreadySet {
		t.Errorf("expected ErrVehicleAlreadySet, got %v", err)
	}
}
