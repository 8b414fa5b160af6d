package matching

import (
	"context"
	"math"
	"math/rand"
	"regexp"
	"testing"
	"time"
)

func fastService(seed int64) *Service {
	return NewService(time.Millisecond, rand.New(rand.NewSource(seed)), nil)
}

func TestFindRide_BlankDestination(t *testing.T) {
	svc := fastService(1)
	if _, err := svc.FindRide(context.Background(), "   "); err != ErrBadRequest {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestFindRide_CostSplitInvariant(t *testing.T) {
	// costPerPassenger == round(totalCost / (passengers + 1)) must hold
	// for every trip the simulator can produce.
	for seed := int64(0); seed < 50; seed++ {
		svc := fastService(seed)
		trip, err := svc.FindRide(context.Background(), "Centro")
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		heads := len(trip.Passengers) + 1
		want := int64(math.Round(float64(trip.TotalCost.Amount) / float64(heads)))
		if trip.CostPerPassenger.Amount != want {
			t.Errorf("seed %d: share = %d cents, want %d (total %d across %d)",
				seed, trip.CostPerPassenger.Amount, want, trip.TotalCost.Amount, heads)
		}
	}
}

func TestFindRide_Bounds(t *testing.T) {
	codeRe := regexp.MustCompile(`^ID-\d{4}$`)
	for seed := int64(0); seed < 50; seed++ {
		svc := fastService(seed)
		trip, err := svc.FindRide(context.Background(), "Aeroporto")
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if reais := trip.TotalCost.Amount / 100; reais < minCostReais || reais > maxCostReais {
			t.Errorf("seed %d: total cost R$%d out of bounds", seed, reais)
		}
		if trip.EstimatedMinutes < minDurationMinutes || trip.EstimatedMinutes > maxDurationMinutes {
			t.Errorf("seed %d: duration %d out of bounds", seed, trip.EstimatedMinutes)
		}
		if n := len(trip.Passengers); n < 1 || n > maxCoPassengers {
			t.Errorf("seed %d: %d co-passengers out of bounds", seed, n)
		}
		if !codeRe.MatchString(trip.PickupCode) {
			t.Errorf("seed %d: bad pickup code %q", seed, trip.PickupCode)
		}
		if trip.Origin != "Centro da Cidade" || trip.Destination != "Aeroporto" {
			t.Errorf("seed %d: unexpected endpoints %q -> %q", seed, trip.Origin, trip.Destination)
		}
		if trip.Driver.Name == "" || trip.Vehicle.Make == "" {
			t.Errorf("seed %d: partially formed trip", seed)
		}
	}
}

func TestFindRide_Reproducible(t *testing.T) {
	a, err := fastService(42).FindRide(context.Background(), "Centro")
	if err != nil {
		t.Fatal(err)
	}
	b, err := fastService(42).FindRide(context.Background(), "Centro")
	if err != nil {
		t.Fatal(err)
	}
	if a.TotalCost != b.TotalCost || a.EstimatedMinutes != b.EstimatedMinutes ||
		a.PickupCode != b.PickupCode || len(a.Passengers) != len(b.Passengers) {
		t.Errorf("same seed produced different trips:\n%+v\n%+v", a, b)
	}
}

func TestFindRide_CancelledContext(t *testing.T) {
	svc := NewService(time.Hour, rand.New(rand.NewSource(1)), nil)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := svc.FindRide(ctx, "Centro")
	if err != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}
