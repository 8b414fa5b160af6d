// README: HTTP handler tests over an in-process router.
package http

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"carona/internal/ai"
	"carona/internal/modules/matching"
	"carona/internal/modules/rides"
	"carona/internal/modules/user"
	"carona/internal/session"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	matcher := matching.NewService(2*time.Millisecond, rand.New(rand.NewSource(42)), nil)
	sess := session.New(session.Config{
		SearchTimeout:  time.Second,
		SummaryTimeout: time.Second,
		TickInterval:   time.Millisecond,
		SettleDelay:    time.Millisecond,
	}, session.Deps{
		Users:     user.NewService(user.NewStore()),
		Rides:     rides.NewService(rides.NewStore()),
		Matcher:   matcher,
		Summaries: ai.StaticProvider{},
	})
	return NewServer(ServerDeps{Session: sess}).Routes()
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeSnapshot(t *testing.T, w *httptest.ResponseRecorder) snapshotDTO {
	t.Helper()
	var snap snapshotDTO
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode snapshot: %v (body %s)", err, w.Body.String())
	}
	return snap
}

// waitForScreen polls the snapshot endpoint until the session reaches
// the wanted state.
func waitForScreen(t *testing.T, r *gin.Engine, want string) snapshotDTO {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		w := doJSON(t, r, http.MethodGet, "/api/session", nil)
		snap := decodeSnapshot(t, w)
		if snap.State == want {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("state never reached %s, stuck at %s", want, snap.State)
		}
		time.Sleep(2 * time.Millisecond)
	}
}

func TestHandleLogin(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Maria", Password: "ignored"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	snap := decodeSnapshot(t, w)
	if snap.State != "role_selection" {
		t.Errorf("state = %s, want role_selection", snap.State)
	}
	if snap.User == nil || snap.User.Name != "Maria" || snap.User.AvatarURL == "" {
		t.Errorf("user not populated: %+v", snap.User)
	}
}

func TestHandleLogin_BlankName(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "  "})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Error == "" {
		t.Errorf("expected error body, got %s", w.Body.String())
	}
}

func TestHandleVehicleRegistration(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Carlos"})
	doJSON(t, r, http.MethodPost, "/api/session/role", roleReq{Role: "driver"})

	bad := vehicleReq{Make: "Fiat", Model: "Argo", Color: "Prata", LicensePlate: "ABCD123"}
	if w := doJSON(t, r, http.MethodPost, "/api/session/vehicle", bad); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid plate status = %d", w.Code)
	}

	good := vehicleReq{Make: "Fiat", Model: "Argo", Color: "Prata", LicensePlate: "abc1d23"}
	w := doJSON(t, r, http.MethodPost, "/api/session/vehicle", good)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if snap := decodeSnapshot(t, w); snap.State != "driver_dashboard" {
		t.Errorf("state = %s, want driver_dashboard", snap.State)
	}
}

func TestRideFlow(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Maria"})
	doJSON(t, r, http.MethodPost, "/api/session/role", roleReq{Role: "passenger"})

	if w := doJSON(t, r, http.MethodPost, "/api/rides/find", nil); w.Code != http.StatusOK {
		t.Fatalf("find status = %d", w.Code)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/rides/search", searchReq{Destination: " "}); w.Code != http.StatusBadRequest {
		t.Fatalf("blank search status = %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/rides/search", searchReq{Destination: "Centro"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("search status = %d, want 202", w.Code)
	}
	if snap := decodeSnapshot(t, w); snap.State != "finding" {
		t.Fatalf("state = %s, want finding", snap.State)
	}

	snap := waitForScreen(t, r, "ride_found")
	if snap.Trip == nil || snap.Trip.Driver.Name == "" || snap.Trip.PickupCode == "" {
		t.Fatalf("trip not populated: %+v", snap.Trip)
	}

	// Payment is mandatory before the trip starts.
	if w := doJSON(t, r, http.MethodPost, "/api/rides/confirm", confirmReq{}); w.Code != http.StatusConflict {
		t.Fatalf("confirm without payment status = %d, want 409", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/rides/confirm", confirmReq{Payment: "pix"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm status = %d, body %s", w.Code, w.Body.String())
	}
	if snap := decodeSnapshot(t, w); snap.State != "in_progress" {
		t.Fatalf("state = %s, want in_progress", snap.State)
	}

	snap = waitForScreen(t, r, "completed")
	if snap.Progress.Percent != 100 || snap.Progress.TimeLeftMin != 0 {
		t.Errorf("final progress = %+v", snap.Progress)
	}
	if snap.HistoryLen != 1 {
		t.Errorf("history_len = %d, want 1", snap.HistoryLen)
	}

	if w := doJSON(t, r, http.MethodPost, "/api/rides/rate", rateReq{Stars: 5}); w.Code != http.StatusOK {
		t.Errorf("rate status = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/rides/rate", rateReq{Stars: 3}); w.Code != http.StatusConflict {
		t.Errorf("second rate status = %d, want 409", w.Code)
	}

	var hist struct {
		Trips []tripDTO `json:"trips"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/history", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.Trips) != 1 || hist.Trips[0].Destination != "Centro" {
		t.Errorf("unexpected history: %+v", hist.Trips)
	}
}

func TestConfirmFromWrongScreen(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Maria"})
	doJSON(t, r, http.MethodPost, "/api/session/role", roleReq{Role: "passenger"})

	if w := doJSON(t, r, http.MethodPost, "/api/rides/confirm", confirmReq{Payment: "pix"}); w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestHandleOffer(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Carlos"})
	doJSON(t, r, http.MethodPost, "/api/session/role", roleReq{Role: "driver"})
	doJSON(t, r, http.MethodPost, "/api/session/vehicle", vehicleReq{Make: "Fiat", Model: "Argo", Color: "Prata", LicensePlate: "XYZ-9876"})

	if w := doJSON(t, r, http.MethodPost, "/api/session/navigate", navigateReq{Screen: "offer_ride"}); w.Code != http.StatusOK {
		t.Fatalf("navigate status = %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/rides/offer", offerReq{Destination: "Praia Grande", Seats: 3})
	if w.Code != http.StatusCreated {
		t.Fatalf("offer status = %d, body %s", w.Code, w.Body.String())
	}
	if snap := decodeSnapshot(t, w); snap.State != "driver_dashboard" {
		t.Errorf("state = %s, want driver_dashboard", snap.State)
	}

	var offers struct {
		Offers []offerDTO `json:"offers"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/offers", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &offers); err != nil {
		t.Fatalf("decode offers: %v", err)
	}
	if len(offers.Offers) != 1 || offers.Offers[0].Destination != "Praia Grande" {
		t.Errorf("unexpected offers: %+v", offers.Offers)
	}

	var reqs struct {
		Requests []requestDTO `json:"requests"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/requests", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &reqs); err != nil {
		t.Fatalf("decode requests: %v", err)
	}
	if len(reqs.Requests) == 0 {
		t.Error("expected seeded passenger requests")
	}
}

func TestHandleNavigate_UnknownScreen(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Maria"})
	doJSON(t, r, http.MethodPost, "/api/session/role", roleReq{Role: "passenger"})

	if w := doJSON(t, r, http.MethodPost, "/api/session/navigate", navigateReq{Screen: "settings"}); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleLogout(t *testing.T) {
	r := newTestRouter(t)
	doJSON(t, r, http.MethodPost, "/api/session/login", loginReq{Name: "Maria"})
	doJSON(t, r, http.MethodPost, "/api/session/role", roleReq{Role: "passenger"})

	w := doJSON(t, r, http.MethodPost, "/api/session/logout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}
	snap := decodeSnapshot(t, w)
	if snap.State != "login" || snap.User != nil {
		t.Errorf("session not cleared: %+v", snap)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || w.Body.String() != "OK" {
		t.Errorf("health = %d %q", w.Code, w.Body.String())
	}
}
