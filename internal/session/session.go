// README: Session state machine: owns the current user, trip, and screen state.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"carona/internal/ai"
	"carona/internal/maps"
	"carona/internal/modules/progress"
	"carona/internal/modules/rides"
	"carona/internal/modules/trip"
	"carona/internal/modules/user"
	"carona/internal/observability"
	"carona/internal/types"
)

// Matcher is the ride matching collaborator.
type Matcher interface {
	FindRide(ctx context.Context, destination string) (*trip.Trip, error)
}

// RouteEstimator is the optional map/route display collaborator.
type RouteEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string) (time.Duration, string, error)
}

type Config struct {
	SearchTimeout  time.Duration
	SummaryTimeout time.Duration
	TickInterval   time.Duration
	SettleDelay    time.Duration
}

func (c *Config) applyDefaults() {
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = 10 * time.Second
	}
	if c.SummaryTimeout <= 0 {
		c.SummaryTimeout = 15 * time.Second
	}
	if c.TickInterval <= 0 {
		c.TickInterval = progress.DefaultTickInterval
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = progress.DefaultSettleDelay
	}
}

type Deps struct {
	Users     *user.Service
	Rides     *rides.Service
	Matcher   Matcher
	Summaries ai.SummaryProvider
	Routes    RouteEstimator // nil when no maps key is configured
	Logger    *slog.Logger
}

// Session is the explicit context object for the single active user.
// Created at process start, reset on logout. All events are serialized
// through its mutex.
type Session struct {
	cfg  Config
	deps Deps

	mu          sync.Mutex
	state       State
	user        *user.User
	trip        *trip.Trip
	destination string
	errMsg      string
	payment     string
	rating      int
	history     []*trip.Trip

	engine   *progress.Engine
	progress progress.Update

	summary   string
	routeInfo string

	// searchGen guards against a stale match being applied after the
	// search that produced it was superseded or abandoned.
	searchGen    int
	searchCancel context.CancelFunc
	searchStart  time.Time

	subs    map[int]chan progress.Update
	nextSub int
}

func New(cfg Config, deps Deps) *Session {
	cfg.applyDefaults()
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &Session{
		cfg:   cfg,
		deps:  deps,
		state: StateLogin,
		subs:  make(map[int]chan progress.Update),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// roleDashboard is the single exhaustive role switch; every "return to
// dashboard" path goes through it.
func roleDashboard(r user.Role) State {
	switch r {
	case user.RoleDriver:
		return StateDriverDashboard
	default:
		return StateDashboard
	}
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Login resolves the name against the directory: an existing user with
// a role lands on their dashboard, everyone else picks a role first. A
// driver who never finished vehicle registration resumes it.
func (s *Session) Login(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateLogin {
		return ErrInvalidState
	}
	if strings.TrimSpace(name) == "" {
		s.errMsg = msgMissingName
		return validationErr(msgMissingName)
	}
	u, existed, err := s.deps.Users.Login(name)
	if err != nil {
		return err
	}
	s.user = u
	s.errMsg = ""

	target := StateRoleSelection
	if existed && u.Role != user.RoleNone {
		target = roleDashboard(u.Role)
		if u.Role == user.RoleDriver && u.Vehicle == nil {
			target = StateDriverRegistration
		}
	}
	s.deps.Logger.Info("login", "user", u.Name, "existing", existed, "target", string(target))
	return s.transition(target)
}

// SelectRole assigns the role once; drivers go on to vehicle
// registration, passengers straight to the dashboard.
func (s *Session) SelectRole(role user.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRoleSelection || s.user == nil {
		return ErrInvalidState
	}
	if err := s.deps.Users.AssignRole(s.user.ID, role); err != nil {
		return err
	}
	if role == user.RoleDriver {
		return s.transition(StateDriverRegistration)
	}
	return s.transition(StateDashboard)
}

// RegisterVehicle validates the vehicle form. Failures keep the state
// and surface a field-level message.
func (s *Session) RegisterVehicle(v user.Vehicle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDriverRegistration || s.user == nil {
		return ErrInvalidState
	}
	switch err := s.deps.Users.AttachVehicle(s.user.ID, v); err {
	case nil:
	case user.ErrMissingFields:
		s.errMsg = msgMissingVehicleField
		return validationErr(msgMissingVehicleField)
	case user.ErrInvalidPlate:
		s.errMsg = msgInvalidPlate
		return validationErr(msgInvalidPlate)
	default:
		return err
	}
	s.errMsg = ""
	return s.transition(StateDriverDashboard)
}

// FindRide opens the destination form.
func (s *Session) FindRide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateDashboard && s.state != StateDriverDashboard {
		return ErrInvalidState
	}
	s.destination = ""
	s.errMsg = ""
	return s.transition(StateSearching)
}

// Search validates the destination and starts the bounded asynchronous
// match. A blank destination keeps the searching state with an error.
func (s *Session) Search(destination string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSearching {
		return ErrInvalidState
	}
	if strings.TrimSpace(destination) == "" {
		s.errMsg = msgMissingDestination
		return validationErr(msgMissingDestination)
	}
	s.destination = destination
	s.errMsg = ""
	if err := s.transition(StateFinding); err != nil {
		return err
	}

	s.searchGen++
	gen := s.searchGen
	s.searchStart = time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SearchTimeout)
	s.searchCancel = cancel

	go func() {
		defer cancel()
		t, err := s.deps.Matcher.FindRide(ctx, destination)
		s.applyMatch(gen, t, err)
	}()
	return nil
}

// applyMatch applies a match result only if the session is still in
// FINDING and the generation matches; anything else is a stale result
// from a superseded search and is discarded.
func (s *Session) applyMatch(gen int, t *trip.Trip, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateFinding || gen != s.searchGen {
		s.deps.Logger.Debug("discarding stale match result", "generation", gen)
		return
	}
	s.searchCancel = nil
	if err != nil {
		observability.MatchFailuresTotal.Inc()
		s.deps.Logger.Warn("match failed", "error", err)
		s.errMsg = msgNoRideFound
		_ = s.transition(StateSearching)
		return
	}
	observability.MatchesTotal.Inc()
	observability.MatchLatency.Observe(time.Since(s.searchStart).Seconds())
	s.trip = t
	_ = s.transition(StateRideFound)
}

// ConfirmRide requires a selected payment method; without one the
// guard blocks and the state is unchanged. On success the progress
// engine starts and the summary and route providers are kicked off in
// the background.
func (s *Session) ConfirmRide(payment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRideFound || s.trip == nil {
		return ErrInvalidState
	}
	if !paymentMethods[payment] {
		return ErrPaymentRequired
	}
	if err := s.transition(StateInProgress); err != nil {
		return err
	}
	s.payment = payment
	observability.ActiveTrips.Inc()

	t := s.trip
	s.progress = progress.Update{Percent: 0, TimeLeftMin: t.EstimatedMinutes}
	s.engine = progress.Start(progress.Config{
		DurationMinutes: t.EstimatedMinutes,
		TickInterval:    s.cfg.TickInterval,
		SettleDelay:     s.cfg.SettleDelay,
		OnTick:          func(u progress.Update) { s.handleTick(u) },
		OnComplete:      func() { s.handleCompletion(t.ID) },
	})

	s.summary = ""
	s.routeInfo = ""
	go s.fetchSummary(t)
	go s.fetchRoute(t)
	return nil
}

func (s *Session) handleTick(u progress.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return
	}
	s.progress = u
	for _, ch := range s.subs {
		select {
		case ch <- u:
		default: // slow subscriber, drop the tick
		}
	}
}

// handleCompletion appends the trip to history exactly once; a stale
// signal after logout or cancellation is ignored.
func (s *Session) handleCompletion(tripID types.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress || s.trip == nil || s.trip.ID != tripID {
		return
	}
	s.progress = progress.Update{Percent: 100, TimeLeftMin: 0}
	s.history = append(s.history, s.trip)
	s.engine = nil
	observability.ActiveTrips.Dec()
	observability.TripsCompleted.Inc()
	s.deps.Logger.Info("trip completed", "trip_id", s.trip.ID, "destination", s.trip.Destination)
	_ = s.transition(StateCompleted)
}

func (s *Session) fetchSummary(t *trip.Trip) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SummaryTimeout)
	defer cancel()
	text, err := s.deps.Summaries.Summarize(ctx, t)
	if err != nil {
		s.deps.Logger.Warn("trip summary unavailable, using fallback", "error", err)
		text = ai.FallbackSummary
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip != nil && s.trip.ID == t.ID {
		s.summary = text
	}
}

func (s *Session) fetchRoute(t *trip.Trip) {
	if s.deps.Routes == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.trip != nil && s.trip.ID == t.ID {
			s.routeInfo = maps.FallbackNotice
		}
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.SummaryTimeout)
	defer cancel()
	dur, dist, err := s.deps.Routes.GetTravelEstimate(ctx, t.Origin, t.Destination)
	info := maps.FallbackNotice
	if err == nil {
		info = fmt.Sprintf("%s, aprox. %d min", dist, int(dur.Minutes()))
	} else {
		s.deps.Logger.Warn("route estimate unavailable", "error", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trip != nil && s.trip.ID == t.ID {
		s.routeInfo = info
	}
}

// CancelRide discards the found trip and returns to the role dashboard.
func (s *Session) CancelRide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRideFound || s.user == nil {
		return ErrInvalidState
	}
	s.dropTrip()
	return s.transition(roleDashboard(s.user.Role))
}

// RateTrip records a 1-5 star rating once, on the completed screen.
func (s *Session) RateTrip(stars int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted {
		return ErrInvalidState
	}
	if stars < 1 || stars > 5 {
		return validationErr("avaliação deve ser de 1 a 5 estrelas")
	}
	if s.rating != 0 {
		return ErrAlreadyRated
	}
	s.rating = stars
	return nil
}

// NewSearch leaves the completed screen for the role-appropriate
// dashboard, dropping trip, destination, and error.
func (s *Session) NewSearch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCompleted || s.user == nil {
		return ErrInvalidState
	}
	s.dropTrip()
	s.destination = ""
	s.errMsg = ""
	s.rating = 0
	return s.transition(roleDashboard(s.user.Role))
}

// ShowHistory, ShowOfferForm, ShowRidesReport, and ShowPassengerBoard
// are side branches; Back returns to the caller's dashboard.

func (s *Session) ShowHistory() error {
	return s.sideBranch(StateHistory)
}

func (s *Session) ShowOfferForm() error {
	return s.sideBranch(StateOfferRide)
}

func (s *Session) ShowRidesReport() error {
	return s.sideBranch(StateRidesReport)
}

func (s *Session) ShowPassengerBoard() error {
	return s.sideBranch(StatePassengerBoard)
}

func (s *Session) sideBranch(target State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrInvalidState
	}
	return s.transition(target)
}

func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrInvalidState
	}
	switch s.state {
	case StateHistory, StateOfferRide, StateRidesReport, StatePassengerBoard, StateSearching:
		return s.transition(roleDashboard(s.user.Role))
	default:
		return ErrInvalidState
	}
}

// OfferRide publishes a driver's ride offer and lands on the driver
// dashboard.
func (s *Session) OfferRide(destination string, seats int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrInvalidState
	}
	switch s.state {
	case StateOfferRide, StateDashboard, StateDriverDashboard:
	default:
		return ErrInvalidState
	}
	// Validate the landing transition before touching the registry so a
	// rejected event leaves no partial state behind.
	if s.state != StateDriverDashboard && !CanTransition(s.state, StateDriverDashboard) {
		return ErrInvalidState
	}
	o, err := s.deps.Rides.PublishOffer(s.user.ID, destination, seats)
	if err != nil {
		s.errMsg = msgOfferValidation
		return validationErr(msgOfferValidation)
	}
	s.errMsg = ""
	s.deps.Logger.Info("ride offered", "offer_id", o.ID, "destination", o.Destination, "seats", o.Seats)
	if s.state == StateDriverDashboard {
		return nil
	}
	return s.transition(StateDriverDashboard)
}

func (s *Session) MyOffers() []rides.OfferedRide {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	return s.deps.Rides.OffersByDriver(s.user.ID)
}

func (s *Session) PassengerRequests() []rides.PassengerRequest {
	return s.deps.Rides.PassengerRequests()
}

func (s *Session) History() []*trip.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*trip.Trip, len(s.history))
	copy(out, s.history)
	return out
}

// Logout clears every piece of session state, cancels any in-flight
// search and progress ticker, and returns to the login screen. The
// user directory itself survives; only the session is torn down.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.searchCancel != nil {
		s.searchCancel()
		s.searchCancel = nil
	}
	s.searchGen++ // any in-flight result becomes stale
	if s.engine != nil {
		s.engine.Stop()
		s.engine = nil
	}
	s.closeSubs()
	s.user = nil
	s.trip = nil
	s.destination = ""
	s.errMsg = ""
	s.payment = ""
	s.rating = 0
	s.history = nil
	s.summary = ""
	s.routeInfo = ""
	s.progress = progress.Update{}
	s.state = StateLogin
	return nil
}

// dropTrip releases the trip and everything derived from it, ending
// any live progress streams.
func (s *Session) dropTrip() {
	if s.engine != nil {
		s.engine.Stop()
		s.engine = nil
	}
	s.trip = nil
	s.payment = ""
	s.summary = ""
	s.routeInfo = ""
	s.progress = progress.Update{}
	s.closeSubs()
}

// closeSubs closes and forgets every subscriber channel. Callers hold
// the mutex; a later cancel from Subscribe is a no-op delete.
func (s *Session) closeSubs() {
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// transition moves to target after checking the table.
func (s *Session) transition(target State) error {
	if !CanTransition(s.state, target) {
		return ErrInvalidState
	}
	s.state = target
	return nil
}

// Subscribe registers a progress observer. The channel is closed when
// the trip is dropped or the session logs out; the returned cancel
// must still be called to release the registration.
func (s *Session) Subscribe() (<-chan progress.Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan progress.Update, 8)
	s.subs[id] = ch
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
	return ch, cancel
}

// Snapshot is a point-in-time copy of everything a client renders.
type Snapshot struct {
	State       State
	User        *user.User
	Trip        *trip.Trip
	Destination string
	Error       string
	Payment     string
	Rating      int
	Progress    progress.Update
	Summary     string
	RouteInfo   string
	HistoryLen  int
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:       s.state,
		User:        s.user,
		Trip:        s.trip,
		Destination: s.destination,
		Error:       s.errMsg,
		Payment:     s.payment,
		Rating:      s.rating,
		Progress:    s.progress,
		Summary:     s.summary,
		RouteInfo:   s.routeInfo,
		HistoryLen:  len(s.history),
	}
}
