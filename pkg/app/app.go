// Package app reconciles local client state with the remote habit
// service. The Service is the single mutation path: it owns the user,
// the habit list, and the gamification state, and every remote outcome
// is merged back through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"tableflip.dev/habit/pkg/badge"
	"tableflip.dev/habit/pkg/gateway"
	"tableflip.dev/habit/pkg/habit"
	"tableflip.dev/habit/pkg/session"
)

// State tracks where the session is in its lifecycle.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

var (
	ErrNameRequired     = errors.New("app: habit name is required")
	ErrNotAuthenticated = errors.New("app: not logged in")
)

// Service orchestrates remote calls and keeps the local snapshots
// consistent with what the service last confirmed. Mutations are
// confirmation-first: nothing flips locally before the service answers.
type Service struct {
	mu      sync.Mutex
	session session.Store
	gateway gateway.API

	state  State
	user   *habit.User
	habits []*habit.Habit
	points int
	badges []badge.Badge
}

// New builds a Service. A token surviving from an earlier run resumes
// the authenticated state; the snapshots stay empty until a refresh.
func New(store session.Store, gw gateway.API) *Service {
	svc := &Service{session: store, gateway: gw}
	if _, ok := store.Token(); ok {
		svc.state = Authenticated
	}
	return svc
}

// State returns the session lifecycle state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// User returns the last confirmed user snapshot, nil before a refresh.
func (s *Service) User() *habit.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Habits returns the habit list in the service's order.
func (s *Service) Habits() []*habit.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*habit.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Points returns the user's total points.
func (s *Service) Points() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points
}

// Badges returns the earned badges, profile order first, toggle-earned
// badges appended after.
func (s *Service) Badges() []badge.Badge {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]badge.Badge, len(s.badges))
	copy(out, s.badges)
	return out
}

// Login authenticates with email and password.
func (s *Service) Login(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, gateway.ModeLogin, gateway.Credentials{Email: email, Password: password})
}

// Register creates an account and authenticates it.
func (s *Service) Register(ctx context.Context, username, email, password string) error {
	return s.authenticate(ctx, gateway.ModeRegister, gateway.Credentials{Username: username, Email: email, Password: password})
}

func (s *Service) authenticate(ctx context.Context, mode gateway.Mode, creds gateway.Credentials) error {
	s.setState(Authenticating)

	res, err := s.gateway.Authenticate(ctx, mode, creds)
	if err != nil {
		// Token untouched: a failed attempt does not disturb an
		// existing session.
		s.setState(Unauthenticated)
		return surface(err, "authentication failed")
	}

	if err := s.session.SetToken(res.Token); err != nil {
		s.setState(Unauthenticated)
		return fmt.Errorf("app: persist token: %w", err)
	}

	// Seed from the immediate response for instant feedback, then let
	// the full refresh bring the authoritative snapshots.
	s.mu.Lock()
	u := res.User
	s.user = &u
	s.points = u.TotalPoints
	s.badges = append([]badge.Badge(nil), u.Badges...)
	s.state = Authenticated
	s.mu.Unlock()

	s.RefreshAll(ctx)
	return nil
}

// Logout tears the session down. Safe to call in any state.
func (s *Service) Logout() {
	s.teardown()
}

// teardown clears the token and every snapshot derived from it. It is
// idempotent: clearing an already-cleared session is a no-op.
func (s *Service) teardown() {
	_ = s.session.Clear()
	s.mu.Lock()
	s.user = nil
	s.habits = nil
	s.badges = nil
	s.points = 0
	s.state = Unauthenticated
	s.mu.Unlock()
}

// RefreshOutcome reports the two halves of a refresh independently;
// either may fail without corrupting the other.
type RefreshOutcome struct {
	ProfileErr error
	HabitsErr  error
}

// Err returns the first surfaced failure, nil when both halves landed.
func (o RefreshOutcome) Err() error {
	if o.ProfileErr != nil {
		return o.ProfileErr
	}
	return o.HabitsErr
}

// RefreshAll fetches the profile and the habit list concurrently. Both
// outcomes are always observed: one half failing never blocks the
// other's data from applying. A 401 from either half overrides
// everything and tears the session down.
func (s *Service) RefreshAll(ctx context.Context) RefreshOutcome {
	if _, ok := s.session.Token(); !ok {
		return RefreshOutcome{ProfileErr: ErrNotAuthenticated, HabitsErr: ErrNotAuthenticated}
	}

	var (
		wg     sync.WaitGroup
		user   *habit.User
		habits []*habit.Habit
		uerr   error
		herr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, uerr = s.gateway.Profile(ctx)
	}()
	go func() {
		defer wg.Done()
		habits, herr = s.gateway.Habits(ctx)
	}()
	wg.Wait()

	if errors.Is(uerr, gateway.ErrUnauthorized) || errors.Is(herr, gateway.ErrUnauthorized) {
		s.teardown()
		return RefreshOutcome{ProfileErr: uerr, HabitsErr: herr}
	}

	s.mu.Lock()
	if uerr == nil {
		s.user = user
		s.points = user.TotalPoints
		// The profile is the authoritative full badge set: wholesale
		// replace, unlike the toggle path which appends.
		s.badges = append([]badge.Badge(nil), user.Badges...)
	}
	if herr == nil {
		s.habits = habits
	}
	s.mu.Unlock()

	return RefreshOutcome{
		ProfileErr: surface(uerr, "could not load profile"),
		HabitsErr:  surface(herr, "could not load habits"),
	}
}

// Toggle flips today's completion for the habit and reconciles the
// confirmed result: the one matching habit is replaced in place, the
// profile is re-fetched for points bookkeeping, and badges earned by
// this toggle are appended. Nothing mutates locally when the call
// fails. The returned badges are the ones this toggle earned.
func (s *Service) Toggle(ctx context.Context, habitID string) ([]badge.Badge, error) {
	if _, ok := s.session.Token(); !ok {
		return nil, ErrNotAuthenticated
	}

	res, err := s.gateway.Toggle(ctx, habitID)
	if errors.Is(err, gateway.ErrUnauthorized) {
		s.teardown()
		return nil, err
	}
	if err != nil {
		return nil, surface(err, "failed to toggle habit")
	}

	s.mu.Lock()
	for i, h := range s.habits {
		if h.ID == habitID {
			s.habits[i] = res.Habit
			break
		}
	}
	s.mu.Unlock()

	// Points and streak bookkeeping live server-side; re-fetch the
	// profile so totals stay in sync. A network failure here is
	// non-fatal, the toggle itself already landed.
	switch user, uerr := s.gateway.Profile(ctx); {
	case errors.Is(uerr, gateway.ErrUnauthorized):
		s.teardown()
		return nil, uerr
	case uerr == nil:
		s.mu.Lock()
		s.user = user
		s.points = user.TotalPoints
		s.badges = append([]badge.Badge(nil), user.Badges...)
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.badges = badge.MergeDedup(s.badges, res.NewBadges)
	s.mu.Unlock()

	return res.NewBadges, nil
}

// CreateHabit registers a new habit. An empty trimmed name is rejected
// locally and never reaches the network. On success the whole snapshot
// is refreshed so the list reflects the server-assigned fields instead
// of a locally fabricated habit.
func (s *Service) CreateHabit(ctx context.Context, name string, category habit.Category) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if _, ok := s.session.Token(); !ok {
		return ErrNotAuthenticated
	}

	_, err := s.gateway.CreateHabit(ctx, name, category)
	if errors.Is(err, gateway.ErrUnauthorized) {
		s.teardown()
		return err
	}
	if err != nil {
		return surface(err, "failed to create habit")
	}

	s.RefreshAll(ctx)
	return nil
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// surface reduces a failure to the single message shown to the user:
// the service's wording when it sent one, the fallback otherwise.
func surface(err error, fallback string) error {
	if err == nil {
		return nil
	}
	var remote *gateway.RemoteError
	if errors.As(err, &remote) && remote.Message != "" {
		return remote
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
