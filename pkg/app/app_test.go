package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"tableflip.dev/habit/pkg/badge"
	"tableflip.dev/habit/pkg/gateway"
	"tableflip.dev/habit/pkg/habit"
)

type memorySession struct {
	mu    sync.Mutex
	token string
}

func (m *memorySession) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memorySession) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memorySession) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

type fakeGateway struct {
	mu    sync.Mutex
	calls map[string]int

	authFn    func(mode gateway.Mode, creds gateway.Credentials) (*gateway.AuthResult, error)
	profileFn func() (*habit.User, error)
	habitsFn  func() ([]*habit.Habit, error)
	createFn  func(name string, category habit.Category) (*habit.Habit, error)
	toggleFn  func(habitID string) (*gateway.ToggleResult, error)
}

func (f *fakeGateway) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
}

func (f *fakeGateway) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeGateway) Authenticate(_ context.Context, mode gateway.Mode, creds gateway.Credentials) (*gateway.AuthResult, error) {
	f.record("authenticate")
	return f.authFn(mode, creds)
}

func (f *fakeGateway) Profile(context.Context) (*habit.User, error) {
	f.record("profile")
	return f.profileFn()
}

func (f *fakeGateway) Habits(context.Context) ([]*habit.Habit, error) {
	f.record("habits")
	return f.habitsFn()
}

func (f *fakeGateway) CreateHabit(_ context.Context, name string, category habit.Category) (*habit.Habit, error) {
	f.record("create")
	return f.createFn(name, category)
}

func (f *fakeGateway) Toggle(_ context.Context, habitID string) (*gateway.ToggleResult, error) {
	f.record("toggle")
	return f.toggleFn(habitID)
}

func testUser(points int, badges ...badge.ID) *habit.User {
	u := &habit.User{ID: "u1", Username: "ann", Email: "a@b.c", TotalPoints: points}
	for _, id := range badges {
		u.Badges = append(u.Badges, badge.Badge{ID: id})
	}
	return u
}

func testHabit(id, name string, streak int) *habit.Habit {
	return &habit.Habit{ID: id, Name: name, Category: habit.Health, Streak: streak}
}

func steadyGateway() *fakeGateway {
	return &fakeGateway{
		profileFn: func() (*habit.User, error) { return testUser(40, badge.WeekWarrior), nil },
		habitsFn: func() ([]*habit.Habit, error) {
			return []*habit.Habit{testHabit("h1", "Read", 4), testHabit("h2", "Run", 1)}, nil
		},
	}
}

func TestNewResumesSessionFromToken(t *testing.T) {
	store := &memorySession{token: "persisted"}
	svc := New(store, steadyGateway())
	if svc.State() != Authenticated {
		t.Fatalf("state = %v, want authenticated", svc.State())
	}

	svc = New(&memorySession{}, steadyGateway())
	if svc.State() != Unauthenticated {
		t.Fatalf("state = %v, want unauthenticated", svc.State())
	}
}

func TestLoginSeedsUserThenRefreshes(t *testing.T) {
	gw := steadyGateway()
	gw.authFn = func(mode gateway.Mode, creds gateway.Credentials) (*gateway.AuthResult, error) {
		if mode != gateway.ModeLogin {
			t.Fatalf("mode = %v", mode)
		}
		if creds.Email != "a@b.c" || creds.Password != "pw" {
			t.Fatalf("credentials = %#v", creds)
		}
		return &gateway.AuthResult{Token: "tok-1", User: *testUser(10)}, nil
	}

	store := &memorySession{}
	svc := New(store, gw)
	if err := svc.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if token, ok := store.Token(); !ok || token != "tok-1" {
		t.Fatalf("token = %q, %v", token, ok)
	}
	if svc.State() != Authenticated {
		t.Fatalf("state = %v", svc.State())
	}
	// The refresh replaced the seeded snapshot with the authoritative one.
	if svc.Points() != 40 {
		t.Fatalf("points = %d, want 40 from profile", svc.Points())
	}
	if got := svc.Habits(); len(got) != 2 {
		t.Fatalf("habits = %d, want 2", len(got))
	}
	if got := svc.Badges(); len(got) != 1 || got[0].ID != badge.WeekWarrior {
		t.Fatalf("badges = %#v", got)
	}
}

func TestLoginFailureSurfacesMessageAndKeepsToken(t *testing.T) {
	gw := steadyGateway()
	gw.authFn = func(gateway.Mode, gateway.Credentials) (*gateway.AuthResult, error) {
		return nil, &gateway.RemoteError{Message: "Invalid credentials"}
	}

	store := &memorySession{token: "old"}
	svc := New(store, gw)
	err := svc.Login(context.Background(), "a@b.c", "wrong")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("err = %v, want service message", err)
	}
	if token, _ := store.Token(); token != "old" {
		t.Fatalf("failed login must not disturb the stored token, got %q", token)
	}
}

func TestRegisterSendsUsername(t *testing.T) {
	gw := steadyGateway()
	gw.authFn = func(mode gateway.Mode, creds gateway.Credentials) (*gateway.AuthResult, error) {
		if mode != gateway.ModeRegister || creds.Username != "ann" {
			t.Fatalf("mode %v creds %#v", mode, creds)
		}
		return &gateway.AuthResult{Token: "tok", User: *testUser(0)}, nil
	}
	svc := New(&memorySession{}, gw)
	if err := svc.Register(context.Background(), "ann", "a@b.c", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
}

func TestRefreshAllIsIdempotent(t *testing.T) {
	svc := New(&memorySession{token: "tok"}, steadyGateway())

	if out := svc.RefreshAll(context.Background()); out.Err() != nil {
		t.Fatalf("first refresh: %v", out.Err())
	}
	user1, habits1, badges1 := svc.User(), svc.Habits(), svc.Badges()

	if out := svc.RefreshAll(context.Background()); out.Err() != nil {
		t.Fatalf("second refresh: %v", out.Err())
	}
	if !reflect.DeepEqual(user1, svc.User()) {
		t.Fatal("user snapshot changed across idempotent refreshes")
	}
	if !reflect.DeepEqual(habits1, svc.Habits()) {
		t.Fatal("habit snapshot changed across idempotent refreshes")
	}
	if !reflect.DeepEqual(badges1, svc.Badges()) {
		t.Fatal("badge snapshot changed across idempotent refreshes")
	}
}

func TestRefreshAllPartialFailureIsolation(t *testing.T) {
	gw := steadyGateway()
	svc := New(&memorySession{token: "tok"}, gw)
	svc.RefreshAll(context.Background())

	// Profile now fails at the transport level; habits keep working and
	// grow by one.
	gw.profileFn = func() (*habit.User, error) {
		return nil, errors.New("dial tcp: connection refused")
	}
	gw.habitsFn = func() ([]*habit.Habit, error) {
		return []*habit.Habit{testHabit("h1", "Read", 4), testHabit("h2", "Run", 1), testHabit("h3", "Stretch", 0)}, nil
	}

	out := svc.RefreshAll(context.Background())
	if out.ProfileErr == nil {
		t.Fatal("profile failure should be reported")
	}
	if out.HabitsErr != nil {
		t.Fatalf("habits half should succeed, got %v", out.HabitsErr)
	}
	if got := svc.Habits(); len(got) != 3 {
		t.Fatalf("habit list should still update, got %d", len(got))
	}
	if u := svc.User(); u == nil || u.TotalPoints != 40 {
		t.Fatalf("user snapshot should keep its previous value, got %#v", u)
	}
	if svc.State() != Authenticated {
		t.Fatal("network failure must not end the session")
	}
}

func TestRefreshAllUnauthorizedTearsEverythingDown(t *testing.T) {
	for _, failing := range []string{"profile", "habits"} {
		t.Run(failing, func(t *testing.T) {
			gw := steadyGateway()
			store := &memorySession{token: "tok"}
			svc := New(store, gw)
			svc.RefreshAll(context.Background())

			if failing == "profile" {
				gw.profileFn = func() (*habit.User, error) { return nil, gateway.ErrUnauthorized }
			} else {
				gw.habitsFn = func() ([]*habit.Habit, error) { return nil, gateway.ErrUnauthorized }
			}

			svc.RefreshAll(context.Background())
			if _, ok := store.Token(); ok {
				t.Fatal("token should be cleared")
			}
			if svc.State() != Unauthenticated {
				t.Fatalf("state = %v", svc.State())
			}
			if len(svc.Habits()) != 0 || svc.User() != nil || len(svc.Badges()) != 0 || svc.Points() != 0 {
				t.Fatal("snapshots should be reset on teardown")
			}
		})
	}
}

func TestToggleReplacesHabitAndAppendsBadge(t *testing.T) {
	gw := steadyGateway()
	svc := New(&memorySession{token: "tok"}, gw)
	svc.RefreshAll(context.Background())

	updated := testHabit("h1", "Read", 5)
	gw.toggleFn = func(habitID string) (*gateway.ToggleResult, error) {
		if habitID != "h1" {
			t.Fatalf("habitID = %q", habitID)
		}
		return &gateway.ToggleResult{
			Habit:     updated,
			NewBadges: []badge.Badge{{ID: badge.MonthMaster}},
		}, nil
	}
	gw.profileFn = func() (*habit.User, error) { return testUser(45, badge.WeekWarrior), nil }

	earned, err := svc.Toggle(context.Background(), "h1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if len(earned) != 1 || earned[0].ID != badge.MonthMaster {
		t.Fatalf("earned = %#v", earned)
	}

	habits := svc.Habits()
	if habits[0].Streak != 5 {
		t.Fatalf("habit not replaced, streak = %d", habits[0].Streak)
	}
	if habits[1].ID != "h2" || habits[1].Streak != 1 {
		t.Fatalf("other habits must stay untouched: %#v", habits[1])
	}
	if svc.Points() != 45 {
		t.Fatalf("points not refreshed, got %d", svc.Points())
	}

	badges := svc.Badges()
	if len(badges) != 2 {
		t.Fatalf("badge list = %#v, want exactly one appended", badges)
	}
	if badges[len(badges)-1].ID != badge.MonthMaster {
		t.Fatalf("new badge should arrive last: %#v", badges)
	}
}

func TestToggleFailureLeavesStateUntouched(t *testing.T) {
	gw := steadyGateway()
	svc := New(&memorySession{token: "tok"}, gw)
	svc.RefreshAll(context.Background())
	before := svc.Habits()

	gw.toggleFn = func(string) (*gateway.ToggleResult, error) {
		return nil, &gateway.RemoteError{Message: "Habit not found"}
	}

	_, err := svc.Toggle(context.Background(), "h1")
	if err == nil || err.Error() != "Habit not found" {
		t.Fatalf("err = %v", err)
	}
	if !reflect.DeepEqual(before, svc.Habits()) {
		t.Fatal("failed toggle must not mutate the habit list")
	}
}

func TestToggleUnauthorizedTearsDown(t *testing.T) {
	gw := steadyGateway()
	store := &memorySession{token: "tok"}
	svc := New(store, gw)
	svc.RefreshAll(context.Background())

	gw.toggleFn = func(string) (*gateway.ToggleResult, error) { return nil, gateway.ErrUnauthorized }

	if _, err := svc.Toggle(context.Background(), "h1"); !errors.Is(err, gateway.ErrUnauthorized) {
		t.Fatalf("err = %v", err)
	}
	if _, ok := store.Token(); ok || svc.State() != Unauthenticated {
		t.Fatal("401 on toggle must end the session")
	}
}

func TestToggleProfileRefreshFailureIsNonFatal(t *testing.T) {
	gw := steadyGateway()
	svc := New(&memorySession{token: "tok"}, gw)
	svc.RefreshAll(context.Background())

	gw.toggleFn = func(string) (*gateway.ToggleResult, error) {
		return &gateway.ToggleResult{Habit: testHabit("h1", "Read", 5)}, nil
	}
	gw.profileFn = func() (*habit.User, error) { return nil, errors.New("timeout") }

	if _, err := svc.Toggle(context.Background(), "h1"); err != nil {
		t.Fatalf("toggle itself landed, err should be nil: %v", err)
	}
	if svc.Habits()[0].Streak != 5 {
		t.Fatal("habit should still be replaced")
	}
	if svc.Points() != 40 {
		t.Fatalf("points should keep the previous value, got %d", svc.Points())
	}
}

func TestCreateHabitRejectsEmptyNameLocally(t *testing.T) {
	gw := steadyGateway()
	gw.createFn = func(string, habit.Category) (*habit.Habit, error) {
		t.Fatal("empty name must never reach the gateway")
		return nil, nil
	}
	svc := New(&memorySession{token: "tok"}, gw)

	if err := svc.CreateHabit(context.Background(), "   ", habit.Health); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("err = %v, want ErrNameRequired", err)
	}
	if gw.count("create") != 0 {
		t.Fatal("gateway was called for a local validation failure")
	}
}

func TestCreateHabitTrimsAndRefreshes(t *testing.T) {
	gw := steadyGateway()
	gw.createFn = func(name string, category habit.Category) (*habit.Habit, error) {
		if name != "Drink water" || category != habit.Health {
			t.Fatalf("create got %q %q", name, category)
		}
		return testHabit("h9", name, 0), nil
	}
	svc := New(&memorySession{token: "tok"}, gw)

	if err := svc.CreateHabit(context.Background(), "  Drink water  ", habit.Health); err != nil {
		t.Fatalf("create: %v", err)
	}
	// The list comes from the follow-up refresh, never a local append.
	if gw.count("habits") != 1 || gw.count("profile") != 1 {
		t.Fatalf("create should trigger a full refresh, calls = %v", gw.calls)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	store := &memorySession{token: "tok"}
	svc := New(store, steadyGateway())
	svc.RefreshAll(context.Background())

	svc.Logout()
	if _, ok := store.Token(); ok || svc.State() != Unauthenticated {
		t.Fatal("logout should clear the session")
	}
	svc.Logout() // clearing an already-cleared session is a no-op
	if svc.State() != Unauthenticated {
		t.Fatal("second logout changed state")
	}
}

func TestSurfaceFallback(t *testing.T) {
	err := surface(errors.New("connection refused"), "failed to toggle habit")
	if !strings.HasPrefix(err.Error(), "failed to toggle habit") {
		t.Fatalf("fallback not applied: %v", err)
	}
	if surface(nil, "anything") != nil {
		t.Fatal("nil error should stay nil")
	}
}
