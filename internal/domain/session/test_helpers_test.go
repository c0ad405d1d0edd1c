package session

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/FACorreiaa/roammate-api/internal/types"
)

// TestPlanner lets each test swap in the generation behaviour it needs.
type TestPlanner struct {
	GenerateItineraryFn       func(ctx context.Context, destination string, duration int, budget types.Budget, interests []string) (*types.Itinerary, error)
	GetPlaceRecommendationsFn func(ctx context.Context, location string, category types.PlaceCategory) []types.PlaceRecommendation
	ChatWithRoamMateFn        func(ctx context.Context, message string, history []types.ChatMessage) (string, error)

	itineraryCalls atomic.Int32
	placesCalls    atomic.Int32
	chatCalls      atomic.Int32
}

func (t *TestPlanner) GenerateItinerary(ctx context.Context, destination string, duration int, budget types.Budget, interests []string) (*types.Itinerary, error) {
	t.itineraryCalls.Add(1)
	if t.GenerateItineraryFn != nil {
		return t.GenerateItineraryFn(ctx, destination, duration, budget, interests)
	}
	return testItinerary(destination, duration), nil
}

func (t *TestPlanner) GetPlaceRecommendations(ctx context.Context, location string, category types.PlaceCategory) []types.PlaceRecommendation {
	t.placesCalls.Add(1)
	if t.GetPlaceRecommendationsFn != nil {
		return t.GetPlaceRecommendationsFn(ctx, location, category)
	}
	return []types.PlaceRecommendation{}
}

func (t *TestPlanner) ChatWithRoamMate(ctx context.Context, message string, history []types.ChatMessage) (string, error) {
	t.chatCalls.Add(1)
	if t.ChatWithRoamMateFn != nil {
		return t.ChatWithRoamMateFn(ctx, message, history)
	}
	return "Sure!", nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestManager(p *TestPlanner) *Manager {
	return NewManager(NewMemoryStore(time.Hour), p, newTestLogger())
}

func testItinerary(destination string, duration int) *types.Itinerary {
	it := &types.Itinerary{Destination: destination, Summary: "A trip to " + destination}
	for day := 1; day <= duration; day++ {
		it.Days = append(it.Days, types.DayPlan{
			Day:   day,
			Theme: "Exploring",
			Activities: []types.Activity{{
				Time:        "09:00",
				Activity:    "Walk",
				Description: "Morning walk",
				Location:    destination,
				Type:        types.ActivitySightseeing,
			}},
		})
	}
	return it
}

func kyotoPrefs() types.UserPreferences {
	return types.UserPreferences{
		Destination: "Kyoto",
		Duration:    3,
		Budget:      types.BudgetMedium,
		Interests:   []string{"History", "Food"},
	}
}

// versionedStore keeps encoded sessions and refuses a write whose read
// version went stale, the way a WATCHed Redis key does. Two managers sharing
// one versionedStore behave like two replicas sharing Redis.
type versionedStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	versions map[string]int

	conflicts atomic.Int32
}

func newVersionedStore() *versionedStore {
	return &versionedStore{data: map[string][]byte{}, versions: map[string]int{}}
}

func (v *versionedStore) read(id string) ([]byte, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.data[id], v.versions[id]
}

func (v *versionedStore) Load(_ context.Context, id string) (*Session, error) {
	data, _ := v.read(id)
	if data == nil {
		return nil, nil
	}
	return decodeSession(data)
}

func (v *versionedStore) Save(_ context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.data[s.ID] = data
	v.versions[s.ID]++
	return nil
}

func (v *versionedStore) Delete(_ context.Context, id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.data, id)
	v.versions[id]++
	return nil
}

func (v *versionedStore) Update(_ context.Context, id string, create func() *Session, fn UpdateFunc) (*Session, error) {
	for {
		data, version := v.read(id)
		s := create()
		if data != nil {
			var err error
			if s, err = decodeSession(data); err != nil {
				return nil, err
			}
		}
		fnErr := fn(s)
		encoded, err := json.Marshal(s)
		if err != nil {
			return nil, err
		}
		runtime.Gosched()

		v.mu.Lock()
		if v.versions[id] != version {
			v.mu.Unlock()
			v.conflicts.Add(1)
			continue
		}
		v.data[id] = encoded
		v.versions[id]++
		v.mu.Unlock()
		return s, fnErr
	}
}
